package lexicon

import (
	"context"
	"errors"
	"testing"
	"time"

	"mcq-service/internal/core/nlp"
)

type mapStore struct {
	data   map[string][]byte
	getErr error
	setErr error
	ttl    time.Duration
}

func (m *mapStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return b, nil
}

func (m *mapStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttl = ttl
	return nil
}

type countingLexicon struct {
	calls  int
	senses []nlp.Sense
	err    error
}

func (c *countingLexicon) LookupNoun(context.Context, string) ([]nlp.Sense, error) {
	c.calls++
	return c.senses, c.err
}

func TestCache_ReadThrough(t *testing.T) {
	next := &countingLexicon{senses: []nlp.Sense{{Synonyms: []string{"car", "auto"}}}}
	store := &mapStore{data: map[string][]byte{}}
	c := NewCache(next, store, time.Hour)

	for i := 0; i < 3; i++ {
		senses, err := c.LookupNoun(context.Background(), "car")
		if err != nil {
			t.Fatal(err)
		}
		if len(senses) != 1 || senses[0].Synonyms[1] != "auto" {
			t.Fatalf("senses = %+v", senses)
		}
	}
	if next.calls != 1 {
		t.Fatalf("wrapped lexicon called %d times, want 1", next.calls)
	}
	if _, ok := store.data["lexicon:noun:car"]; !ok || store.ttl != time.Hour {
		t.Fatalf("entry not stored with ttl: %v %v", store.data, store.ttl)
	}
}

func TestCache_StoreFailuresBypassed(t *testing.T) {
	next := &countingLexicon{senses: []nlp.Sense{{Synonyms: []string{"car"}}}}
	store := &mapStore{data: map[string][]byte{}, getErr: errors.New("conn refused"), setErr: errors.New("conn refused")}
	c := NewCache(next, store, time.Hour)

	senses, err := c.LookupNoun(context.Background(), "car")
	if err != nil || len(senses) != 1 {
		t.Fatalf("senses = %+v, err = %v", senses, err)
	}
}

func TestCache_CorruptEntryRefetched(t *testing.T) {
	next := &countingLexicon{senses: []nlp.Sense{{Synonyms: []string{"car"}}}}
	store := &mapStore{data: map[string][]byte{"lexicon:noun:car": []byte("{")}}
	c := NewCache(next, store, time.Minute)

	if _, err := c.LookupNoun(context.Background(), "car"); err != nil {
		t.Fatal(err)
	}
	if next.calls != 1 {
		t.Fatalf("calls = %d", next.calls)
	}
}

func TestCache_LexiconErrorPropagates(t *testing.T) {
	boom := errors.New("upstream down")
	store := &mapStore{data: map[string][]byte{}}
	c := NewCache(&countingLexicon{err: boom}, store, time.Minute)

	if _, err := c.LookupNoun(context.Background(), "car"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(store.data) != 0 {
		t.Fatal("errors must not be cached")
	}
}
