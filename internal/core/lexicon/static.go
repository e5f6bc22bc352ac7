package lexicon

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"mcq-service/internal/core/nlp"
)

// Static is an in-memory thesaurus, usually loaded from a YAML file of the form
//
//	photosynthesis:
//	  - synonyms: [photosynthesis]
//	    hypernyms: [synthesis]
type Static struct {
	entries map[string][]nlp.Sense
}

func NewStatic(entries map[string][]nlp.Sense) *Static {
	s := &Static{entries: make(map[string][]nlp.Sense, len(entries))}
	for k, v := range entries {
		s.entries[strings.ToLower(k)] = v
	}
	return s
}

// LoadStatic reads a YAML thesaurus. A missing file gives an empty lexicon.
func LoadStatic(path string) (*Static, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewStatic(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lexicon %s: %w", path, err)
	}
	var entries map[string][]nlp.Sense
	if err := yaml.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return NewStatic(entries), nil
}

func (s *Static) LookupNoun(_ context.Context, word string) ([]nlp.Sense, error) {
	return s.entries[strings.ToLower(word)], nil
}

// Len reports the number of head words.
func (s *Static) Len() int { return len(s.entries) }
