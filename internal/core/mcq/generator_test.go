package mcq

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"mcq-service/internal/core/nlp"
)

const (
	catText   = "The cat sat on the mat while the cat watched the dog in the garden."
	plantText = "Plants use sunlight and water to produce sugar through a process in their leaves."
	shortText = "Cats nap."
)

func twoSentenceDoc() *nlp.Document {
	return &nlp.Document{Sentences: []nlp.Sentence{
		sentence(catText, map[string]string{"cat": "cat", "mat": "mat", "dog": "dog", "garden": "garden"}),
		sentence(shortText, map[string]string{"Cats": "cat"}),
		sentence(plantText, map[string]string{
			"Plants": "plant", "sunlight": "sunlight", "water": "water",
			"sugar": "sugar", "process": "process", "leaves": "leaf",
		}),
	}}
}

func docText() string {
	return catText + " " + shortText + " " + plantText
}

func checkQuestion(t *testing.T, q Question) {
	t.Helper()
	if len(q.Options) != DefaultDistractors+1 {
		t.Fatalf("options = %v", q.Options)
	}
	if q.Options[q.CorrectOptionIndex] != q.CorrectAnswer {
		t.Fatalf("options[%d] = %q, answer %q", q.CorrectOptionIndex, q.Options[q.CorrectOptionIndex], q.CorrectAnswer)
	}
	seen := map[string]bool{}
	for _, o := range q.Options {
		k := strings.ToLower(o)
		if seen[k] {
			t.Fatalf("duplicate option %q in %v", o, q.Options)
		}
		seen[k] = true
	}
	if strings.Count(q.Stem, Blank) != 1 {
		t.Fatalf("stem %q must contain one blank", q.Stem)
	}
	if wholeWord(q.CorrectAnswer).MatchString(strings.Replace(q.Stem, Blank, " ", 1)) {
		t.Fatalf("stem %q leaks answer %q", q.Stem, q.CorrectAnswer)
	}
}

func TestGenerate_EmptyAndShortText(t *testing.T) {
	ann := &fakeAnnotator{doc: twoSentenceDoc()}
	g := NewGenerator(ann, &fakeLexicon{}, WithSeed(1))

	for _, text := range []string{"", strings.Repeat("a", 99)} {
		got, err := g.Generate(context.Background(), text, 5)
		if err != nil {
			t.Fatal(err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("text of %d chars: got %v, want empty", len(text), got)
		}
	}
	if ann.calls != 0 {
		t.Fatalf("annotator called %d times for short input", ann.calls)
	}
}

func TestGenerate_FewerSentencesThanRequested(t *testing.T) {
	g := NewGenerator(&fakeAnnotator{doc: twoSentenceDoc()}, &fakeLexicon{}, WithSeed(3))
	got, err := g.Generate(context.Background(), docText(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d questions, want 2", len(got))
	}
	answers := map[string]bool{}
	for _, q := range got {
		checkQuestion(t, q)
		answers[q.CorrectAnswer] = true
	}
	if !answers["cat"] || !answers["Plants"] {
		t.Fatalf("answers = %v", answers)
	}
}

func TestGenerate_Stems(t *testing.T) {
	g := NewGenerator(&fakeAnnotator{doc: twoSentenceDoc()}, &fakeLexicon{}, WithSeed(5))
	got, err := g.Generate(context.Background(), docText(), 5)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"cat":    "The _________ sat on the mat while the watched the dog in the garden.",
		"Plants": "_________ use sunlight and water to produce sugar through a process in their leaves.",
	}
	for _, q := range got {
		if q.Stem != want[q.CorrectAnswer] {
			t.Errorf("stem for %q = %q, want %q", q.CorrectAnswer, q.Stem, want[q.CorrectAnswer])
		}
	}
	distractors := map[string][]string{
		"cat":    {"dog", "garden", "mat"},
		"Plants": {"sugar", "sunlight", "water"},
	}
	for _, q := range got {
		var others []string
		for i, o := range q.Options {
			if i != q.CorrectOptionIndex {
				others = append(others, o)
			}
		}
		if !sameSet(others, distractors[q.CorrectAnswer]) {
			t.Errorf("distractors for %q = %v, want %v", q.CorrectAnswer, others, distractors[q.CorrectAnswer])
		}
	}
}

func TestGenerate_RespectsLimit(t *testing.T) {
	g := NewGenerator(&fakeAnnotator{doc: twoSentenceDoc()}, &fakeLexicon{}, WithSeed(9))
	got, err := g.Generate(context.Background(), docText(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d, want 1", len(got))
	}
	got, err = g.Generate(context.Background(), docText(), 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("zero requested: %v, %v", got, err)
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	ann := &fakeAnnotator{doc: twoSentenceDoc()}
	a, err := NewGenerator(ann, &fakeLexicon{}, WithSeed(42)).Generate(context.Background(), docText(), 5)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGenerator(ann, &fakeLexicon{}, WithSeed(42)).Generate(context.Background(), docText(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different output:\n%v\n%v", a, b)
	}
}

func TestGenerate_PropertiesHoldAcrossSeeds(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		g := NewGenerator(&fakeAnnotator{doc: twoSentenceDoc()}, &fakeLexicon{}, WithSeed(seed))
		got, err := g.Generate(context.Background(), docText(), 5)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) > 5 {
			t.Fatalf("seed %d: %d questions", seed, len(got))
		}
		for _, q := range got {
			checkQuestion(t, q)
		}
	}
}

func TestGenerate_AnnotatorErrorPropagates(t *testing.T) {
	boom := errors.New("annotator unavailable")
	g := NewGenerator(&fakeAnnotator{err: boom}, &fakeLexicon{})
	if _, err := g.Generate(context.Background(), docText(), 5); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestGenerate_NoQualifyingSentences(t *testing.T) {
	doc := &nlp.Document{Sentences: []nlp.Sentence{
		sentence("This is a long sentence with many words but only one real noun here.", map[string]string{"noun": "noun"}),
	}}
	g := NewGenerator(&fakeAnnotator{doc: doc}, &fakeLexicon{})
	got, err := g.Generate(context.Background(), strings.Repeat("filler text ", 10), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v", got)
	}
}

func TestSentenceToMCQ_Gates(t *testing.T) {
	g := NewGenerator(nil, &fakeLexicon{})
	ctx := context.Background()

	oneNoun := sentence("The river flows quickly past old stone walls and quiet green fields.", map[string]string{"river": "river"})
	if q, err := g.sentenceToMCQ(ctx, oneNoun, nil, 3, seeded()); q != nil || err != nil {
		t.Fatalf("single noun: %v, %v", q, err)
	}

	shortStem := sentence("Cats chase mice and birds.", map[string]string{"Cats": "cat", "mice": "mouse", "birds": "bird"})
	if q, err := g.sentenceToMCQ(ctx, shortStem, nil, 3, seeded()); q != nil || err != nil {
		t.Fatalf("short stem: %v, %v", q, err)
	}

	fewDistractors := sentence("The river carved a deep path through the land over many long years.",
		map[string]string{"river": "river", "path": "path"})
	if q, err := g.sentenceToMCQ(ctx, fewDistractors, nil, 3, seeded()); q != nil || err != nil {
		t.Fatalf("few distractors: %v, %v", q, err)
	}
}

func TestCleanText(t *testing.T) {
	in := "Line one(cid:3)\r\nline   two\n\nthree"
	if got := CleanText(in); got != "Line one line two three" {
		t.Fatalf("got %q", got)
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	m := map[string]int{}
	for _, s := range a {
		m[s]++
	}
	for _, s := range b {
		m[s]--
	}
	for _, v := range m {
		if v != 0 {
			return false
		}
	}
	return true
}
