package mcq

import (
	"context"
	"strings"
	"unicode"

	"mcq-service/internal/core/nlp"
)

type fakeAnnotator struct {
	doc   *nlp.Document
	err   error
	calls int
}

func (f *fakeAnnotator) Annotate(_ context.Context, _ string) (*nlp.Document, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

type fakeLexicon struct {
	senses map[string][]nlp.Sense
	err    error
	words  []string
}

func (f *fakeLexicon) LookupNoun(_ context.Context, word string) ([]nlp.Sense, error) {
	f.words = append(f.words, word)
	if f.err != nil {
		return nil, f.err
	}
	return f.senses[word], nil
}

// sentence tokenizes text on whitespace, splitting trailing punctuation into its own
// token. Words found in nouns are tagged as nouns with the mapped lemma.
func sentence(text string, nouns map[string]string) nlp.Sentence {
	s := nlp.Sentence{Text: text}
	for _, w := range strings.Fields(text) {
		word := strings.TrimRight(w, ".,;:")
		punct := w[len(word):]
		if word != "" {
			lemma, isNoun := nouns[word]
			if !isNoun {
				lemma = strings.ToLower(word)
			}
			s.Tokens = append(s.Tokens, nlp.Token{Text: word, Lemma: lemma, Noun: isNoun, Alpha: alpha(word)})
		}
		for _, r := range punct {
			s.Tokens = append(s.Tokens, nlp.Token{Text: string(r), Lemma: string(r)})
		}
	}
	return s
}

func noun(text, lemma string) nlp.Token {
	return nlp.Token{Text: text, Lemma: lemma, Noun: true, Alpha: alpha(text)}
}

func alpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
