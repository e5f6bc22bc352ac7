package mcq

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"mcq-service/internal/core/nlp"
)

// exclusion tracks what may no longer be offered as a distractor.
type exclusion struct {
	seen        map[string]struct{}
	answerParts map[string]struct{}
}

func newExclusion(answerText string) *exclusion {
	e := &exclusion{
		seen:        map[string]struct{}{strings.ToLower(answerText): {}},
		answerParts: map[string]struct{}{},
	}
	for _, w := range strings.Fields(answerText) {
		e.answerParts[Normalize(w)] = struct{}{}
	}
	return e
}

func (e *exclusion) allows(candidate string) bool {
	if _, ok := e.seen[strings.ToLower(candidate)]; ok {
		return false
	}
	_, part := e.answerParts[Normalize(candidate)]
	return !part
}

func (e *exclusion) add(candidate string) {
	e.seen[strings.ToLower(candidate)] = struct{}{}
}

// gatherDistractors fills up to n wrong options from, in order: the sentence's own
// nouns, the document's nouns, lexicon synonyms of the answer, lexicon hypernyms.
// Fewer than n results is not an error.
func gatherDistractors(ctx context.Context, lex nlp.Lexicon, nouns []nlp.Token, answer nlp.Token, n int, doc *nlp.Document, rng *rand.Rand) ([]string, error) {
	answerLemma := Normalize(answer.Lemma)
	ex := newExclusion(answer.Text)
	out := make([]string, 0, n)

	accept := func(s string) {
		out = append(out, s)
		ex.add(s)
	}

	// sentence nouns, in order
	for _, t := range nouns {
		if Normalize(t.Lemma) == answerLemma || !isRealWord(t.Text) || !ex.allows(t.Text) {
			continue
		}
		accept(t.Text)
	}

	// document nouns, shuffled
	if len(out) < n && doc != nil {
		var pool []string
		for _, t := range doc.Tokens() {
			if t.Noun && t.Alpha && ex.allows(t.Text) {
				pool = append(pool, t.Text)
			}
		}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		for _, w := range pool {
			if len(out) >= n {
				break
			}
			if isRealWord(w) && ex.allows(w) {
				accept(w)
			}
		}
	}

	if len(out) >= n || lex == nil {
		return truncate(out, n), nil
	}

	senses, err := lex.LookupNoun(ctx, strings.ToLower(answer.Lemma))
	if err != nil {
		return nil, fmt.Errorf("lexicon lookup %q: %w", answer.Lemma, err)
	}

	// synonyms: stop after the sense that fills the quota
	var synonyms []string
	for _, s := range senses {
		for _, name := range s.Synonyms {
			if term, ok := lexicalTerm(name, ex); ok {
				synonyms = append(synonyms, term)
				ex.add(term)
			}
		}
		if len(synonyms) >= n-len(out) {
			break
		}
	}
	out = appendShuffled(out, synonyms, n, rng)

	if len(out) < n {
		var hypernyms []string
		for _, s := range senses {
			for _, name := range s.Hypernyms {
				if term, ok := lexicalTerm(name, ex); ok {
					hypernyms = append(hypernyms, term)
					ex.add(term)
				}
			}
		}
		out = appendShuffled(out, hypernyms, n, rng)
	}

	return truncate(out, n), nil
}

func lexicalTerm(name string, ex *exclusion) (string, bool) {
	term := strings.ReplaceAll(name, "_", " ")
	if !ex.allows(term) || !isRealWord(term) {
		return "", false
	}
	return term, true
}

func appendShuffled(out, terms []string, n int, rng *rand.Rand) []string {
	rng.Shuffle(len(terms), func(i, j int) { terms[i], terms[j] = terms[j], terms[i] })
	if room := n - len(out); len(terms) > room {
		terms = terms[:max(room, 0)]
	}
	return append(out, terms...)
}

func truncate(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
