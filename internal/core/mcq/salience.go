package mcq

import (
	"unicode/utf8"

	"mcq-service/internal/core/nlp"
)

// pickMainNoun returns the token of the most frequent normalized lemma. Ties go to the
// lemma seen first. Among that lemma's tokens the first real-looking word longer than
// three characters wins, otherwise the first token.
func pickMainNoun(nouns []nlp.Token) (nlp.Token, bool) {
	counts := make(map[string]int, len(nouns))
	order := make([]string, 0, len(nouns))
	for _, t := range nouns {
		l := Normalize(t.Lemma)
		if l == "" {
			continue
		}
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}
	if len(order) == 0 {
		return nlp.Token{}, false
	}

	best := order[0]
	for _, l := range order[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}

	var first *nlp.Token
	for i := range nouns {
		t := nouns[i]
		if Normalize(t.Lemma) != best {
			continue
		}
		if first == nil {
			first = &nouns[i]
		}
		if utf8.RuneCountInString(t.Text) > 3 && isRealWord(t.Text) {
			return t, true
		}
	}
	return *first, true
}
