package nlp

import "context"

// Token is one annotated word. Noun is true for noun-like tags (common and proper nouns).
type Token struct {
	Text  string `json:"text"`
	Lemma string `json:"lemma"`
	Noun  bool   `json:"noun"`
	Alpha bool   `json:"alpha"`
}

// Sentence keeps the original surface span next to its tokens.
type Sentence struct {
	Text   string  `json:"text"`
	Tokens []Token `json:"tokens"`
}

// Nouns returns the noun-like tokens; when alphaOnly is set, non-alphabetic ones are dropped.
func (s Sentence) Nouns(alphaOnly bool) []Token {
	out := make([]Token, 0, len(s.Tokens))
	for _, t := range s.Tokens {
		if !t.Noun || (alphaOnly && !t.Alpha) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Document is the annotator output for one request.
type Document struct {
	Sentences []Sentence `json:"sentences"`
}

// Tokens flattens every sentence into one stream, in document order.
func (d *Document) Tokens() []Token {
	if d == nil {
		return nil
	}
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Tokens)
	}
	out := make([]Token, 0, n)
	for _, s := range d.Sentences {
		out = append(out, s.Tokens...)
	}
	return out
}

// Annotator splits text into sentences of lemmatized, tagged tokens.
type Annotator interface {
	Annotate(ctx context.Context, text string) (*Document, error)
}

// Sense is one noun sense of a word: its own lemma names and those of the senses one
// level up. Multi-word names may use underscores ("carbon_dioxide").
type Sense struct {
	Synonyms  []string `json:"synonyms" yaml:"synonyms"`
	Hypernyms []string `json:"hypernyms" yaml:"hypernyms"`
}

// Lexicon looks up the noun senses of a lowercased base form.
type Lexicon interface {
	LookupNoun(ctx context.Context, word string) ([]Sense, error)
}
