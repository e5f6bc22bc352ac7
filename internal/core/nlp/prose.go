package nlp

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"mcq-service/config"
	"mcq-service/pkg/logger"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// Penn Treebank noun tags.
var nounTags = map[string]bool{
	"NN":   true,
	"NNS":  true,
	"NNP":  true,
	"NNPS": true,
}

// ProseAnnotator segments and tags English text with prose and lemmatizes with golem.
// It holds no per-request state and is safe for concurrent use.
type ProseAnnotator struct {
	lemmatizer *golem.Lemmatizer
}

// NewProseAnnotator loads the English lemma dictionary.
func NewProseAnnotator() (*ProseAnnotator, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemmatizer: %w", err)
	}
	return &ProseAnnotator{lemmatizer: lem}, nil
}

// Annotate runs sentence segmentation over the whole text, then tags each sentence.
func (a *ProseAnnotator) Annotate(ctx context.Context, text string) (*Document, error) {
	segmented, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("segment text: %w", err)
	}

	sents := segmented.Sentences()
	doc := &Document{Sentences: make([]Sentence, 0, len(sents))}
	for _, s := range sents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		tagged, err := prose.NewDocument(s.Text,
			prose.WithSegmentation(false),
			prose.WithExtraction(false),
		)
		if err != nil {
			return nil, fmt.Errorf("tag sentence: %w", err)
		}
		toks := tagged.Tokens()
		sent := Sentence{Text: s.Text, Tokens: make([]Token, 0, len(toks))}
		for _, t := range toks {
			sent.Tokens = append(sent.Tokens, a.token(t))
		}
		doc.Sentences = append(doc.Sentences, sent)
	}

	logger.ForModule(config.ModuleNLP).WithField("sentences", len(doc.Sentences)).Debug("nlp: annotated")
	return doc, nil
}

func (a *ProseAnnotator) token(t prose.Token) Token {
	noun := nounTags[t.Tag]
	lemma := t.Text
	// Proper nouns keep their surface form as lemma.
	if t.Tag != "NNP" && t.Tag != "NNPS" {
		lemma = a.lemmatizer.Lemma(t.Text)
	}
	return Token{
		Text:  t.Text,
		Lemma: lemma,
		Noun:  noun,
		Alpha: isAlpha(t.Text),
	}
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
