package mcq

import (
	"context"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode/utf8"

	"mcq-service/config"
	"mcq-service/internal/core/nlp"
	"mcq-service/pkg/logger"
)

const (
	minTextChars     = 100
	minSentenceWords = 10
	minSentenceNouns = 2
	minStemWords     = 8
	minQuestionNouns = 2
)

// pdfArtifacts matches glyph placeholders left by PDF extraction, line breaks and whitespace runs.
var pdfArtifacts = regexp.MustCompile(`\(cid:\d+\)|[\n\r]+|\s{2,}`)

// Generator turns document text into cloze questions. One Generator can serve
// concurrent requests: each Generate call owns its document and random source.
type Generator struct {
	annotator nlp.Annotator
	lexicon   nlp.Lexicon
	newRand   func() *rand.Rand
}

type Option func(*Generator)

// WithRand sets the factory for the per-call random source.
func WithRand(f func() *rand.Rand) Option {
	return func(g *Generator) { g.newRand = f }
}

// WithSeed makes every Generate call shuffle identically.
func WithSeed(seed uint64) Option {
	return WithRand(func() *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) })
}

func NewGenerator(annotator nlp.Annotator, lexicon nlp.Lexicon, opts ...Option) *Generator {
	g := &Generator{
		annotator: annotator,
		lexicon:   lexicon,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// CleanText collapses PDF artifacts and whitespace runs into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(pdfArtifacts.ReplaceAllString(text, " ")), " ")
}

// Generate returns at most numQuestions questions. Too little or unsuitable text yields
// an empty slice; only annotator and lexicon failures are returned as errors.
func (g *Generator) Generate(ctx context.Context, text string, numQuestions int) ([]Question, error) {
	out := []Question{}
	if numQuestions <= 0 || utf8.RuneCountInString(text) < minTextChars {
		return out, nil
	}

	doc, err := g.annotator.Annotate(ctx, CleanText(text))
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}

	sentences := make([]nlp.Sentence, 0, len(doc.Sentences))
	for _, s := range doc.Sentences {
		if len(strings.Fields(s.Text)) > minSentenceWords && len(s.Nouns(false)) > minSentenceNouns {
			sentences = append(sentences, s)
		}
	}
	log := logger.ForModule(config.ModuleMCQ).WithField("sentences", len(doc.Sentences)).WithField("candidates", len(sentences))
	if len(sentences) == 0 {
		log.Info("mcq: no candidate sentences")
		return out, nil
	}

	rng := g.newRand()
	rng.Shuffle(len(sentences), func(i, j int) { sentences[i], sentences[j] = sentences[j], sentences[i] })

	for _, s := range sentences {
		if len(out) >= numQuestions {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := g.sentenceToMCQ(ctx, s, doc, DefaultDistractors, rng)
		if err != nil {
			return nil, err
		}
		if q != nil {
			out = append(out, *q)
		}
	}

	log.WithField("questions", len(out)).Info("mcq: generated")
	return out, nil
}

// sentenceToMCQ builds one question or returns nil when a quality gate fails.
func (g *Generator) sentenceToMCQ(ctx context.Context, sent nlp.Sentence, doc *nlp.Document, n int, rng *rand.Rand) (*Question, error) {
	nouns := sent.Nouns(true)
	if len(nouns) < minQuestionNouns {
		return nil, nil
	}

	main, ok := pickMainNoun(nouns)
	if !ok {
		return nil, nil
	}
	answer := main.Text

	stem := MakeCloze(strings.TrimSpace(sent.Text), answer)
	if strings.Count(stem, Blank) != 1 || len(strings.Fields(stem)) < minStemWords {
		return nil, nil
	}
	if wholeWord(answer).MatchString(strings.Replace(stem, Blank, " ", 1)) {
		return nil, nil
	}

	distractors, err := gatherDistractors(ctx, g.lexicon, nouns, main, n, doc, rng)
	if err != nil {
		return nil, err
	}
	if len(distractors) != n {
		logger.ForModule(config.ModuleMCQ).WithField("answer", answer).WithField("distractors", len(distractors)).Debug("mcq: not enough distractors")
		return nil, nil
	}

	options := make([]string, 0, n+1)
	options = append(options, distractors...)
	options = append(options, answer)
	rng.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	idx := 0
	for i, o := range options {
		if o == answer {
			idx = i
			break
		}
	}

	return &Question{
		Stem:               stem,
		Options:            options,
		CorrectAnswer:      answer,
		CorrectOptionIndex: idx,
	}, nil
}
