// Command mcqgen prints cloze questions for a local PDF or text file as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"mcq-service/config"
	"mcq-service/internal/core/document"
	"mcq-service/internal/core/lexicon"
	"mcq-service/internal/core/mcq"
	"mcq-service/internal/core/nlp"
	"mcq-service/pkg/logger"
)

func main() {
	in := flag.String("in", "", "PDF or text file")
	n := flag.Int("n", config.Cfg.Generator.DefaultQuestions, "number of questions")
	seed := flag.Uint64("seed", 0, "random seed; 0 picks a fresh one")
	provider := flag.String("provider", config.Cfg.Lexicon.Provider, "lexicon provider: wordnet, static or openai")
	wordnetDir := flag.String("wordnet", config.Cfg.Lexicon.WordNetDir, "WordNet dict directory")
	lexPath := flag.String("lexicon", config.Cfg.Lexicon.Path, "static lexicon YAML")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	// stdout carries the JSON result
	logger.GetLogger().SetOutput(os.Stderr)
	if err := logger.SetLevel(*logLevel); err != nil {
		fmt.Fprintln(os.Stderr, "mcqgen:", err)
		os.Exit(2)
	}

	config.Cfg.Lexicon.Provider = *provider
	config.Cfg.Lexicon.WordNetDir = *wordnetDir
	config.Cfg.Lexicon.Path = *lexPath
	config.Cfg.Lexicon.Cache = false

	if err := run(context.Background(), *in, *n, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "mcqgen:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, in string, n int, seed uint64) error {
	text, err := document.Load(ctx, in)
	if err != nil {
		return err
	}

	annotator, err := nlp.NewProseAnnotator()
	if err != nil {
		return err
	}
	lex, _, err := lexicon.FromConfig(ctx)
	if err != nil {
		return err
	}

	var opts []mcq.Option
	if seed != 0 {
		opts = append(opts, mcq.WithSeed(seed))
	}
	questions, err := mcq.NewGenerator(annotator, lex, opts...).Generate(ctx, text, n)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(questions)
}
