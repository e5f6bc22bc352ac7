package lexicon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"mcq-service/config"
	"mcq-service/internal/core/nlp"
	"mcq-service/pkg/logger"

	"github.com/openai/openai-go/v3/option"
)

// FromConfig builds the configured lexicon. When caching is enabled and Redis is
// reachable the lexicon is wrapped in a Cache and the store is returned for health checks.
func FromConfig(ctx context.Context) (nlp.Lexicon, *RedisStore, error) {
	cfg := config.Cfg
	var lex nlp.Lexicon
	switch cfg.Lexicon.Provider {
	case "openai":
		var opts []option.RequestOption
		if cfg.OpenAI.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
		}
		l, err := NewOpenAI(cfg.OpenAI.Key, cfg.OpenAI.Model, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("openai lexicon: %w", err)
		}
		lex = l
	case "wordnet":
		wn, err := OpenWordNet(cfg.Lexicon.WordNetDir)
		switch {
		case err == nil:
			logger.Info("%v: wordnet loaded with %d noun lemmas from %s", config.ModuleLexicon, wn.Len(), cfg.Lexicon.WordNetDir)
			lex = wn
		case errors.Is(err, os.ErrNotExist):
			logger.Warn("%v: no wordnet database at %s, falling back to %s", config.ModuleLexicon, cfg.Lexicon.WordNetDir, cfg.Lexicon.Path)
			if lex, err = loadStatic(cfg.Lexicon.Path); err != nil {
				return nil, nil, err
			}
		default:
			return nil, nil, fmt.Errorf("wordnet lexicon: %w", err)
		}
	default:
		l, err := loadStatic(cfg.Lexicon.Path)
		if err != nil {
			return nil, nil, err
		}
		lex = l
	}

	if !cfg.Lexicon.Cache || cfg.Redis.Addr == "" {
		return lex, nil, nil
	}
	store, err := NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		// The lexicon works without a cache; keep serving.
		logger.Error(err, "%v: redis unavailable, lexicon cache disabled", config.ModuleRedis)
		return lex, nil, nil
	}
	ttl := time.Duration(cfg.Redis.TTLMinutes) * time.Minute
	return NewCache(lex, store, ttl), store, nil
}

func loadStatic(path string) (*Static, error) {
	l, err := LoadStatic(path)
	if err != nil {
		return nil, err
	}
	logger.Info("%v: static lexicon loaded with %d words", config.ModuleLexicon, l.Len())
	return l, nil
}
