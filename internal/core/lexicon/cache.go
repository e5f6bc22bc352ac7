package lexicon

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"mcq-service/config"
	"mcq-service/internal/core/nlp"
	"mcq-service/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "lexicon:noun:"

// ErrCacheMiss is returned by a Store when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Store is the byte-level cache the lexicon cache writes through.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Cache is a read-through cache in front of another lexicon. Store failures are
// logged and bypassed; only the wrapped lexicon's errors reach the caller.
type Cache struct {
	next  nlp.Lexicon
	store Store
	ttl   time.Duration
}

func NewCache(next nlp.Lexicon, store Store, ttl time.Duration) *Cache {
	return &Cache{next: next, store: store, ttl: ttl}
}

func (c *Cache) LookupNoun(ctx context.Context, word string) ([]nlp.Sense, error) {
	key := keyPrefix + word
	b, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var senses []nlp.Sense
		if jerr := json.Unmarshal(b, &senses); jerr == nil {
			logger.Debug("%v: cache hit %s", config.ModuleLexicon, key)
			return senses, nil
		}
		logger.Warn("%v: dropping undecodable cache entry %s", config.ModuleLexicon, key)
	case !errors.Is(err, ErrCacheMiss):
		logger.Error(err, "%v: cache get %s", config.ModuleLexicon, key)
	}

	senses, err := c.next.LookupNoun(ctx, word)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(senses); err == nil {
		if err := c.store.Set(ctx, key, b, c.ttl); err != nil {
			logger.Error(err, "%v: cache set %s", config.ModuleLexicon, key)
		}
	}
	return senses, nil
}

// RedisStore adapts a go-redis client to Store.
type RedisStore struct {
	rdb *goredis.Client
}

// NewRedisStore connects and pings the server.
func NewRedisStore(ctx context.Context, addr, password string, db int) (*RedisStore, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	return b, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Ping checks the connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
