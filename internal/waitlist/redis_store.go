package waitlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"waitly/pkg/cache"
	"waitly/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the same JSON document as the file store under a
// single Redis key. Selected with STORE_BACKEND=redis.
type RedisStore struct {
	client     *redis.Client
	key        string
	defaultCap int
	log        *logger.Logger
}

// NewRedisStore creates a Redis-backed store
func NewRedisStore(client *redis.Client, key string, defaultCap int, log *logger.Logger) *RedisStore {
	return &RedisStore{
		client:     client,
		key:        key,
		defaultCap: defaultCap,
		log:        log,
	}
}

// Load reads the persisted state, treating a missing key or any Redis error
// as an empty store.
func (s *RedisStore) Load(ctx context.Context) *State {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WarnContext(ctx, "state key unreadable, using defaults",
				slog.String("key", s.key),
				slog.String("error", err.Error()),
			)
		}
		return defaultState(s.defaultCap)
	}
	return decodeState(raw, s.defaultCap)
}

// Save overwrites the persisted representation with the three-field schema
func (s *RedisStore) Save(ctx context.Context, state *State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("write state key %s: %w", s.key, err)
	}
	return nil
}

// Ping reports whether the Redis backend is reachable
func (s *RedisStore) Ping(ctx context.Context) error {
	return cache.Ping(ctx, s.client)
}
