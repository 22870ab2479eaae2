package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"arch1ve/internal/core"
)

// DefaultKeyPrefix namespaces every key the redis store writes.
const DefaultKeyPrefix = "arch1ve:search:"

// RedisStore shares results between instances through redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: DefaultKeyPrefix}
}

// OpenRedisStore connects to a redis:// URL.
func OpenRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opt), ttl), nil
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]core.SearchResult, error) {
	data, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var results []core.SearchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decode cached results: %w", err)
	}
	return results, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, results []core.SearchResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
