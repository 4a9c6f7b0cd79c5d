// Package rediscache provides Redis-based cache functionality.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dkovalev/go-skinstore/internal/config"
	cacheErrors "github.com/dkovalev/go-skinstore/internal/service/cache/v1/errors"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

type Cache struct {
	client *redis.Client
	log    *zerolog.Logger
}

// InitCache initializes a Redis-backed cache. A failed ping is logged and tolerated:
// the cache is best-effort and its unavailability must not prevent startup.
func InitCache(ctx context.Context, cfg *config.CacheConfig, log *zerolog.Logger) (*Cache, error) {
	opts, err := redis.ParseURL(cfg.RedisDSN)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	err = client.Ping(ctx).Err()
	if err != nil {
		log.Warn().Err(err).Msg("redis connection could not be established, cache degraded")
	} else {
		log.Info().Msg("redis connection was established")
	}
	return &Cache{client: client, log: log}, nil
}

// NewWithClient wraps an externally constructed Redis client.
func NewWithClient(client *redis.Client, log *zerolog.Logger) *Cache {
	return &Cache{client: client, log: log}
}

// Get retrieves a JSON-encoded entry into value, reporting a NotFoundError on cache miss.
func (c *Cache) Get(ctx context.Context, key string, value interface{}) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &cacheErrors.NotFoundError{Key: key}
		}
		return &cacheErrors.ExecutionCacheError{Err: err}
	}
	err = json.Unmarshal(raw, value)
	if err != nil {
		return &cacheErrors.EncodingCacheError{Err: err}
	}
	return nil
}

// Set stores a JSON-encoded entry under key with the given expiry.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return &cacheErrors.EncodingCacheError{Err: err}
	}
	err = c.client.Set(ctx, key, raw, ttl).Err()
	if err != nil {
		return &cacheErrors.ExecutionCacheError{Err: err}
	}
	return nil
}
