package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"didpool/internal/resolution/models"
)

// RedisCache stores resolution entries as JSON values in Redis.
type RedisCache struct {
	client   redis.Cmdable
	cacheTTL time.Duration
}

// NewRedisCache builds a Redis-backed cache. A zero TTL stores keys without
// expiry.
func NewRedisCache(client redis.Cmdable, cacheTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:   client,
		cacheTTL: cacheTTL,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (models.CacheEntry, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.CacheEntry{}, ErrNotFound
		}
		return models.CacheEntry{}, fmt.Errorf("get resolution cache: %w", err)
	}
	var entry models.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return models.CacheEntry{}, fmt.Errorf("decode resolution cache entry %s: %w", key, err)
	}
	return entry, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, entry models.CacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode resolution cache entry: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.cacheTTL).Err(); err != nil {
		return fmt.Errorf("set resolution cache: %w", err)
	}
	return nil
}
