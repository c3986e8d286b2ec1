package store

import (
	"context"
	"sync"
	"time"

	"didpool/internal/resolution/models"
	"didpool/pkg/platform/sentinel"
)

// ErrNotFound is returned when a key is absent or expired.
var ErrNotFound = sentinel.ErrNotFound

type cachedEntry struct {
	entry    models.CacheEntry
	storedAt time.Time
}

// MemoryCache is a process-local resolution cache with optional TTL.
type MemoryCache struct {
	mu       sync.RWMutex
	entries  map[string]cachedEntry
	cacheTTL time.Duration
}

// NewMemoryCache creates an in-memory cache. A zero TTL keeps entries for
// the process lifetime.
func NewMemoryCache(cacheTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		entries:  make(map[string]cachedEntry),
		cacheTTL: cacheTTL,
	}
}

// Set stores entry under key, replacing any previous value.
func (c *MemoryCache) Set(_ context.Context, key string, entry models.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedEntry{entry: entry, storedAt: time.Now()}
	return nil
}

// Get returns the entry for key, or ErrNotFound if it is absent or older
// than the TTL.
func (c *MemoryCache) Get(_ context.Context, key string) (models.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.entries[key]
	if !ok {
		return models.CacheEntry{}, ErrNotFound
	}
	if c.cacheTTL > 0 && time.Since(cached.storedAt) >= c.cacheTTL {
		return models.CacheEntry{}, ErrNotFound
	}
	return cached.entry, nil
}
