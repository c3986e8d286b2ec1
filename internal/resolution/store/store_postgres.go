package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"didpool/internal/resolution/models"
)

const createCacheTable = `
	CREATE TABLE IF NOT EXISTS did_resolution_cache (
		cache_key TEXT PRIMARY KEY,
		pool_id   TEXT NOT NULL,
		record    JSONB NOT NULL,
		stored_at TIMESTAMPTZ NOT NULL
	)
`

// PostgresCache persists resolution entries in PostgreSQL.
type PostgresCache struct {
	db       *sql.DB
	cacheTTL time.Duration
	clock    func() time.Time
}

// PostgresCacheOption configures a PostgresCache.
type PostgresCacheOption func(*PostgresCache)

// WithPostgresClock sets the clock used for TTL cut-offs.
func WithPostgresClock(clock func() time.Time) PostgresCacheOption {
	return func(c *PostgresCache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewPostgresCache constructs a PostgreSQL-backed cache. A zero TTL never
// expires rows.
func NewPostgresCache(db *sql.DB, cacheTTL time.Duration, opts ...PostgresCacheOption) *PostgresCache {
	c := &PostgresCache{
		db:       db,
		cacheTTL: cacheTTL,
		clock:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// EnsureSchema creates the cache table if it does not exist.
func (c *PostgresCache) EnsureSchema(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, createCacheTable); err != nil {
		return fmt.Errorf("create resolution cache table: %w", err)
	}
	return nil
}

func (c *PostgresCache) Get(ctx context.Context, key string) (models.CacheEntry, error) {
	var (
		poolID   string
		raw      []byte
		storedAt time.Time
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT pool_id, record, stored_at FROM did_resolution_cache WHERE cache_key = $1`,
		key,
	).Scan(&poolID, &raw, &storedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CacheEntry{}, ErrNotFound
		}
		return models.CacheEntry{}, fmt.Errorf("find resolution cache: %w", err)
	}
	if c.cacheTTL > 0 && c.clock().Sub(storedAt) >= c.cacheTTL {
		return models.CacheEntry{}, ErrNotFound
	}

	var record models.DidRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return models.CacheEntry{}, fmt.Errorf("decode resolution cache record %s: %w", key, err)
	}
	return models.CacheEntry{Record: record, PoolID: poolID, StoredAt: storedAt}, nil
}

func (c *PostgresCache) Set(ctx context.Context, key string, entry models.CacheEntry) error {
	raw, err := json.Marshal(entry.Record)
	if err != nil {
		return fmt.Errorf("encode resolution cache record: %w", err)
	}
	storedAt := entry.StoredAt
	if storedAt.IsZero() {
		storedAt = c.clock()
	}
	query := `
		INSERT INTO did_resolution_cache (cache_key, pool_id, record, stored_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cache_key) DO UPDATE SET
			pool_id = EXCLUDED.pool_id,
			record = EXCLUDED.record,
			stored_at = EXCLUDED.stored_at
	`
	if _, err := c.db.ExecContext(ctx, query, key, entry.PoolID, string(raw), storedAt); err != nil {
		return fmt.Errorf("save resolution cache: %w", err)
	}
	return nil
}
