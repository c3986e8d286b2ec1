package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"didpool/internal/resolution/models"
)

func testEntry(poolID string) models.CacheEntry {
	return models.CacheEntry{
		Record: models.DidRecord{
			DID:    "did:sov:Th7MpTaRZVRYnPiabds81Y",
			Verkey: "FYmoFw55GeQH7SRFa37dkx1d2dZ3zUF8ckg7wmL7ofN4",
			PoolID: poolID,
		},
		PoolID: poolID,
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	key := models.CacheKey("did:sov:Th7MpTaRZVRYnPiabds81Y")

	t.Run("miss returns ErrNotFound", func(t *testing.T) {
		cache := NewMemoryCache(0)
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		cache := NewMemoryCache(0)
		require.NoError(t, cache.Set(ctx, key, testEntry("sovrin-main")))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, testEntry("sovrin-main"), got)
	})

	t.Run("set overwrites", func(t *testing.T) {
		cache := NewMemoryCache(0)
		require.NoError(t, cache.Set(ctx, key, testEntry("a")))
		require.NoError(t, cache.Set(ctx, key, testEntry("b")))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "b", got.PoolID)
	})

	t.Run("expired entries miss", func(t *testing.T) {
		cache := NewMemoryCache(20 * time.Millisecond)
		require.NoError(t, cache.Set(ctx, key, testEntry("a")))
		time.Sleep(40 * time.Millisecond)

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
