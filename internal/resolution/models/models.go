package models

import "time"

// DidRecord is the outcome of a successful resolution.
type DidRecord struct {
	DID           string `json:"did"`
	Verkey        string `json:"verkey"`
	Role          string `json:"role,omitempty"`
	SelfCertified bool   `json:"self_certified"`
	PoolID        string `json:"pool_id"`
}

// CacheEntry is what resolution stores per DID. It is only trusted while
// PoolID still names a configured pool.
type CacheEntry struct {
	Record   DidRecord `json:"record"`
	PoolID   string    `json:"pool_id"`
	StoredAt time.Time `json:"stored_at"`
}

const cacheKeyPrefix = "resolution:"

// CacheKey is the namespaced cache key for did.
func CacheKey(did string) string {
	return cacheKeyPrefix + did
}
