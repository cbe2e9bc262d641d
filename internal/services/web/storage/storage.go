package storage

import (
	"context"
	"time"
)

// CacheEntry stores one cached upstream payload and its freshness metadata.
type CacheEntry struct {
	CacheKey     string
	Scope        string
	PayloadBytes []byte
	Stale        bool
	CheckedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the entry is past its expiry at now.
// Entries without an expiry never expire.
func (e CacheEntry) Expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && !now.Before(e.ExpiresAt)
}

// Fresh reports whether the entry can be served at now.
func (e CacheEntry) Fresh(now time.Time) bool {
	return !e.Stale && !e.Expired(now)
}

// Store is the persistence contract for the web query cache.
type Store interface {
	Close() error
	GetCacheEntry(ctx context.Context, cacheKey string) (CacheEntry, bool, error)
	PutCacheEntry(ctx context.Context, entry CacheEntry) error
	DeleteCacheEntry(ctx context.Context, cacheKey string) error
	MarkScopeStale(ctx context.Context, scope string, checkedAt time.Time) (int64, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
