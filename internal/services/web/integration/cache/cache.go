// Package cache wires the web query cache store into the GraphQL client.
package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	webstorage "github.com/louisbranch/pickarick/internal/services/web/storage"
	websqlite "github.com/louisbranch/pickarick/internal/services/web/storage/sqlite"
	"go.uber.org/zap"
)

// ScopeGraphQL tags cache entries holding upstream GraphQL responses.
const ScopeGraphQL = "graphql"

// OpenStore opens the web cache store when a storage path is provided.
func OpenStore(path string) (*websqlite.Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create web cache dir: %w", err)
		}
	}
	store, err := websqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open web cache sqlite store: %w", err)
	}
	return store, nil
}

// QueryCache adapts a web cache Store to the GraphQL client cache contract.
type QueryCache struct {
	store webstorage.Store
	scope string
	now   func() time.Time
}

// NewQueryCache builds a QueryCache storing entries under ScopeGraphQL.
func NewQueryCache(store webstorage.Store) *QueryCache {
	return &QueryCache{store: store, scope: ScopeGraphQL, now: time.Now}
}

// Get returns a fresh payload. Stale or expired entries count as misses.
func (c *QueryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if c == nil || c.store == nil {
		return nil, false, nil
	}
	entry, ok, err := c.store.GetCacheEntry(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	if !entry.Fresh(c.now()) {
		return nil, false, nil
	}
	return entry.PayloadBytes, true, nil
}

// Put stores payload with an expiry ttl from now.
func (c *QueryCache) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if c == nil || c.store == nil {
		return nil
	}
	now := c.now().UTC()
	entry := webstorage.CacheEntry{
		CacheKey:     key,
		Scope:        c.scope,
		PayloadBytes: payload,
		CheckedAt:    now,
	}
	if ttl > 0 {
		entry.ExpiresAt = now.Add(ttl)
	}
	return c.store.PutCacheEntry(ctx, entry)
}

// Delete removes one cached response.
func (c *QueryCache) Delete(ctx context.Context, key string) error {
	if c == nil || c.store == nil {
		return nil
	}
	return c.store.DeleteCacheEntry(ctx, key)
}

// Invalidate marks every cached GraphQL response stale.
func (c *QueryCache) Invalidate(ctx context.Context) (int64, error) {
	if c == nil || c.store == nil {
		return 0, nil
	}
	return c.store.MarkScopeStale(ctx, c.scope, c.now().UTC())
}

// RunJanitor purges expired entries every interval until ctx ends.
func RunJanitor(ctx context.Context, store webstorage.Store, interval time.Duration, logger *zap.Logger) {
	if store == nil || interval <= 0 {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			purged, err := store.PurgeExpired(ctx, now.UTC())
			if err != nil {
				logger.Warn("purge expired cache entries", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Debug("purged expired cache entries", zap.Int64("count", purged))
			}
		}
	}
}
