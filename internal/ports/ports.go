package ports

import (
	"context"
	"encoding/json"

	"neowatch/internal/domain"
)

// Feed is the upstream NEO data source, queried by date range or identifier.
type Feed interface {
	// Range returns per-day record collections keyed by YYYY-MM-DD date.
	Range(ctx context.Context, startDate, endDate string) (map[string][]domain.NeoRecord, error)
	// Lookup fetches a single record; domain.ErrNotFound when unknown.
	Lookup(ctx context.Context, id string) (domain.NeoRecord, error)
	// Stats returns the feed's own aggregate statistics document.
	Stats(ctx context.Context) (json.RawMessage, error)
}

// Producer computes a value for a cache miss; it may block on I/O.
type Producer func(ctx context.Context) (any, error)

// Cache is a TTL key-value store shared by concurrent requests.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	// GetOrCompute returns the cached value or runs producer, caching its
	// result. Concurrent misses for one key share a single producer call;
	// a failed producer caches nothing.
	GetOrCompute(ctx context.Context, key string, producer Producer) (any, error)
}
