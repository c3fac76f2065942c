// Package cache provides byte caches for projection results and rendered
// artifacts.
//
// # Backends
//
//   - [FileCache]: one JSON envelope per key under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance for the HTTP server
//   - [NullCache]: never stores anything
//
// # Keys
//
// Keys are built by a [Keyer] from content hashes and the options that
// influence the output, so a changed graph or option never hits a stale entry.
// [ScopedKeyer] prefixes every key, which lets several deployments share one
// Redis database.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry type.
const (
	ProjectionTTL = 24 * time.Hour
	ArtifactTTL   = 7 * 24 * time.Hour
)

// Cache stores opaque byte values by key.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A zero ttl means the entry does not expire.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
