// Package cache stores computed layouts and rendered artifacts.
//
// Entries are opaque byte slices addressed by string keys. Keys are built
// by a [Keyer] from a content hash of the input plus every option that
// changes the output, so a key never maps to stale data and entries
// only need a TTL to bound disk or memory use.
//
// Backends:
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [MemoryCache]: process-local, used by tests and short-lived servers
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache is a byte cache with per-entry expiry.
type Cache interface {
	// Get returns the entry for key. A missing or expired entry is a miss
	// (false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Default entry lifetimes.
const (
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
