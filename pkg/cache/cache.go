// Package cache provides byte-level caching for upstream tree-data text.
//
// The engine itself never performs I/O; this package backs the raw-data
// [Source] collaborators so repeated analyses of the same data version do
// not refetch the multi-megabyte tree dump.
//
// Two implementations are provided: [FileCache] for persistent CLI usage and
// [NullCache] for tests or when caching is disabled.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with optional TTL.
// A miss is reported through Get's bool, not an error: implementations
// reserve the error return for real failures (I/O, corruption).
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
