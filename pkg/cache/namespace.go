package cache

import (
	"context"
	"time"
)

// Namespaced wraps a Cache with a key prefix so different data kinds (raw
// tree text, upstream metadata) can share one backing store without key
// collisions.
type Namespaced struct {
	inner  Cache
	prefix string
}

// NewNamespaced creates a cache view that prefixes all keys.
func NewNamespaced(inner Cache, prefix string) Cache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &Namespaced{inner: inner, prefix: prefix}
}

// Get retrieves a value under the prefixed key.
func (c *Namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores a value under the prefixed key.
func (c *Namespaced) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes the value under the prefixed key.
func (c *Namespaced) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the underlying cache.
func (c *Namespaced) Close() error { return c.inner.Close() }

// Ensure Namespaced implements Cache.
var _ Cache = (*Namespaced)(nil)
