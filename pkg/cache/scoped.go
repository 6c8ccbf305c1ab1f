package cache

import (
	"context"
	"time"
)

// PrefixedCache wraps a Cache and prepends a fixed prefix to every key.
// Clear is not forwarded: clearing a shared store through a namespace
// would drop other namespaces too.
type PrefixedCache struct {
	inner  Cache
	prefix string
}

// Prefixed returns a view of inner whose keys are all prefixed.
// If inner is nil, a NullCache is used. Prefixes compose:
// Prefixed(Prefixed(c, "a:"), "b:") stores under "a:b:<key>".
func Prefixed(inner Cache, prefix string) *PrefixedCache {
	if inner == nil {
		inner = NewNullCache()
	}
	return &PrefixedCache{inner: inner, prefix: prefix}
}

// Prefix returns the prefix applied to keys.
func (c *PrefixedCache) Prefix() string { return c.prefix }

// Get retrieves prefix+key from the wrapped cache.
func (c *PrefixedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, c.prefix+key)
}

// Set stores data under prefix+key in the wrapped cache.
func (c *PrefixedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return c.inner.Set(ctx, c.prefix+key, data, ttl)
}

// Delete removes prefix+key from the wrapped cache.
func (c *PrefixedCache) Delete(ctx context.Context, key string) error {
	return c.inner.Delete(ctx, c.prefix+key)
}

// Close closes the wrapped cache.
func (c *PrefixedCache) Close() error {
	return c.inner.Close()
}

var _ Cache = (*PrefixedCache)(nil)
