// Package cache provides time-expiring key/value storage for lookup results.
//
// # Overview
//
// Every backend implements [Cache], a byte-oriented interface with a
// per-write TTL. Values are opaque to the cache; the lookup layer encodes
// records as JSON before storing them.
//
// Available backends:
//
//   - [MemoryCache]: in-process map, the default for a single server
//   - [FileCache]: one JSON file per key, survives restarts
//   - [RedisCache]: shared store for multi-instance deployments
//   - [MongoCache]: shared store for deployments already running MongoDB
//   - [NullCache]: caching disabled
//
// # Expiration
//
// Entries carry an absolute expiration instant computed at write time.
// Expiration is checked when an entry is read: a read past the instant
// behaves exactly like a miss. No backend runs a sweep to evict expired
// entries eagerly. A TTL of 0 means the entry never expires.
//
// # Concurrency
//
// All backends are safe for concurrent use. Concurrent writers to the same
// key resolve as last writer wins.
//
// # Namespacing
//
// [Prefixed] wraps any backend so that every key gets a fixed prefix,
// keeping lookup entries apart from anything else sharing the store:
//
//	books := cache.Prefixed(redisCache, "biblio_book:")
//	books.Set(ctx, "9780316769488", data, time.Hour) // key "biblio_book:9780316769488"
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store with per-entry expiration.
type Cache interface {
	// Get returns the value stored under key.
	// The bool is false when the key was never written or has expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key, replacing any existing entry.
	// The entry expires ttl after the call; ttl <= 0 means never.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Clock returns the current time. Backends that check expiration
// themselves accept a Clock so tests can control time.
type Clock func() time.Time

// expiry converts a TTL into an absolute instant; the zero time means
// the entry never expires.
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// expired reports whether an entry with the given expiration instant is
// no longer readable at now.
func expired(expiresAt, now time.Time) bool {
	return !expiresAt.IsZero() && !now.Before(expiresAt)
}
