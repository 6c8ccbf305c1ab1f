package lookup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/biblio/pkg/books"
	"github.com/matzehuels/biblio/pkg/cache"
	"github.com/matzehuels/biblio/pkg/observability"
)

// KeyPrefix namespaces record entries in a shared cache backend.
const KeyPrefix = "biblio_book:"

// DefaultTTL is how long a resolved record stays cached.
const DefaultTTL = time.Hour

const keyType = "book"

// RecordCache stores books.Record values as JSON in a byte-level cache.
type RecordCache struct {
	c      cache.Cache
	logger *log.Logger
}

// NewRecordCache wraps c, prefixing every key with [KeyPrefix].
// A nil c disables caching; a nil logger uses log.Default().
func NewRecordCache(c cache.Cache, logger *log.Logger) *RecordCache {
	if logger == nil {
		logger = log.Default()
	}
	return &RecordCache{c: cache.Prefixed(c, KeyPrefix), logger: logger}
}

// Get returns the record cached under key. Backend errors and entries that
// no longer decode are logged and reported as a miss.
func (rc *RecordCache) Get(ctx context.Context, key string) (*books.Record, bool) {
	hooks := observability.Cache()

	data, hit, err := rc.c.Get(ctx, key)
	if err != nil {
		rc.logger.Warn("cache read failed", "key", key, "err", err)
		hooks.OnCacheError(ctx, keyType, "get", err)
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}

	var rec books.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		rc.logger.Warn("discarding undecodable cache entry", "key", key, "err", err)
		hooks.OnCacheError(ctx, keyType, "decode", err)
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	return &rec, true
}

// Put stores rec under key for ttl, replacing any existing entry.
// Failures are logged and otherwise ignored.
func (rc *RecordCache) Put(ctx context.Context, key string, rec *books.Record, ttl time.Duration) {
	data, err := json.Marshal(rec)
	if err != nil {
		rc.logger.Error("cannot encode record for cache", "key", key, "err", err)
		return
	}
	if err := rc.c.Set(ctx, key, data, ttl); err != nil {
		rc.logger.Warn("cache write failed", "key", key, "err", err)
		observability.Cache().OnCacheError(ctx, keyType, "set", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Delete removes the entry for key.
func (rc *RecordCache) Delete(ctx context.Context, key string) error {
	return rc.c.Delete(ctx, key)
}
