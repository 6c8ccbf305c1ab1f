package lookup

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/biblio/pkg/books"
	"github.com/matzehuels/biblio/pkg/cache"
	"github.com/matzehuels/biblio/pkg/errors"
	"github.com/matzehuels/biblio/pkg/integrations/googlebooks"
	"github.com/matzehuels/biblio/pkg/observability"
)

// Fetcher retrieves a raw catalog payload. *googlebooks.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, q googlebooks.Query) (googlebooks.Payload, error)
}

// Resolver runs identifier lookups against a Fetcher with a record cache
// in front of it.
type Resolver struct {
	fetcher Fetcher
	cache   *RecordCache
	ttl     time.Duration
	logger  *log.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for lookup and cache diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTTL overrides [DefaultTTL]. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// New creates a Resolver. If c is nil, caching is disabled.
func New(fetcher Fetcher, c cache.Cache, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher: fetcher,
		ttl:     DefaultTTL,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cache = NewRecordCache(c, r.logger)
	return r
}

// TTL returns how long resolved records are cached.
func (r *Resolver) TTL() time.Duration { return r.ttl }

// ResolveByIdentifier resolves raw to a book record.
//
// The returned Result holds either a record or a LookupError. A non-nil
// error is a fault: the catalog could not be reached (NETWORK_ERROR,
// TIMEOUT, RATE_LIMITED), or it answered in a shape that no longer matches
// the expected schema (SCHEMA_VIOLATION). Faults and LookupErrors are never
// cached.
func (r *Resolver) ResolveByIdentifier(ctx context.Context, raw string) (books.Result, error) {
	id := books.NormalizeIdentifier(raw)

	hooks := observability.Lookup()
	hooks.OnLookupStart(ctx, id)
	start := time.Now()

	res, outcome, err := r.resolve(ctx, id)

	hooks.OnLookupComplete(ctx, id, outcome, time.Since(start), err)
	return res, err
}

func (r *Resolver) resolve(ctx context.Context, id string) (books.Result, string, error) {
	if rec, ok := r.cache.Get(ctx, id); ok {
		r.logger.Debug("cache hit", "isbn", id)
		return books.Found(rec), observability.OutcomeCacheHit, nil
	}

	payload, err := r.fetcher.Fetch(ctx, googlebooks.Query{Identifier: id})
	if err != nil {
		r.logger.Warn("upstream request failed", "isbn", id, "code", errors.GetCode(err), "err", err)
		return books.Result{}, observability.OutcomeFault, err
	}

	if lerr := googlebooks.Validate(payload); lerr != nil {
		r.logger.Info("upstream returned no data", "isbn", id, "error", lerr.String())
		return books.Result{Err: lerr}, observability.OutcomeLookupError, nil
	}

	rec, lerr, err := googlebooks.Normalize(payload)
	if err != nil {
		r.logger.Error("unexpected upstream response", "isbn", id, "err", err)
		return books.Result{}, observability.OutcomeFault, err
	}
	if lerr != nil {
		r.logger.Info("no volume matched", "isbn", id)
		return books.Result{Err: lerr}, observability.OutcomeLookupError, nil
	}

	r.cache.Put(ctx, id, rec, r.ttl)
	r.logger.Debug("resolved", "isbn", id, "title", rec.Title)
	return books.Found(rec), observability.OutcomeFound, nil
}
