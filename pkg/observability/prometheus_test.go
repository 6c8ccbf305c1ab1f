package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusHooksLookups(t *testing.T) {
	ctx := context.Background()
	h := NewPrometheusHooks(prometheus.NewRegistry())

	h.OnLookupComplete(ctx, "isbn", OutcomeFound, 20*time.Millisecond, nil)
	h.OnLookupComplete(ctx, "isbn", OutcomeCacheHit, time.Millisecond, nil)
	h.OnLookupComplete(ctx, "isbn", OutcomeCacheHit, time.Millisecond, nil)
	h.OnLookupComplete(ctx, "isbn", OutcomeFault, time.Second, errors.New("boom"))

	tests := []struct {
		outcome string
		want    float64
	}{
		{OutcomeFound, 1},
		{OutcomeCacheHit, 2},
		{OutcomeFault, 1},
		{OutcomeLookupError, 0},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(h.lookups.WithLabelValues(tt.outcome)); got != tt.want {
			t.Errorf("lookups{outcome=%q} = %v, want %v", tt.outcome, got, tt.want)
		}
	}
}

func TestPrometheusHooksCache(t *testing.T) {
	ctx := context.Background()
	h := NewPrometheusHooks(prometheus.NewRegistry())

	h.OnCacheMiss(ctx, "book")
	h.OnCacheSet(ctx, "book", 512)
	h.OnCacheHit(ctx, "book")
	h.OnCacheError(ctx, "book", "get", errors.New("down"))

	for event, want := range map[string]float64{"hit": 1, "miss": 1, "set": 1, "get_error": 1} {
		if got := testutil.ToFloat64(h.cacheEvents.WithLabelValues("book", event)); got != want {
			t.Errorf("cache_events{event=%q} = %v, want %v", event, got, want)
		}
	}
	if got := testutil.ToFloat64(h.cacheBytes.WithLabelValues("book")); got != 512 {
		t.Errorf("cache_written_bytes = %v, want 512", got)
	}
}

func TestPrometheusHooksHTTP(t *testing.T) {
	ctx := context.Background()
	h := NewPrometheusHooks(prometheus.NewRegistry())

	h.OnRequest(ctx, "GET", "books.example", "/volumes")
	h.OnResponse(ctx, "GET", "books.example", "/volumes", 200, 50*time.Millisecond)
	h.OnResponse(ctx, "GET", "books.example", "/volumes", 503, 10*time.Millisecond)
	h.OnError(ctx, "GET", "books.example", "/volumes", errors.New("refused"))

	if got := testutil.ToFloat64(h.upstream.WithLabelValues("books.example", "200")); got != 1 {
		t.Errorf("upstream{status=200} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.upstream.WithLabelValues("books.example", "503")); got != 1 {
		t.Errorf("upstream{status=503} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.upstreamErrors.WithLabelValues("books.example")); got != 1 {
		t.Errorf("upstream_errors = %v, want 1", got)
	}
}

func TestNewPrometheusHooksRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewPrometheusHooks(reg)
	h.OnLookupComplete(context.Background(), "isbn", OutcomeFound, time.Millisecond, nil)

	n, err := testutil.GatherAndCount(reg, "biblio_lookups_total")
	if err != nil {
		t.Fatalf("GatherAndCount error: %v", err)
	}
	if n != 1 {
		t.Errorf("biblio_lookups_total series = %d, want 1", n)
	}

	// A second registration on the same registry must panic.
	defer func() {
		if recover() == nil {
			t.Error("registering twice should panic")
		}
	}()
	NewPrometheusHooks(reg)
}

func TestNewPrometheusHooksNilRegisterer(t *testing.T) {
	h := NewPrometheusHooks(nil)
	h.OnCacheHit(context.Background(), "book")
	if got := testutil.ToFloat64(h.cacheEvents.WithLabelValues("book", "hit")); got != 1 {
		t.Errorf("hit = %v, want 1", got)
	}
}
