package lookup

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/matzehuels/biblio/pkg/books"
	"github.com/matzehuels/biblio/pkg/cache"
)

// brokenCache fails every operation.
type brokenCache struct{}

var errBroken = stderrors.New("backend down")

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errBroken }
func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errBroken
}
func (brokenCache) Delete(context.Context, string) error { return errBroken }
func (brokenCache) Close() error                          { return nil }

func TestRecordCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	rc := NewRecordCache(mem, quietLogger())

	desc := "D"
	rec := &books.Record{Title: "T", Authors: []string{"A"}, Description: &desc, Identifiers: []books.Identifier{}}
	rc.Put(ctx, "123", rec, time.Hour)

	if _, hit, _ := mem.Get(ctx, KeyPrefix+"123"); !hit {
		t.Errorf("entry should be stored under %q", KeyPrefix+"123")
	}

	got, ok := rc.Get(ctx, "123")
	if !ok {
		t.Fatal("Get should hit after Put")
	}
	if got.Title != "T" || *got.Description != "D" || len(got.Authors) != 1 {
		t.Errorf("Get = %+v", got)
	}

	if err := rc.Delete(ctx, "123"); err != nil {
		t.Fatal(err)
	}
	if _, ok := rc.Get(ctx, "123"); ok {
		t.Error("Get should miss after Delete")
	}
}

func TestRecordCacheCorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	_ = mem.Set(ctx, KeyPrefix+"123", []byte("{truncated"), time.Hour)

	rc := NewRecordCache(mem, quietLogger())
	if _, ok := rc.Get(ctx, "123"); ok {
		t.Error("undecodable entry should read as a miss")
	}
}

func TestRecordCacheBackendFailures(t *testing.T) {
	ctx := context.Background()
	rc := NewRecordCache(brokenCache{}, quietLogger())

	if _, ok := rc.Get(ctx, "123"); ok {
		t.Error("backend read errors should read as a miss")
	}
	// Must not panic or surface the error.
	rc.Put(ctx, "123", &books.Record{Title: "T"}, time.Hour)
}

func TestResolveSurvivesBrokenCache(t *testing.T) {
	f := &fakeFetcher{body: sampleBody}
	r := newResolver(f, brokenCache{})

	res, err := r.ResolveByIdentifier(context.Background(), "123")
	if err != nil || !res.OK() {
		t.Fatalf("lookup = %+v, %v; want record", res, err)
	}
}
