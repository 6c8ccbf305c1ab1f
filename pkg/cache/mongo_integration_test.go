//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMongoCache_Integration(t *testing.T) {
	uri := os.Getenv("BIBLIO_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("BIBLIO_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, MongoConfig{
		URI:        uri,
		Database:   "biblio_test",
		Collection: "cache_" + time.Now().Format("150405"),
	})
	if err != nil {
		t.Fatalf("NewMongoCache() error: %v", err)
	}
	t.Cleanup(func() {
		_, _ = c.coll.Drop(context.Background())
		c.Close()
	})

	clock := newFakeClock()
	c.now = clock.Now

	testBackend(t, c, clock.Advance)

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if n == 0 {
		t.Error("Clear() should remove the entries written above")
	}
}
