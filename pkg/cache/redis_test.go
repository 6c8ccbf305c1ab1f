package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, prefix string) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), prefix)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestRedisCache(t *testing.T) {
	c, mr := newTestRedis(t, "biblio:")
	testBackend(t, c, mr.FastForward)
}

func TestRedisCacheUsesPrefixAndTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, "biblio:")

	if err := c.Set(ctx, "9780316769488", []byte("rec"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if !mr.Exists("biblio:9780316769488") {
		t.Fatal("key should be stored with prefix")
	}
	if ttl := mr.TTL("biblio:9780316769488"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}
}

func TestRedisCacheClear(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, "biblio:")

	_ = c.Set(ctx, "a", []byte("1"), time.Hour)
	_ = c.Set(ctx, "b", []byte("2"), time.Hour)
	if err := mr.Set("other:c", "3"); err != nil {
		t.Fatal(err)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear removed %d keys, want 2", n)
	}
	if !mr.Exists("other:c") {
		t.Error("Clear should leave keys outside the prefix alone")
	}
}

func TestRedisCacheClearRequiresPrefix(t *testing.T) {
	c, _ := newTestRedis(t, "")
	if _, err := c.Clear(context.Background()); err == nil {
		t.Error("Clear with empty prefix should fail")
	}
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	t.Run("host port", func(t *testing.T) {
		c, err := NewRedisCache(ctx, RedisConfig{Addr: mr.Addr(), KeyPrefix: "p:"})
		if err != nil {
			t.Fatalf("NewRedisCache error: %v", err)
		}
		defer c.Close()
		if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
			t.Errorf("Set error: %v", err)
		}
	})

	t.Run("url", func(t *testing.T) {
		c, err := NewRedisCache(ctx, RedisConfig{Addr: "redis://" + mr.Addr() + "/0"})
		if err != nil {
			t.Fatalf("NewRedisCache error: %v", err)
		}
		c.Close()
	})

	t.Run("unreachable", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if _, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
			t.Error("NewRedisCache should fail when redis is unreachable")
		}
	})
}
