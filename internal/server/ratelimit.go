package server

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL = 10 * time.Minute
	limiterMaxKeys = 10000
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter manages an independent token bucket per key.
type keyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether a request for key may proceed now.
func (kl *keyedLimiter) Allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := kl.now()
	e, ok := kl.limiters[key]
	if !ok {
		if len(kl.limiters) >= limiterMaxKeys {
			kl.evictIdle(now)
		}
		if len(kl.limiters) >= limiterMaxKeys {
			kl.evictOldest()
		}
		e = &limiterEntry{limiter: rate.NewLimiter(kl.limit, kl.burst)}
		kl.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// evictIdle drops buckets untouched for limiterIdleTTL. Caller holds mu.
func (kl *keyedLimiter) evictIdle(now time.Time) {
	for k, e := range kl.limiters {
		if now.Sub(e.lastSeen) > limiterIdleTTL {
			delete(kl.limiters, k)
		}
	}
}

// evictOldest drops the least recently seen bucket. Caller holds mu.
func (kl *keyedLimiter) evictOldest() {
	var (
		oldestKey  string
		oldestSeen time.Time
		found      bool
	)
	for k, e := range kl.limiters {
		if !found || e.lastSeen.Before(oldestSeen) {
			oldestKey, oldestSeen, found = k, e.lastSeen, true
		}
	}
	if found {
		delete(kl.limiters, oldestKey)
	}
}

func (kl *keyedLimiter) size() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.limiters)
}

// clientIP returns the host part of RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
