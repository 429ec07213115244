// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements WriteQuota, a fixed-window quota for submission
// endpoints (listing creation, adoption requests, reports, uploads). It is
// deliberately separate from the token-bucket edge limiter in ratelimit.go:
// the edge limiter smooths overall request pressure, while WriteQuota
// enforces a hard per-identity budget per window and reports it to clients
// through X-RateLimit-* headers.
//
// The counter storage is pluggable: MemoryBucketStore for a single process,
// RedisBucketStore (window_redis.go) when several instances must share one
// budget.
package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// BucketStore counts hits per key within a fixed window.
//
// Take records one hit for key and reports the state of the current window:
// the remaining budget after this hit, when the window resets, and whether
// the hit fit inside capacity. Implementations must be safe for concurrent
// use.
type BucketStore interface {
	Take(ctx context.Context, key string, window time.Duration, capacity int) (remaining int, reset time.Time, allowed bool, err error)
}

// windowEntry is one identity's counter in the in-memory store.
type windowEntry struct {
	count       int
	windowStart time.Time
	lastSeen    time.Time
}

// MemoryBucketStore is the process-local BucketStore. Entries idle for
// longer than the sweep TTL are evicted opportunistically during lookups,
// in the same style as the edge limiter's visitor map.
type MemoryBucketStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry

	ttl    time.Duration
	sweepN uint64
}

// NewMemoryBucketStore returns an empty store with a 24h idle-eviction TTL.
func NewMemoryBucketStore() *MemoryBucketStore {
	return &MemoryBucketStore{
		entries: make(map[string]*windowEntry),
		ttl:     24 * time.Hour,
	}
}

// Take implements BucketStore.
func (s *MemoryBucketStore) Take(_ context.Context, key string, window time.Duration, capacity int) (int, time.Time, bool, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic sweep of idle identities, before touching the
	// requested entry so a stale bucket for this key is also dropped.
	s.sweepN++
	if s.sweepN >= 5000 {
		for k, e := range s.entries {
			if now.Sub(e.lastSeen) >= s.ttl {
				delete(s.entries, k)
			}
		}
		s.sweepN = 0
	}

	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStart) >= window {
		e = &windowEntry{windowStart: now}
		s.entries[key] = e
	}
	e.count++
	e.lastSeen = now

	reset := e.windowStart.Add(window)
	remaining := capacity - e.count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, reset, e.count <= capacity, nil
}

// QuotaOptions configures one WriteQuota bucket.
type QuotaOptions struct {
	// Bucket names the endpoint family (e.g. "dogs", "adoptions"); each
	// bucket has its own budget per identity.
	Bucket string
	// Capacity is the number of hits allowed per window.
	Capacity int
	// Window is the fixed-window length.
	Window time.Duration
	// Store holds the counters; nil falls back to a private in-memory store.
	Store BucketStore
}

// WriteQuota returns a Gin middleware enforcing a fixed-window budget per
// (bucket, identity). The identity is the authenticated user when present
// and the client IP otherwise.
//
// Every response (allowed or denied) carries:
//
//	X-RateLimit-Limit:     <capacity>
//	X-RateLimit-Remaining: <remaining in this window>
//	X-RateLimit-Reset:     <unix seconds of window reset>
//
// Denied requests get 429, Retry-After (seconds until reset) and the
// standard error envelope. Store failures fail open: a broken Redis must
// not take submissions down with it.
func WriteQuota(opts QuotaOptions) gin.HandlerFunc {
	store := opts.Store
	if store == nil {
		store = NewMemoryBucketStore()
	}
	keyFn := KeyByUserOrIP()

	return func(c *gin.Context) {
		key := opts.Bucket + ":" + keyFn(c)

		remaining, reset, allowed, err := store.Take(c.Request.Context(), key, opts.Window, opts.Capacity)
		if err != nil {
			log.Warn().Err(err).Str("bucket", opts.Bucket).Msg("quota store unavailable, failing open")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(opts.Capacity))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

		if !allowed {
			retry := int(time.Until(reset).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errEnvelope(c, "too_many_requests", "submission limit reached, try again later"))
			return
		}
		c.Next()
	}
}
