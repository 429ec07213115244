// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides the Redis-backed BucketStore used when several
// instances share one write quota. The window is approximated with
// INCR + EXPIRE: the first hit in a window creates the key with the window
// TTL, subsequent hits increment it, and the key's expiry is the reset
// time. That gives per-key atomicity without scripts and is close enough
// to a fixed window for abuse control.
package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBucketStore counts quota hits in Redis, sharing budgets across
// instances.
type RedisBucketStore struct {
	client *redis.Client
	prefix string
}

// NewRedisBucketStore wraps client; keys are namespaced under "quota:".
func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, prefix: "quota:"}
}

// Take implements BucketStore.
func (s *RedisBucketStore) Take(ctx context.Context, key string, window time.Duration, capacity int) (int, time.Time, bool, error) {
	k := s.prefix + key

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, time.Time{}, false, err
	}
	if count == 1 {
		// First hit of a fresh window; arm the reset.
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, time.Time{}, false, err
		}
	}

	ttl, err := s.client.PTTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		// PTTL returns -1 for keys without an expiry; re-arm the window.
		ttl = window
		_ = s.client.Expire(ctx, k, window).Err()
	}
	reset := time.Now().Add(ttl)

	remaining := capacity - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, reset, int(count) <= capacity, nil
}
