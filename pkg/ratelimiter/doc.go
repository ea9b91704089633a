// Package ratelimiter implements token bucket rate limiting over pluggable
// stores.
//
// A bucket holds at most Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes tokens; a request that would drive the
// bucket below zero is rejected and consumes nothing.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       100,
//		RefillRate:     10,
//		RefillInterval: time.Second,
//	})
//
//	res, err := limiter.Allow(ctx, clientIP)
//	if err == nil && !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
//
// MemoryStore is process local and needs its cleanup loop running (Start or
// Run) to bound memory. RedisStore shares buckets across instances using a
// Lua script, so refill and consume happen in one round trip.
package ratelimiter
