package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval.
type Config struct {
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"60"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1s"`
}

// Validate reports whether every field is positive.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be > 0, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be > 0, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be > 0, got %s", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Take is the outcome of a single store operation.
type Take struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store persists buckets. Take must refill the bucket for key, then remove n
// tokens only if that many are available, atomically.
type Store interface {
	Take(ctx context.Context, key string, n int, cfg Config) (Take, error)
	Reset(ctx context.Context, key string) error
}

// RateLimiter decides whether a keyed caller may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	AllowN(ctx context.Context, key string, n int) (*Result, error)
}

// Result describes a limiter decision.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	allowed   bool
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool { return r.allowed }

// RetryAfter is how long a rejected caller should wait. Zero when allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Bucket is a token bucket RateLimiter over a Store.
type Bucket struct {
	store  Store
	config Config
}

// NewBucket validates cfg and returns a limiter backed by store.
func NewBucket(store Store, cfg Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: cfg}, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for key. Nothing is consumed when fewer than n are left.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 || n > b.config.Capacity {
		return nil, fmt.Errorf("%w: %d (capacity %d)", ErrInvalidTokenCount, n, b.config.Capacity)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := b.store.Take(ctx, key, n, b.config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return &Result{
		Limit:     b.config.Capacity,
		Remaining: t.Remaining,
		ResetAt:   t.ResetAt,
		allowed:   t.Allowed,
	}, nil
}

// Reset restores key to a full bucket.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}
