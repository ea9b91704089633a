package ratelimiter

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/tidal/core/logger"
)

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastAccess time.Time
}

// MemoryStore keeps buckets in process memory. Idle buckets are dropped by
// the cleanup loop started with Start or Run.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time

	cleanupInterval time.Duration
	idleTTL         time.Duration
	logger          *slog.Logger

	cancel context.CancelFunc
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often idle buckets are swept.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) { ms.cleanupInterval = interval }
}

// WithIdleTTL sets how long a bucket may go untouched before it is swept.
func WithIdleTTL(ttl time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) { ms.idleTTL = ttl }
}

// WithMemoryStoreLogger sets the logger used by the cleanup loop.
func WithMemoryStoreLogger(log *slog.Logger) MemoryStoreOption {
	return func(ms *MemoryStore) {
		if log != nil {
			ms.logger = log
		}
	}
}

// WithClock replaces time.Now. Intended for tests.
func WithClock(now func() time.Time) MemoryStoreOption {
	return func(ms *MemoryStore) { ms.now = now }
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		buckets:         make(map[string]*bucket),
		now:             time.Now,
		cleanupInterval: 5 * time.Minute,
		idleTTL:         10 * time.Minute,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(ms)
	}
	return ms
}

// Take implements Store.
func (ms *MemoryStore) Take(_ context.Context, key string, n int, cfg Config) (Take, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	b, ok := ms.buckets[key]
	if !ok {
		b = &bucket{tokens: cfg.Capacity, lastRefill: now}
		ms.buckets[key] = b
	}
	b.lastAccess = now

	// Whole intervals only; lastRefill advances by the intervals consumed so
	// partial progress toward the next refill is kept.
	if intervals := int64(now.Sub(b.lastRefill) / cfg.RefillInterval); intervals > 0 {
		added := min(intervals*int64(cfg.RefillRate), int64(cfg.Capacity))
		b.tokens = min(b.tokens+int(added), cfg.Capacity)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * cfg.RefillInterval)
	}

	t := Take{ResetAt: b.lastRefill.Add(cfg.RefillInterval)}
	if b.tokens >= n {
		b.tokens -= n
		t.Allowed = true
	}
	t.Remaining = b.tokens

	return t, nil
}

// Reset implements Store.
func (ms *MemoryStore) Reset(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.buckets, key)
	return nil
}

// Len returns the number of tracked buckets.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.buckets)
}

// Sweep drops buckets idle for longer than the idle TTL and returns how many
// were removed.
func (ms *MemoryStore) Sweep() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	cutoff := ms.now().Add(-ms.idleTTL)
	removed := 0
	for key, b := range ms.buckets {
		if b.lastAccess.Before(cutoff) {
			delete(ms.buckets, key)
			removed++
		}
	}
	return removed
}

// Start runs the cleanup loop until ctx is canceled or Stop is called.
func (ms *MemoryStore) Start(ctx context.Context) error {
	ms.mu.Lock()
	if ms.cancel != nil {
		ms.mu.Unlock()
		return ErrAlreadyStarted
	}
	if ms.cleanupInterval <= 0 {
		ms.mu.Unlock()
		return ErrInvalidConfig
	}
	ctx, ms.cancel = context.WithCancel(ctx)
	ms.mu.Unlock()

	ms.logger.InfoContext(ctx, "rate limiter cleanup started",
		logger.Component("ratelimiter"),
		slog.Duration("cleanup_interval", ms.cleanupInterval),
	)

	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := ms.Sweep(); n > 0 {
				ms.logger.DebugContext(ctx, "rate limiter buckets swept",
					logger.Component("ratelimiter"),
					slog.Int("removed", n),
				)
			}
		}
	}
}

// Stop ends the cleanup loop.
func (ms *MemoryStore) Stop() error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.cancel == nil {
		return ErrNotStarted
	}
	ms.cancel()
	ms.cancel = nil
	return nil
}

// Run returns a function suitable for errgroup.Group.Go.
func (ms *MemoryStore) Run(ctx context.Context) func() error {
	return func() error {
		err := ms.Start(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	}
}
