package ratelimiter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeScript refills and consumes atomically on the server.
// KEYS[1] bucket; ARGV capacity, refill rate, interval ms, now ms, tokens.
// Returns {allowed, remaining, reset_at_ms}.
var takeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local n = tonumber(ARGV[5])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refilled')
local tokens = tonumber(state[1])
local refilled = tonumber(state[2])
if tokens == nil or refilled == nil then
	tokens = capacity
	refilled = now
end

local intervals = math.floor((now - refilled) / interval)
if intervals > 0 then
	tokens = math.min(capacity, tokens + intervals * rate)
	refilled = refilled + intervals * interval
end

local allowed = 0
if tokens >= n then
	tokens = tokens - n
	allowed = 1
end

redis.call('HSET', KEYS[1], 'tokens', tokens, 'refilled', refilled)
redis.call('PEXPIRE', KEYS[1], (math.ceil(capacity / rate) + 1) * interval)

return {allowed, tokens, refilled + interval}
`)

// RedisStore keeps buckets in Redis hashes so limits hold across instances.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix for bucket keys. Defaults to "ratelimit:".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) { rs.prefix = prefix }
}

// NewRedisStore creates a store over client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{client: client, prefix: "ratelimit:"}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Take implements Store.
func (rs *RedisStore) Take(ctx context.Context, key string, n int, cfg Config) (Take, error) {
	vals, err := takeScript.Run(ctx, rs.client, []string{rs.prefix + key},
		cfg.Capacity,
		cfg.RefillRate,
		cfg.RefillInterval.Milliseconds(),
		time.Now().UnixMilli(),
		n,
	).Int64Slice()
	if err != nil {
		return Take{}, err
	}
	if len(vals) != 3 {
		return Take{}, ErrStoreUnavailable
	}

	return Take{
		Allowed:   vals[0] == 1,
		Remaining: int(vals[1]),
		ResetAt:   time.UnixMilli(vals[2]),
	}, nil
}

// Reset implements Store.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	return rs.client.Del(ctx, rs.prefix+key).Err()
}
