package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript implements the token bucket transition atomically on the
// Redis side. Passing the requested amount as 0 refills and reports
// without consuming.
var consumeScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local requested = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil or last == nil then
	tokens = capacity
	last = now
end

local elapsed = now - last
if elapsed > 0 then
	tokens = math.min(capacity, tokens + elapsed * rate)
	last = now
end

local allowed = 0
local wait = 0
if requested > 0 then
	if tokens >= requested then
		tokens = tokens - requested
		allowed = 1
	else
		wait = (requested - tokens) / rate
	end
else
	allowed = 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill', last)
redis.call('EXPIRE', key, ttl)
return {allowed, tostring(wait), tostring(tokens)}
`)

// RedisLimiter is a Limiter whose bucket state lives in Redis, letting
// multiple client processes share one request budget. The consume step
// runs as a Lua script, so the refill-then-consume transition is atomic
// across processes.
type RedisLimiter struct {
	client redis.UniversalClient
	key    string
	cfg    Config
	ttl    time.Duration
	now    func() time.Time
}

var _ Limiter = (*RedisLimiter)(nil)

// RedisLimiterOption configures a RedisLimiter.
type RedisLimiterOption func(*RedisLimiter)

// WithStateTTL sets how long idle bucket state is kept in Redis.
func WithStateTTL(ttl time.Duration) RedisLimiterOption {
	return func(l *RedisLimiter) {
		if ttl > 0 {
			l.ttl = ttl
		}
	}
}

// WithRedisClock overrides the time source. Intended for tests.
func WithRedisClock(now func() time.Time) RedisLimiterOption {
	return func(l *RedisLimiter) {
		if now != nil {
			l.now = now
		}
	}
}

// NewRedisLimiter creates a distributed limiter keyed by key.
func NewRedisLimiter(client redis.UniversalClient, key string, cfg Config, opts ...RedisLimiterOption) (*RedisLimiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if client == nil || key == "" {
		return nil, ErrInvalidConfig
	}

	l := &RedisLimiter{
		client: client,
		key:    "ratelimit:" + key,
		cfg:    cfg,
		ttl:    time.Hour,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Acquire consumes n tokens, sleeping between attempts until the shared
// bucket refills.
func (l *RedisLimiter) Acquire(ctx context.Context, n int) error {
	if n <= 0 {
		return ErrInvalidTokenCount
	}
	if float64(n) > l.cfg.burst() {
		return fmt.Errorf("%w: %d exceeds burst capacity %.0f", ErrInvalidTokenCount, n, l.cfg.burst())
	}

	for {
		allowed, wait, _, err := l.consume(ctx, n)
		if err != nil {
			return err
		}
		if allowed {
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Available reports the current token count without consuming.
func (l *RedisLimiter) Available(ctx context.Context) (float64, error) {
	_, _, tokens, err := l.consume(ctx, 0)
	return tokens, err
}

func (l *RedisLimiter) consume(ctx context.Context, n int) (allowed bool, wait time.Duration, tokens float64, err error) {
	nowSec := float64(l.now().UnixNano()) / float64(time.Second)

	res, err := consumeScript.Run(ctx, l.client, []string{l.key},
		l.cfg.burst(),
		l.cfg.refillRate(),
		n,
		strconv.FormatFloat(nowSec, 'f', -1, 64),
		int(l.ttl.Seconds()),
	).Slice()
	if err != nil {
		return false, 0, 0, err
	}

	allowed = res[0].(int64) == 1
	waitSec, _ := strconv.ParseFloat(res[1].(string), 64)
	tokens, _ = strconv.ParseFloat(res[2].(string), 64)

	return allowed, time.Duration(waitSec * float64(time.Second)), tokens, nil
}
