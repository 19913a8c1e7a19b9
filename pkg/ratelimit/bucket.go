package ratelimit

import (
	"time"
)

// TokenBucket implements the token bucket algorithm with lazy refill.
// Tokens are recomputed from elapsed wall-clock time on each access;
// there is no background timer.
//
// TokenBucket is not safe for concurrent use on its own. MemoryLimiter
// wraps it with the serialization required for concurrent callers.
type TokenBucket struct {
	capacity   float64
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
}

// TokenBucketOption configures a TokenBucket.
type TokenBucketOption func(*TokenBucket)

// WithClock overrides the time source. Intended for tests.
func WithClock(now func() time.Time) TokenBucketOption {
	return func(b *TokenBucket) {
		if now != nil {
			b.now = now
		}
	}
}

// NewTokenBucket creates a full bucket with the given capacity and refill
// rate in tokens per second. Both must be positive.
func NewTokenBucket(capacity, refillRate float64, opts ...TokenBucketOption) (*TokenBucket, error) {
	if capacity <= 0 || refillRate <= 0 {
		return nil, ErrInvalidConfig
	}

	b := &TokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.tokens = capacity
	b.lastRefill = b.now()

	return b, nil
}

// refill adds tokens proportional to the time elapsed since the last refill.
// Calling it repeatedly with no elapsed time is a no-op.
func (b *TokenBucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	b.tokens = min(b.capacity, b.tokens+elapsed*b.refillRate)
	b.lastRefill = now
}

// TryConsume refills the bucket and consumes n tokens if available.
// It returns false without mutating the token count otherwise.
// n must be positive; violating that is a caller bug.
func (b *TokenBucket) TryConsume(n float64) bool {
	if n <= 0 {
		panic("ratelimit: token count must be positive")
	}

	b.refill(b.now())
	if b.tokens >= n {
		b.tokens -= n
		return true
	}
	return false
}

// TimeUntilAvailable refills the bucket and reports how long until n tokens
// become available. It returns zero when the request is already satisfiable.
func (b *TokenBucket) TimeUntilAvailable(n float64) time.Duration {
	if n <= 0 {
		panic("ratelimit: token count must be positive")
	}

	b.refill(b.now())
	if b.tokens >= n {
		return 0
	}

	missing := n - b.tokens
	return time.Duration(missing / b.refillRate * float64(time.Second))
}

// Tokens refills the bucket and reports the current token count without
// consuming anything.
func (b *TokenBucket) Tokens() float64 {
	b.refill(b.now())
	return b.tokens
}

// Capacity reports the maximum token count the bucket can hold.
func (b *TokenBucket) Capacity() float64 {
	return b.capacity
}
