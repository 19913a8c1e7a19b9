package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter admits outbound requests. Implementations are safe for
// concurrent use from any number of goroutines.
type Limiter interface {
	// Acquire blocks until n tokens have been consumed or ctx ends.
	// It returns the context error on cancellation; the bucket state
	// stays consistent for other waiters.
	Acquire(ctx context.Context, n int) error

	// Available reports the current token count without consuming.
	Available(ctx context.Context) (float64, error)
}

// Config describes a request budget as requests per window with an
// optional burst capacity.
type Config struct {
	RequestsPerWindow int
	Window            time.Duration
	// Burst is the bucket capacity. Defaults to RequestsPerWindow.
	Burst int
}

func (c Config) validate() error {
	if c.RequestsPerWindow <= 0 || c.Window <= 0 || c.Burst < 0 {
		return ErrInvalidConfig
	}
	return nil
}

func (c Config) refillRate() float64 {
	return float64(c.RequestsPerWindow) / c.Window.Seconds()
}

func (c Config) burst() float64 {
	if c.Burst > 0 {
		return float64(c.Burst)
	}
	return float64(c.RequestsPerWindow)
}

// MemoryLimiter is an in-process Limiter over a single TokenBucket.
// A single mutex serializes every consume attempt, so two callers never
// observe the same tokens as theirs. The mutex is not held while waiting
// for a refill: a woken caller re-attempts consumption and recomputes its
// wait if another caller got there first. Admission order among waiters
// is therefore not guaranteed, but refill is time-proportional so every
// waiter is eventually admitted.
type MemoryLimiter struct {
	mu     sync.Mutex
	bucket *TokenBucket
}

var _ Limiter = (*MemoryLimiter)(nil)

// NewMemoryLimiter creates a limiter for the given budget.
func NewMemoryLimiter(cfg Config, opts ...TokenBucketOption) (*MemoryLimiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	bucket, err := NewTokenBucket(cfg.burst(), cfg.refillRate(), opts...)
	if err != nil {
		return nil, err
	}

	return &MemoryLimiter{bucket: bucket}, nil
}

// Acquire consumes n tokens, sleeping between attempts until the bucket
// refills. Cancelling ctx abandons the wait without touching the bucket.
func (l *MemoryLimiter) Acquire(ctx context.Context, n int) error {
	if n <= 0 {
		return ErrInvalidTokenCount
	}
	// A request above capacity can never be satisfied; report it
	// instead of waiting out the context.
	if float64(n) > l.bucket.Capacity() {
		return fmt.Errorf("%w: %d exceeds burst capacity %.0f", ErrInvalidTokenCount, n, l.bucket.Capacity())
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	need := float64(n)
	for {
		l.mu.Lock()
		if l.bucket.TryConsume(need) {
			l.mu.Unlock()
			return nil
		}
		wait := l.bucket.TimeUntilAvailable(need)
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// TryAcquire consumes n tokens without waiting. It reports whether the
// tokens were consumed.
func (l *MemoryLimiter) TryAcquire(n int) bool {
	if n <= 0 {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bucket.TryConsume(float64(n))
}

// Available reports the current token count. The ctx parameter exists to
// satisfy Limiter; the in-memory implementation never blocks.
func (l *MemoryLimiter) Available(_ context.Context) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.bucket.Tokens(), nil
}
