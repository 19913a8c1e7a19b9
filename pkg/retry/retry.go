package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Retryable is implemented by errors that may succeed on a later attempt.
// Transport and API errors in this module implement it.
type Retryable interface {
	Retryable() bool
}

// IsRetryable reports whether err (or any error in its chain) declares
// itself retryable. Errors without a Retryable implementation are treated
// as permanent.
func IsRetryable(err error) bool {
	var r Retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	return false
}

// Backoff computes the wait after a failed attempt. Attempt numbering
// starts at 1, so Delay(1) is the wait before the second attempt.
type Backoff interface {
	Delay(attempt int) time.Duration
}

// Policy bounds retries of an operation: how many attempts, which
// failures qualify, and how long to wait between attempts.
type Policy struct {
	// MaxAttempts is the total attempt budget, including the first one.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// Backoff computes inter-attempt delays. Nil means no delay.
	Backoff Backoff

	// RetryIf overrides the default retryability check (IsRetryable).
	RetryIf func(error) bool
}

func (p Policy) maxAttempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p Policy) retryIf() func(error) bool {
	if p.RetryIf != nil {
		return p.RetryIf
	}
	return IsRetryable
}

func (p Policy) delay(attempt int) time.Duration {
	if p.Backoff == nil {
		return 0
	}
	return p.Backoff.Delay(attempt)
}

// ShouldRetry reports whether a failure on the given attempt warrants
// another one.
func (p Policy) ShouldRetry(err error, attempt int) bool {
	if attempt >= p.maxAttempts() {
		return false
	}
	return p.retryIf()(err)
}

// ExhaustedError wraps the last failure after the attempt budget was
// spent on a retryable error.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do runs fn under the policy. A non-retryable failure propagates
// unchanged on first occurrence; a retryable failure that outlives the
// attempt budget is wrapped in *ExhaustedError. Cancelling ctx during an
// inter-attempt wait returns the context error.
func (p Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	retryIf := p.retryIf()

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !retryIf(err) {
			return err
		}
		if attempt >= p.maxAttempts() {
			return &ExhaustedError{Attempts: attempt, Err: err}
		}

		timer := time.NewTimer(p.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
