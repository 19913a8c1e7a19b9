// Package retry bounds repeated attempts of failing operations with
// configurable backoff.
//
// A Policy combines an attempt budget, a Backoff schedule, and a
// retryability check. Failures that do not qualify for retry propagate
// unchanged on first occurrence; retryable failures that outlive the
// budget come back wrapped in *ExhaustedError so callers can tell the
// two apart while still unwrapping to the original cause.
//
// # Usage
//
//	policy := retry.Policy{
//		MaxAttempts: 3,
//		Backoff: retry.Exponential{
//			Base:       time.Second,
//			Multiplier: 2,
//			Max:        30 * time.Second,
//			Jitter:     true,
//		},
//	}
//
//	err := policy.Do(ctx, func(ctx context.Context) error {
//		return callUpstream(ctx)
//	})
//
// By default an error qualifies for retry when it (or anything in its
// chain) implements `Retryable() bool` and reports true. Transport and
// API errors in this module do; set Policy.RetryIf to override.
//
// # Backoff schedules
//
// Fixed waits a constant interval. Linear adds a fixed increment per
// attempt. Exponential multiplies the delay per attempt and optionally
// applies jitter — a uniform scaling in [0.5, 1.0) — so a fleet of
// clients failing at the same moment does not retry at the same moment.
package retry
