package async

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by AwaitWithTimeout when the computation does
// not finish in time. The computation keeps running; only the wait is
// abandoned.
var ErrTimeout = errors.New("async: await timed out")

// ErrNoFutures is returned by WaitAny when called without futures.
var ErrNoFutures = errors.New("async: no futures to wait on")

// Future is the pending result of an asynchronous computation.
type Future[T any] struct {
	value T
	err   error
	done  chan struct{}
}

// Await blocks until the computation completes and returns its result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitWithTimeout waits up to timeout for the result. On expiry it
// returns ErrTimeout; the computation itself is not cancelled.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-time.After(timeout):
		var zero T
		return zero, ErrTimeout
	}
}

// IsComplete reports completion without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Go runs fn in its own goroutine and returns its Future. A context
// cancelled before fn starts short-circuits without running it.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		f.value, f.err = fn(ctx)
	}()

	return f
}

// Exec runs an error-only function asynchronously.
func Exec(ctx context.Context, fn func(context.Context) error) *Future[struct{}] {
	return Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
}

// WaitAll waits for every future and returns the results in order. The
// first error encountered is returned after all futures have settled.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	var firstErr error
	for i, f := range futures {
		v, err := f.Await()
		results[i] = v
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return results, firstErr
}

// WaitAny returns the index and result of the first future to settle.
// One goroutine per future is spawned; all finish naturally with their
// futures.
func WaitAny[T any](futures ...*Future[T]) (int, T, error) {
	if len(futures) == 0 {
		var zero T
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index int
		value T
		err   error
	}
	done := make(chan outcome, 1)

	for i, f := range futures {
		go func(index int, f *Future[T]) {
			v, err := f.Await()
			select {
			case done <- outcome{index, v, err}:
			default:
			}
		}(i, f)
	}

	res := <-done
	return res.index, res.value, res.err
}
