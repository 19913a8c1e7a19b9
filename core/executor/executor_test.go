package executor_test

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OleksUA-dev/magento-go/core/auth"
	"github.com/OleksUA-dev/magento-go/core/executor"
	"github.com/OleksUA-dev/magento-go/core/transport"
	"github.com/OleksUA-dev/magento-go/pkg/ratelimit"
	"github.com/OleksUA-dev/magento-go/pkg/retry"
)

type fakeTransport struct {
	calls atomic.Int64
	fn    func(call int64, req *transport.Request) (*transport.Response, error)
}

func (f *fakeTransport) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	return f.fn(f.calls.Add(1), req)
}

type fakeTokens struct {
	tokenCalls      atomic.Int64
	refreshCalls    atomic.Int64
	invalidateCalls atomic.Int64
	current         atomic.Value // string
}

func newFakeTokens(initial string) *fakeTokens {
	f := &fakeTokens{}
	f.current.Store(initial)
	return f
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	f.tokenCalls.Add(1)
	return f.current.Load().(string), nil
}

func (f *fakeTokens) Refresh(ctx context.Context) (string, error) {
	f.refreshCalls.Add(1)
	f.current.Store("refreshed-token")
	return "refreshed-token", nil
}

func (f *fakeTokens) Invalidate() {
	f.invalidateCalls.Add(1)
}

// blockingLimiter never admits; Acquire waits for the context.
type blockingLimiter struct{}

func (blockingLimiter) Acquire(ctx context.Context, n int) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingLimiter) Available(ctx context.Context) (float64, error) { return 0, nil }

func openLimiter(t *testing.T) ratelimit.Limiter {
	t.Helper()
	limiter, err := ratelimit.NewMemoryLimiter(ratelimit.Config{
		RequestsPerWindow: 1000,
		Window:            time.Second,
	})
	require.NoError(t, err)
	return limiter
}

func ok(body string) *transport.Response {
	return &transport.Response{StatusCode: http.StatusOK, Body: []byte(body)}
}

func status(code int, body string) *transport.Response {
	return &transport.Response{StatusCode: code, Body: []byte(body)}
}

func TestExecutor_Do(t *testing.T) {
	t.Parallel()

	t.Run("attaches bearer token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		tr := &fakeTransport{fn: func(_ int64, req *transport.Request) (*transport.Response, error) {
			gotAuth = req.Headers.Get("Authorization")
			return ok(`{"sku":"TEST-1"}`), nil
		}}
		tokens := newFakeTokens("initial-token")

		exec, err := executor.New(tr, openLimiter(t), tokens)
		require.NoError(t, err)

		var out struct {
			SKU string `json:"sku"`
		}
		req := &transport.Request{Method: http.MethodGet, Path: "rest/V1/products/TEST-1"}
		require.NoError(t, exec.DoJSON(context.Background(), req, &out))

		assert.Equal(t, "Bearer initial-token", gotAuth)
		assert.Equal(t, "TEST-1", out.SKU)
		assert.Nil(t, req.Headers, "caller's request must stay unmodified")
	})

	t.Run("admission timeout is distinct", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(int64, *transport.Request) (*transport.Response, error) {
			t.Fatal("transport must not be reached")
			return nil, nil
		}}

		exec, err := executor.New(tr, blockingLimiter{}, newFakeTokens("tok"),
			executor.WithRequestTimeout(20*time.Millisecond))
		require.NoError(t, err)

		_, err = exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"})
		require.ErrorIs(t, err, executor.ErrAdmissionTimeout)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.EqualValues(t, 0, tr.calls.Load())
	})

	t.Run("forced refresh after upstream rejects token", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(call int64, req *transport.Request) (*transport.Response, error) {
			if req.Headers.Get("Authorization") == "Bearer stale-token" {
				return status(http.StatusUnauthorized, `{"message":"Token expired"}`), nil
			}
			return ok(`{"sku":"TEST-1"}`), nil
		}}
		tokens := newFakeTokens("stale-token")

		exec, err := executor.New(tr, openLimiter(t), tokens)
		require.NoError(t, err)

		resp, err := exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/products/TEST-1"})
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
		assert.EqualValues(t, 2, tr.calls.Load())
		assert.EqualValues(t, 1, tokens.invalidateCalls.Load())
		assert.EqualValues(t, 1, tokens.refreshCalls.Load())
	})

	t.Run("auth retry happens at most once", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(int64, *transport.Request) (*transport.Response, error) {
			return status(http.StatusUnauthorized, `{"message":"Token expired"}`), nil
		}}
		tokens := newFakeTokens("stale-token")

		exec, err := executor.New(tr, openLimiter(t), tokens)
		require.NoError(t, err)

		_, err = exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"})
		require.Error(t, err)

		var apiErr *transport.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, transport.KindUnauthorized, apiErr.Kind)
		assert.EqualValues(t, 2, tr.calls.Load(), "one original attempt plus one forced-refresh attempt")
		assert.EqualValues(t, 1, tokens.refreshCalls.Load())
	})

	t.Run("rejected credentials make a single issuance attempt", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(_ int64, req *transport.Request) (*transport.Response, error) {
			if req.Path == auth.TokenEndpoint {
				return status(http.StatusUnauthorized, `{"message":"The account sign-in was incorrect."}`), nil
			}
			return ok(`{}`), nil
		}}
		tokens, err := auth.NewTokenCache(tr, "admin", "wrong-password")
		require.NoError(t, err)

		exec, err := executor.New(tr, openLimiter(t), tokens)
		require.NoError(t, err)

		_, err = exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"})
		require.Error(t, err)

		var authErr *auth.AuthError
		require.ErrorAs(t, err, &authErr)
		// A forced refresh would repeat the same credential exchange,
		// so the rejected login must not trigger one.
		assert.EqualValues(t, 1, tr.calls.Load())
		assert.False(t, tokens.IsAuthenticated())
	})

	t.Run("auth retry disabled", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(int64, *transport.Request) (*transport.Response, error) {
			return status(http.StatusUnauthorized, `{"message":"Token expired"}`), nil
		}}
		tokens := newFakeTokens("stale-token")

		exec, err := executor.New(tr, openLimiter(t), tokens, executor.WithoutAuthRetry())
		require.NoError(t, err)

		_, err = exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"})
		require.Error(t, err)
		assert.EqualValues(t, 1, tr.calls.Load())
		assert.EqualValues(t, 0, tokens.refreshCalls.Load())
	})

	t.Run("retry policy covers transient server errors", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(call int64, _ *transport.Request) (*transport.Response, error) {
			if call < 3 {
				return status(http.StatusServiceUnavailable, ""), nil
			}
			return ok(`{"items":[]}`), nil
		}}

		exec, err := executor.New(tr, openLimiter(t), newFakeTokens("tok"),
			executor.WithRetryPolicy(retry.Policy{
				MaxAttempts: 3,
				Backoff:     retry.Fixed{Interval: time.Millisecond},
			}))
		require.NoError(t, err)

		resp, err := exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"})
		require.NoError(t, err)
		assert.True(t, resp.IsSuccess())
		assert.EqualValues(t, 3, tr.calls.Load())
	})

	t.Run("retry exhaustion wraps last failure", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(int64, *transport.Request) (*transport.Response, error) {
			return status(http.StatusTooManyRequests, ""), nil
		}}

		exec, err := executor.New(tr, openLimiter(t), newFakeTokens("tok"),
			executor.WithRetryPolicy(retry.Policy{
				MaxAttempts: 2,
				Backoff:     retry.Fixed{Interval: time.Millisecond},
			}))
		require.NoError(t, err)

		_, err = exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/orders"})
		require.Error(t, err)

		var exhausted *retry.ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 2, exhausted.Attempts)

		var apiErr *transport.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, transport.KindRateLimited, apiErr.Kind)
		assert.EqualValues(t, 2, tr.calls.Load())
	})

	t.Run("permanent failures are not retried", func(t *testing.T) {
		t.Parallel()

		tr := &fakeTransport{fn: func(int64, *transport.Request) (*transport.Response, error) {
			return status(http.StatusNotFound, `{"message":"No such entity"}`), nil
		}}

		exec, err := executor.New(tr, openLimiter(t), newFakeTokens("tok"),
			executor.WithRetryPolicy(retry.Policy{
				MaxAttempts: 3,
				Backoff:     retry.Fixed{Interval: time.Millisecond},
			}))
		require.NoError(t, err)

		_, err = exec.Do(context.Background(), &transport.Request{Method: http.MethodGet, Path: "rest/V1/products/MISSING"})
		require.Error(t, err)

		var apiErr *transport.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, transport.KindNotFound, apiErr.Kind)
		assert.Equal(t, "No such entity", apiErr.Message)
		assert.EqualValues(t, 1, tr.calls.Load())
	})
}

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	_, err := executor.New(nil, openLimiter(t), newFakeTokens("tok"))
	assert.Error(t, err)

	_, err = executor.New(&fakeTransport{}, nil, newFakeTokens("tok"))
	assert.Error(t, err)

	_, err = executor.New(&fakeTransport{}, openLimiter(t), nil)
	assert.Error(t, err)
}
