package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/OleksUA-dev/magento-go/core/auth"
	"github.com/OleksUA-dev/magento-go/core/logger"
	"github.com/OleksUA-dev/magento-go/core/transport"
	"github.com/OleksUA-dev/magento-go/pkg/ratelimit"
	"github.com/OleksUA-dev/magento-go/pkg/retry"
)

// ErrAdmissionTimeout reports that the overall request deadline expired
// while waiting for rate limiter admission, before any transport call
// was made.
var ErrAdmissionTimeout = errors.New("executor: timed out waiting for rate limit admission")

// TokenProvider is the credential surface the executor needs. Satisfied
// by auth.TokenCache.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
	Invalidate()
}

// Executor composes rate limiting, authentication, and retries around a
// transport. Every authenticated API call flows through Do: admission
// first, then a bearer token, then the transport call inside the retry
// policy. The limiter, token provider, and policy never see each other.
type Executor struct {
	transport transport.Transport
	limiter   ratelimit.Limiter
	tokens    TokenProvider
	policy    retry.Policy
	log       *slog.Logger
	timeout   time.Duration

	refreshOnAuthFailure bool
}

// Option configures an Executor.
type Option func(*Executor)

// WithRetryPolicy sets the transport retry policy. The zero policy
// makes exactly one attempt.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(e *Executor) {
		e.policy = policy
	}
}

// WithRequestTimeout bounds each logical call: admission wait, token
// refresh, and all retry attempts share the one deadline.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(e *Executor) {
		e.timeout = timeout
	}
}

// WithLogger sets the logger for per-call tracing.
func WithLogger(log *slog.Logger) Option {
	return func(e *Executor) {
		e.log = log
	}
}

// WithoutAuthRetry disables the forced token refresh after the upstream
// rejects a previously accepted token.
func WithoutAuthRetry() Option {
	return func(e *Executor) {
		e.refreshOnAuthFailure = false
	}
}

// New builds an executor. All three collaborators are required.
func New(t transport.Transport, limiter ratelimit.Limiter, tokens TokenProvider, opts ...Option) (*Executor, error) {
	if t == nil || limiter == nil || tokens == nil {
		return nil, errors.New("executor: transport, limiter, and token provider are required")
	}
	e := &Executor{
		transport:            t,
		limiter:              limiter,
		tokens:               tokens,
		refreshOnAuthFailure: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Do performs one logical API call and returns the successful response.
// Failures come back typed: ErrAdmissionTimeout, *auth.AuthError,
// *transport.Error, *transport.APIError, or *retry.ExhaustedError
// wrapping one of those.
//
// When the upstream signals an expired or invalid token, the cached
// token is invalidated and the call is re-run once with a forced
// refresh. That auth retry is a separate axis from the transport retry
// policy and never multiplies with it.
func (e *Executor) Do(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := e.limiter.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %w", ErrAdmissionTimeout, err)
		}
		return nil, err
	}

	resp, err := e.attempt(ctx, req, false)
	if err != nil && e.refreshOnAuthFailure && isAuthExpired(err) {
		e.tokens.Invalidate()
		if e.log != nil {
			e.log.DebugContext(ctx, "token rejected upstream, retrying with forced refresh",
				logger.Method(req.Method),
				logger.Endpoint(req.Path),
			)
		}
		resp, err = e.attempt(ctx, req, true)
	}

	if e.log != nil {
		if err != nil {
			e.log.WarnContext(ctx, "api call failed",
				logger.Method(req.Method),
				logger.Endpoint(req.Path),
				logger.Error(err),
				logger.Elapsed(start),
			)
		} else {
			e.log.DebugContext(ctx, "api call completed",
				logger.Method(req.Method),
				logger.Endpoint(req.Path),
				logger.StatusCode(resp.StatusCode),
				logger.Elapsed(start),
			)
		}
	}
	return resp, err
}

// attempt obtains a token and runs the transport call inside the retry
// policy. A forced attempt refreshes the token regardless of cached
// freshness.
func (e *Executor) attempt(ctx context.Context, req *transport.Request, force bool) (*transport.Response, error) {
	var resp *transport.Response
	err := e.policy.Do(ctx, func(ctx context.Context) error {
		var token string
		var err error
		if force {
			token, err = e.tokens.Refresh(ctx)
			force = false // later retry attempts reuse the refreshed token
		} else {
			token, err = e.tokens.Token(ctx)
		}
		if err != nil {
			return err
		}

		r := req.Clone()
		r.SetHeader("Authorization", "Bearer "+token)

		got, err := e.transport.Do(ctx, r)
		if err != nil {
			return err
		}
		if !got.IsSuccess() {
			return transport.APIErrorFromResponse(req, got)
		}
		resp = got
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// DoJSON performs the call and decodes a 2xx response body into out.
// A nil out discards the body.
func (e *Executor) DoJSON(ctx context.Context, req *transport.Request, out any) error {
	resp, err := e.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	return resp.DecodeJSON(out)
}

// isAuthExpired reports whether the upstream rejected the bearer token
// on an authenticated call. Issuance failures are excluded: a forced
// refresh repeats the same credential exchange, so a rejected login
// stays a single attempt.
func isAuthExpired(err error) bool {
	var authErr *auth.AuthError
	if errors.As(err, &authErr) {
		return false
	}
	var apiErr *transport.APIError
	return errors.As(err, &apiErr) && apiErr.Kind == transport.KindUnauthorized
}
