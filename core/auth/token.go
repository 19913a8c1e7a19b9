package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/OleksUA-dev/magento-go/core/transport"
	"github.com/OleksUA-dev/magento-go/pkg/security"
)

const (
	// TokenEndpoint is the unauthenticated admin token issuance path.
	TokenEndpoint = "rest/V1/integration/admin/token"

	// DefaultTTL is the lifetime applied to freshly issued tokens.
	// Magento's default admin token lifetime is 4 hours.
	DefaultTTL = 4 * time.Hour

	// safetyMargin is subtracted from the expiry when judging
	// freshness, so a token is never used in its final minute.
	safetyMargin = 60 * time.Second
)

// TokenCache owns the cached admin bearer token and its expiry. Reads
// of a fresh token take a shared lock; refreshes are single-flight, so
// N concurrent callers hitting an empty or stale cache trigger exactly
// one token issuance call and all observe its outcome.
type TokenCache struct {
	transport transport.Transport
	username  string
	password  string
	ttl       time.Duration
	log       *slog.Logger
	now       func() time.Time

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	group singleflight.Group
}

// TokenOption configures a TokenCache.
type TokenOption func(*TokenCache)

// WithTTL overrides the lifetime applied to freshly issued tokens.
func WithTTL(ttl time.Duration) TokenOption {
	return func(c *TokenCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the logger for refresh tracing. Tokens are masked
// before logging.
func WithLogger(log *slog.Logger) TokenOption {
	return func(c *TokenCache) {
		c.log = log
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) TokenOption {
	return func(c *TokenCache) {
		c.now = now
	}
}

// NewTokenCache builds a cache that issues tokens through t using the
// given admin credentials.
func NewTokenCache(t transport.Transport, username, password string, opts ...TokenOption) (*TokenCache, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	c := &TokenCache{
		transport: t,
		username:  username,
		password:  password,
		ttl:       DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Token returns the cached token if it is still fresh, refreshing it
// otherwise. Concurrent callers share a single refresh.
func (c *TokenCache) Token(ctx context.Context) (string, error) {
	return c.get(ctx, false)
}

// Refresh discards freshness and issues a new token, typically after
// the upstream rejected a token it previously accepted. Concurrent
// callers still share a single refresh.
func (c *TokenCache) Refresh(ctx context.Context) (string, error) {
	return c.get(ctx, true)
}

func (c *TokenCache) get(ctx context.Context, force bool) (string, error) {
	if !force {
		c.mu.RLock()
		token, fresh := c.token, c.fresh()
		c.mu.RUnlock()
		if fresh {
			return token, nil
		}
	}

	ch := c.group.DoChan("refresh", func() (any, error) {
		// A refresh may have completed between the freshness check
		// and joining the flight; re-check unless forced.
		if !force {
			c.mu.RLock()
			token, fresh := c.token, c.fresh()
			c.mu.RUnlock()
			if fresh {
				return token, nil
			}
		}
		return c.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		// The abandoned refresh keeps running so other waiters still
		// observe its outcome.
		return "", ctx.Err()
	}
}

// refresh issues the token call and updates cached state. Transport
// failures clear the cache and propagate wrapped; nothing is ever
// cached on failure.
func (c *TokenCache) refresh(ctx context.Context) (string, error) {
	resp, err := c.transport.Do(ctx, &transport.Request{
		Method: http.MethodPost,
		Path:   TokenEndpoint,
		Body: map[string]string{
			"username": c.username,
			"password": c.password,
		},
	})
	if err != nil {
		c.clear()
		return "", &AuthError{Err: err}
	}
	if !resp.IsSuccess() {
		c.clear()
		return "", &AuthError{Err: transport.APIErrorFromResponse(&transport.Request{Path: TokenEndpoint}, resp)}
	}

	token := parseTokenBody(resp.Body)
	if token == "" {
		c.clear()
		return "", &AuthError{Err: ErrEmptyToken}
	}

	c.mu.Lock()
	c.token = token
	c.expiresAt = c.now().Add(c.ttl)
	c.mu.Unlock()

	if c.log != nil {
		c.log.DebugContext(ctx, "admin token refreshed",
			slog.String("token", security.MaskSensitive(token, 4)),
			slog.Duration("ttl", c.ttl),
		)
	}
	return token, nil
}

// Invalidate unconditionally clears cached state. Safe to call at any
// time; calling it on an empty cache is a no-op.
func (c *TokenCache) Invalidate() {
	c.clear()
}

// IsAuthenticated reports whether the cache currently holds a fresh
// token. It never triggers a refresh.
func (c *TokenCache) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fresh()
}

func (c *TokenCache) clear() {
	c.mu.Lock()
	c.token = ""
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}

// fresh reports whether the held token is usable. Callers must hold
// c.mu.
func (c *TokenCache) fresh() bool {
	return c.token != "" && c.now().Before(c.expiresAt.Add(-safetyMargin))
}

// parseTokenBody extracts the token string from the issuance response.
// The endpoint answers with either a bare JSON string or an object
// with a "content" field. Compatibility shim: the bare form arrives
// quoted, and exactly one layer of surrounding quotes must be trimmed.
// Do not "fix" this to a full JSON string decode; upstream responses
// are not always valid JSON escapes.
func parseTokenBody(body []byte) string {
	s := strings.TrimSpace(string(body))

	if strings.HasPrefix(s, "{") {
		var wrapped struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Content != "" {
			return unquoteOnce(wrapped.Content)
		}
		return ""
	}
	return unquoteOnce(s)
}

func unquoteOnce(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
