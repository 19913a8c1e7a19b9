package magento

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/OleksUA-dev/magento-go/catalog"
	"github.com/OleksUA-dev/magento-go/core/auth"
	"github.com/OleksUA-dev/magento-go/core/executor"
	"github.com/OleksUA-dev/magento-go/core/transport"
	"github.com/OleksUA-dev/magento-go/customers"
	"github.com/OleksUA-dev/magento-go/pkg/async"
	"github.com/OleksUA-dev/magento-go/pkg/ratelimit"
	"github.com/OleksUA-dev/magento-go/pkg/retry"
	"github.com/OleksUA-dev/magento-go/sales"
)

// Client is the entry point to the store API. It owns the transport,
// rate limiter, token cache, and executor, and exposes the endpoint
// groups built on top of them. Construct with New; the zero value is
// not usable.
type Client struct {
	cfg     Config
	log     *slog.Logger
	tr      transport.Transport
	limiter ratelimit.Limiter
	tokens  *auth.TokenCache
	exec    *executor.Executor

	Products  *catalog.Products
	Orders    *sales.Orders
	Customers *customers.Customers
}

// Option configures a Client beyond what Config carries.
type Option func(*Client)

// WithLogger sets the logger wired through every component.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithTransport replaces the HTTP transport. Used in tests and for
// custom delivery (recording, instrumentation).
func WithTransport(tr transport.Transport) Option {
	return func(c *Client) {
		c.tr = tr
	}
}

// WithLimiter replaces the rate limiter built from config.
func WithLimiter(limiter ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// New validates cfg and wires the full client: transport, limiter,
// token cache, executor, and endpoint groups.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.tr == nil {
		tr, err := buildTransport(cfg, c.log)
		if err != nil {
			return nil, err
		}
		c.tr = tr
	}

	if c.limiter == nil {
		limiter, err := buildLimiter(cfg)
		if err != nil {
			return nil, err
		}
		c.limiter = limiter
	}

	tokens, err := auth.NewTokenCache(c.tr, cfg.Username, cfg.Password,
		auth.WithTTL(cfg.TokenTTL),
		auth.WithLogger(c.log),
	)
	if err != nil {
		return nil, err
	}
	c.tokens = tokens

	execOpts := []executor.Option{
		executor.WithRetryPolicy(retry.Policy{
			MaxAttempts: cfg.MaxRetries,
			Backoff: retry.Exponential{
				Base:   cfg.RetryBaseDelay,
				Max:    cfg.RetryMaxDelay,
				Jitter: cfg.RetryJitter,
			},
		}),
		executor.WithRequestTimeout(cfg.RequestTimeout),
		executor.WithLogger(c.log),
	}
	if !cfg.AuthRetry {
		execOpts = append(execOpts, executor.WithoutAuthRetry())
	}
	exec, err := executor.New(c.tr, c.limiter, tokens, execOpts...)
	if err != nil {
		return nil, err
	}
	c.exec = exec

	c.Products = catalog.NewProducts(exec, catalog.WithLogger(c.log))
	c.Orders = sales.NewOrders(exec, sales.WithLogger(c.log))
	c.Customers = customers.NewCustomers(exec, customers.WithLogger(c.log))

	return c, nil
}

func buildTransport(cfg Config, log *slog.Logger) (*transport.HTTPClient, error) {
	opts := []transport.HTTPOption{
		transport.WithHTTPTimeout(cfg.Timeout),
	}
	if cfg.LogRequests && log != nil {
		opts = append(opts, transport.WithLogger(log))
	}
	if !cfg.VerifySSL {
		opts = append(opts, transport.WithInsecureSkipVerify())
	}
	if cfg.ProxyURL != "" {
		proxy, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("magento: parse proxy url: %w", err)
		}
		opts = append(opts, transport.WithProxy(proxy))
	}
	return transport.NewHTTPClient(cfg.BaseURL, opts...)
}

func buildLimiter(cfg Config) (ratelimit.Limiter, error) {
	rlCfg := ratelimit.Config{
		RequestsPerWindow: cfg.RateLimit,
		Window:            cfg.RateLimitWindow,
		Burst:             cfg.Burst,
	}
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return ratelimit.NewRedisLimiter(client, hostKey(cfg.BaseURL), rlCfg)
	}
	return ratelimit.NewMemoryLimiter(rlCfg)
}

// hostKey derives the shared limiter key from the store host, so every
// process talking to the same store draws from one budget.
func hostKey(baseURL string) string {
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		return u.Host
	}
	return baseURL
}

// Initialize warms the token cache so the first API call does not pay
// for authentication. Optional; the cache refreshes lazily either way.
func (c *Client) Initialize(ctx context.Context) error {
	_, err := c.tokens.Token(ctx)
	return err
}

// InitializeAsync runs Initialize in the background and returns its
// future.
func (c *Client) InitializeAsync(ctx context.Context) *async.Future[struct{}] {
	return async.Exec(ctx, c.Initialize)
}

// IsAuthenticated reports whether a fresh token is cached. It never
// triggers a refresh.
func (c *Client) IsAuthenticated() bool {
	return c.tokens.IsAuthenticated()
}

// Logout drops the cached token. The next call re-authenticates.
func (c *Client) Logout() {
	c.tokens.Invalidate()
}

// ComponentStatus describes one component in a health report.
type ComponentStatus struct {
	Healthy bool   `json:"healthy"`
	Detail  string `json:"detail,omitempty"`
}

// Health is the report returned by HealthCheck.
type Health struct {
	Healthy     bool            `json:"healthy"`
	CheckedAt   time.Time       `json:"checked_at"`
	API         ComponentStatus `json:"api"`
	RateLimiter ComponentStatus `json:"rate_limiter"`
	Available   float64         `json:"available_tokens"`
}

// HealthCheck probes the API by obtaining a token and reports rate
// limiter availability.
func (c *Client) HealthCheck(ctx context.Context) Health {
	h := Health{Healthy: true, CheckedAt: time.Now()}

	if _, err := c.tokens.Token(ctx); err != nil {
		h.Healthy = false
		h.API = ComponentStatus{Healthy: false, Detail: err.Error()}
	} else {
		h.API = ComponentStatus{Healthy: true}
	}

	available, err := c.limiter.Available(ctx)
	if err != nil {
		h.Healthy = false
		h.RateLimiter = ComponentStatus{Healthy: false, Detail: err.Error()}
	} else {
		h.RateLimiter = ComponentStatus{Healthy: true}
		h.Available = available
	}

	return h
}

// Executor exposes the request executor for raw calls against
// endpoints this library does not wrap.
func (c *Client) Executor() *executor.Executor {
	return c.exec
}
