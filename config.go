package magento

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/OleksUA-dev/magento-go/core/config"
)

// Configuration errors.
var (
	ErrMissingBaseURL     = errors.New("magento: base url is required")
	ErrInvalidBaseURL     = errors.New("magento: base url must be absolute http(s)")
	ErrMissingCredentials = errors.New("magento: username and password are required")
	ErrInvalidRateLimit   = errors.New("magento: rate limit and window must be positive")
	ErrInvalidRetry       = errors.New("magento: retry attempts and delays must be positive")
)

// Config holds everything needed to construct a Client. Fields map to
// MAGENTO_* environment variables for loading through core/config.
type Config struct {
	BaseURL  string `env:"MAGENTO_BASE_URL,required"`
	Username string `env:"MAGENTO_USERNAME,required"`
	Password string `env:"MAGENTO_PASSWORD,required"`

	Timeout        time.Duration `env:"MAGENTO_TIMEOUT" envDefault:"30s"`
	RequestTimeout time.Duration `env:"MAGENTO_REQUEST_TIMEOUT" envDefault:"2m"`

	RateLimit       int           `env:"MAGENTO_RATE_LIMIT" envDefault:"100"`
	RateLimitWindow time.Duration `env:"MAGENTO_RATE_LIMIT_WINDOW" envDefault:"1m"`
	Burst           int           `env:"MAGENTO_BURST" envDefault:"0"`

	MaxRetries     int           `env:"MAGENTO_MAX_RETRIES" envDefault:"3"`
	RetryBaseDelay time.Duration `env:"MAGENTO_RETRY_BASE_DELAY" envDefault:"1s"`
	RetryMaxDelay  time.Duration `env:"MAGENTO_RETRY_MAX_DELAY" envDefault:"30s"`
	RetryJitter    bool          `env:"MAGENTO_RETRY_JITTER" envDefault:"true"`

	TokenTTL  time.Duration `env:"MAGENTO_TOKEN_TTL" envDefault:"4h"`
	AuthRetry bool          `env:"MAGENTO_AUTH_RETRY" envDefault:"true"`

	VerifySSL bool   `env:"MAGENTO_VERIFY_SSL" envDefault:"true"`
	ProxyURL  string `env:"MAGENTO_PROXY_URL"`

	LogRequests bool `env:"MAGENTO_LOG_REQUESTS" envDefault:"false"`

	// RedisAddr, when set, switches the rate limiter to a distributed
	// token bucket shared by every process using the same address and
	// store.
	RedisAddr string `env:"MAGENTO_REDIS_ADDR"`
}

// Validate checks the configuration before any component is built.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidBaseURL, c.BaseURL)
	}
	if c.Username == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	if c.RateLimit <= 0 || c.RateLimitWindow <= 0 || c.Burst < 0 {
		return ErrInvalidRateLimit
	}
	if c.MaxRetries < 1 || c.RetryBaseDelay <= 0 || c.RetryMaxDelay < c.RetryBaseDelay {
		return ErrInvalidRetry
	}
	if c.ProxyURL != "" {
		if _, err := url.Parse(c.ProxyURL); err != nil {
			return fmt.Errorf("magento: invalid proxy url %q: %w", c.ProxyURL, err)
		}
	}
	return nil
}

// LoadConfig reads the configuration from MAGENTO_* environment
// variables, consulting a .env file when one exists in the working
// directory.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
