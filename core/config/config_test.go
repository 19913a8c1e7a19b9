package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OleksUA-dev/magento-go/core/config"
)

// Tests mutate the process environment, so no t.Parallel here.

type storeConfig struct {
	BaseURL string        `env:"TEST_STORE_URL,required"`
	Timeout time.Duration `env:"TEST_STORE_TIMEOUT" envDefault:"30s"`
}

type limiterConfig struct {
	Requests int `env:"TEST_LIMITER_REQUESTS" envDefault:"100"`
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_STORE_URL", "https://shop.example.com")

	var cfg storeConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "https://shop.example.com", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	// Cached: changing the environment does not affect later loads of
	// the same type.
	t.Setenv("TEST_STORE_URL", "https://other.example.com")
	var cfg2 storeConfig
	require.NoError(t, config.Load(&cfg2))
	assert.Equal(t, cfg, cfg2)
}

func TestLoad_Defaults(t *testing.T) {
	var cfg limiterConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 100, cfg.Requests)
}

func TestLoad_RequiredMissing(t *testing.T) {
	type missingConfig struct {
		Token string `env:"TEST_DEFINITELY_UNSET_VAR,required"`
	}

	var cfg missingConfig
	assert.Error(t, config.Load(&cfg))
}

func TestMustLoad_Panics(t *testing.T) {
	type missingConfig struct {
		Secret string `env:"TEST_ANOTHER_UNSET_VAR,required"`
	}

	assert.Panics(t, func() {
		var cfg missingConfig
		config.MustLoad(&cfg)
	})
}
