// Package config provides type-safe environment variable loading with
// per-type caching. Each configuration type is parsed once and reused
// on subsequent calls.
//
// A .env file in the working directory is loaded automatically on first
// use; parsing is done by the caarlos0/env library.
//
// Basic usage:
//
//	type StoreConfig struct {
//		BaseURL  string `env:"MAGENTO_BASE_URL,required"`
//		Username string `env:"MAGENTO_USERNAME,required"`
//		Password string `env:"MAGENTO_PASSWORD,required"`
//		Timeout  time.Duration `env:"MAGENTO_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or abort on failure during startup:
//	config.MustLoad(&cfg)
//
// # Caching Behavior
//
// Each type is loaded only once per process; later Load calls for the
// same type return the cached value. Different types cache
// independently, so component configs can be loaded separately without
// re-reading the environment.
package config
