// Package magento is a client library for the Magento 2 REST API with
// built-in rate limiting, cached admin token authentication, and
// configurable retries.
//
// # Quick Start
//
//	cfg := magento.Config{
//		BaseURL:  "https://shop.example.com",
//		Username: "api-admin",
//		Password: "secret",
//	}
//	config.MustLoad(&cfg) // or fill the struct directly
//
//	client, err := magento.New(cfg, magento.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	if err := client.Initialize(ctx); err != nil {
//		return err
//	}
//
//	product, err := client.Products.GetBySKU(ctx, "SKU-1")
//	orders, err := client.Orders.ListByStatus(ctx, sales.StatusPending, 1, 50)
//
// # Architecture
//
// Every API call flows through one pipeline: rate limiter admission,
// bearer token acquisition, then the transport call inside the retry
// policy. The components live in their own packages and never
// reference each other; the executor composes them.
//
//   - pkg/ratelimit: token bucket, in-memory and Redis-backed limiters
//   - pkg/retry: backoff strategies and the retry loop
//   - core/auth: cached admin token with single-flight refresh
//   - core/transport: HTTP delivery and the error taxonomy
//   - core/executor: the composition layer
//   - catalog, sales, customers: endpoint groups with typed DTOs
//   - search: searchCriteria query builder
//
// Failures surface typed: *transport.APIError carries the HTTP status,
// mapped kind, and upstream message; *transport.Error classifies
// delivery failures; *retry.ExhaustedError wraps the last failure with
// the attempt count. All of them unwrap with errors.As.
package magento
