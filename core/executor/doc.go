// Package executor ties the client's control plane together: every
// authenticated API call passes through rate limiter admission, bearer
// token acquisition, and the transport retry policy, in that order.
//
//	exec, err := executor.New(httpClient, limiter, tokenCache,
//		executor.WithRetryPolicy(retry.Policy{
//			MaxAttempts: 3,
//			Backoff:     retry.Exponential{Base: time.Second, Max: 30 * time.Second, Jitter: true},
//		}),
//		executor.WithRequestTimeout(time.Minute),
//	)
//	if err != nil {
//		return err
//	}
//
//	var product catalog.Product
//	err = exec.DoJSON(ctx, &transport.Request{
//		Method: http.MethodGet,
//		Path:   "rest/V1/products/SKU-1",
//	}, &product)
//
// Two retry axes exist and never multiply. The retry policy governs
// transport-level failures (timeouts, 429, 5xx). Separately, when the
// upstream rejects a previously accepted token, the executor
// invalidates the cache and re-runs the call once with a forced
// refresh. A request timeout, when configured, bounds admission wait,
// token refresh, and every retry attempt together; expiry during
// admission is reported as ErrAdmissionTimeout so callers can tell it
// apart from a transport timeout.
package executor
