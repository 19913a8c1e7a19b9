// Package transport defines the HTTP boundary of the client: the
// Request/Response wire types, the Transport interface, and the error
// taxonomy shared by every layer above it.
//
// HTTPClient is the production Transport. It resolves relative paths
// against a fixed base URL, encodes JSON bodies, stamps each request
// with an X-Request-ID, and classifies delivery failures into typed
// errors that the retry layer understands:
//
//	client, err := transport.NewHTTPClient("https://shop.example.com",
//		transport.WithHTTPTimeout(15*time.Second),
//		transport.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//
//	resp, err := client.Do(ctx, &transport.Request{
//		Method: http.MethodGet,
//		Path:   "rest/V1/products/SKU-1",
//	})
//
// Non-2xx responses are returned as responses. Callers that want a
// typed error for them use APIErrorFromResponse, which extracts the
// upstream message and maps the status to a Kind. Both Error and
// APIError implement Retryable, so retry policies can distinguish
// transient failures (timeouts, 429, 5xx) from permanent ones.
package transport
