package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// Request describes one HTTP call against the store API. Path is
// relative to the client's base URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
	// Body is JSON-encoded when non-nil.
	Body any
}

// SetHeader sets a header value, allocating the header map on first
// use.
func (r *Request) SetHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = make(http.Header)
	}
	r.Headers.Set(key, value)
}

// Clone returns a shallow copy with its own header map, so per-attempt
// headers never leak into the caller's request.
func (r *Request) Clone() *Request {
	c := *r
	c.Headers = r.Headers.Clone()
	return &c
}

// Response is the raw outcome of a delivered HTTP call. Non-2xx statuses
// are returned as responses, not errors; classification into typed API
// failures is the caller's job (see APIErrorFromResponse).
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("decode response: empty body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Transport delivers requests to the store API. Implementations must be
// safe for concurrent use.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}
