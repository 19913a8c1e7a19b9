package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Kind classifies a failed call for retry and handling decisions.
type Kind string

const (
	// Delivery failures (no HTTP response).
	KindConnection Kind = "connection"
	KindTimeout    Kind = "timeout"
	KindNetwork    Kind = "network"

	// HTTP status failures.
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindValidation   Kind = "validation"
	KindRateLimited  Kind = "rate_limited"
	KindServerError  Kind = "server_error"
	KindAPI          Kind = "api"
)

// Error is a delivery failure: the request never produced an HTTP
// response. Delivery failures are always retryable.
type Error struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s failure calling %s: %v", e.Kind, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports true: a request that never reached the server can
// always be re-sent.
func (e *Error) Retryable() bool { return true }

// APIError is a non-2xx HTTP response mapped to a failure kind. The
// upstream message and raw payload are preserved so callers never lose
// the original failure.
type APIError struct {
	StatusCode int
	Kind       Kind
	Message    string
	Endpoint   string
	Response   json.RawMessage
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s) at %s: %s", e.StatusCode, e.Kind, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("api error %d (%s) at %s", e.StatusCode, e.Kind, e.Endpoint)
}

// Retryable reports whether the status indicates a transient condition.
// Only 429 and 5xx qualify; other 4xx statuses will fail the same way on
// every attempt.
func (e *APIError) Retryable() bool {
	return e.Kind == KindRateLimited || e.Kind == KindServerError
}

// KindForStatus maps an HTTP status code to a failure kind.
func KindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusTooManyRequests:
		return KindRateLimited
	}
	if status >= 500 {
		return KindServerError
	}
	return KindAPI
}

// errorBody is the error payload shape Magento returns alongside non-2xx
// statuses.
type errorBody struct {
	Message    string `json:"message"`
	Parameters []any  `json:"parameters,omitempty"`
}

// APIErrorFromResponse builds the typed failure for a non-2xx response,
// extracting the upstream message when the body carries one.
func APIErrorFromResponse(req *Request, resp *Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Kind:       KindForStatus(resp.StatusCode),
		Endpoint:   req.Path,
	}

	if len(resp.Body) > 0 {
		apiErr.Response = json.RawMessage(resp.Body)
		var payload errorBody
		if err := json.Unmarshal(resp.Body, &payload); err == nil && payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
