package auth

import (
	"errors"
	"fmt"
)

// ErrEmptyToken is returned when the token endpoint answers with a
// 2xx status but an empty credential.
var ErrEmptyToken = errors.New("auth: token endpoint returned empty token")

// ErrMissingCredentials is returned when the cache is constructed
// without a username or password.
var ErrMissingCredentials = errors.New("auth: username and password are required")

// AuthError wraps the underlying cause of a failed token refresh. The
// cache never retries internally; the wrapped cause keeps enough
// context for the caller's retry policy to classify it.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: token refresh failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }
