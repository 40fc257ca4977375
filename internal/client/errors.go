// internal/client/errors.go
package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthRequired means the caller must (re-)authenticate: no token is held,
	// or the server rejected it. The session is already cleared in the latter case.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRequestFailed covers transport failures and non-auth error responses.
	// These are recoverable and may be retried by the user.
	ErrRequestFailed = errors.New("request failed")
)

// APIError is a non-2xx response from the marketplace API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrAuthRequired
	}
	return ErrRequestFailed
}

// IsAuthError reports whether err requires the user to log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthRequired)
}

// ServerMessage extracts the server-provided message from err, if any.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
