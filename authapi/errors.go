package authapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel outcomes callers branch on with errors.Is.
var (
	// ErrRateLimited marks a 429 response. Distinct from every other
	// failure: it means "back off", not "unauthenticated".
	ErrRateLimited = errors.New("too many requests")

	// ErrUnauthenticated marks a 401 response.
	ErrUnauthenticated = errors.New("not authenticated")
)

// APIError is a non-2xx response from the backend. Message carries the
// server's own "message" field when the body had one; callers fall back
// to a generic string when it is empty.
type APIError struct {
	Status  int
	Message string
	Path    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API %s (%d): %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("API %s returned status %d", e.Path, e.Status)
}

// Unwrap maps well-known statuses onto sentinel errors so that
// errors.Is(err, ErrRateLimited) works through the wrapped chain.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	}
	return nil
}

// ServerMessage extracts the server-provided message from an error, or
// returns the empty string when the error carries none.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}
