package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthenticated marks 401 responses so callers can route to login.
var ErrUnauthenticated = errors.New("unauthenticated")

// Error carries the server-provided message for a non-2xx response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

func (e *Error) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	return nil
}

// UserMessage extracts the message to surface for a failed request: the
// server's own message when present, a distinguished line for expired
// sessions, otherwise a generic fallback.
func UserMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnauthenticated) {
		return "Please log in to continue"
	}
	return "Something went wrong. Please try again"
}
