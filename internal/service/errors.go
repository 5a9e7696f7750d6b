package service

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork marks failures where the API could not be reached at all.
var ErrNetwork = errors.New("network error")

// Error is a non-success HTTP response from the API.
// Message is the body's "error" or "message" field, or "HTTP <status>".
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

// NetworkError wraps a transport failure. Its text is the transport's own;
// errors.Is(err, ErrNetwork) reports true.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return e.Err.Error() }

func (e *NetworkError) Unwrap() []error { return []error{ErrNetwork, e.Err} }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	s := StatusOf(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}
