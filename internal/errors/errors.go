package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Common error types for the dashboard
var (
	// Transport errors (backend unreachable, malformed responses, 5xx)
	ErrTransport = errors.New("transport error")

	// Authentication errors (bad credentials, expired or invalid token)
	ErrAuthRejected     = errors.New("authentication rejected")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Session errors
	ErrSuperseded = errors.New("session attempt superseded")

	// Input errors
	ErrValidation = errors.New("validation error")
)

// HTTPError is returned when the backend answers with a non-2xx status.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s %s: %d %s: %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Unwrap maps the status code onto the sentinel taxonomy so callers can use Is.
func (e *HTTPError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return ErrAuthRejected
	case e.StatusCode >= 500:
		return ErrTransport
	}
	return nil
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
