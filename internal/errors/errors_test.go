package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/callwa-dashboard/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestHTTPError_Unwrap(t *testing.T) {
	t.Run("unauthorized maps to auth rejected", func(t *testing.T) {
		err := &errors.HTTPError{Method: "GET", URL: "/users/me", StatusCode: http.StatusUnauthorized}
		require.True(t, errors.Is(err, errors.ErrAuthRejected))
		require.False(t, errors.Is(err, errors.ErrTransport))
	})

	t.Run("forbidden maps to auth rejected", func(t *testing.T) {
		err := &errors.HTTPError{StatusCode: http.StatusForbidden}
		require.True(t, errors.Is(err, errors.ErrAuthRejected))
	})

	t.Run("server error maps to transport", func(t *testing.T) {
		err := &errors.HTTPError{StatusCode: http.StatusBadGateway}
		require.True(t, errors.Is(err, errors.ErrTransport))
	})

	t.Run("not found maps to nothing", func(t *testing.T) {
		err := &errors.HTTPError{StatusCode: http.StatusNotFound}
		require.False(t, errors.Is(err, errors.ErrAuthRejected))
		require.False(t, errors.Is(err, errors.ErrTransport))
	})

	t.Run("found through wrapping", func(t *testing.T) {
		err := fmt.Errorf("listing calls: %w", &errors.HTTPError{StatusCode: http.StatusUnauthorized})
		var httpErr *errors.HTTPError
		require.True(t, errors.As(err, &httpErr))
		require.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		require.True(t, errors.Is(err, errors.ErrAuthRejected))
	})
}

func TestHTTPError_Error(t *testing.T) {
	err := &errors.HTTPError{Method: "PUT", URL: "http://x/settings/automation", StatusCode: 422, Body: `{"detail":"bad"}`}
	require.Equal(t, `PUT http://x/settings/automation: 422 Unprocessable Entity: {"detail":"bad"}`, err.Error())
}

func TestWrapf(t *testing.T) {
	require.Nil(t, errors.Wrapf(nil, "ignored"))

	err := errors.Wrapf(errors.ErrValidation, "field %s", "send_mode")
	require.EqualError(t, err, "field send_mode: validation error")
	require.True(t, errors.Is(err, errors.ErrValidation))
}
