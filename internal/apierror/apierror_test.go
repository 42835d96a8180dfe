package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_HTTPCodes(t *testing.T) {
	tests := []struct {
		err  *APIError
		kind Kind
		code int
	}{
		{NewErrEmailIsTaken("a@x.com"), KindConflict, http.StatusConflict},
		{NewErrAccountNotFound("a@x.com"), KindNotFound, http.StatusNotFound},
		{NewErrOTPNotFound(), KindNotFound, http.StatusNotFound},
		{NewErrInvalidCode(), KindInvalidCode, http.StatusBadRequest},
		{NewErrNotVerified(), KindNotVerified, http.StatusBadRequest},
		{NewErrInvalidCredentials(), KindUnauthorized, http.StatusUnauthorized},
		{NewErrForbidden(), KindForbidden, http.StatusForbidden},
		{NewErrDeliveryFailed("a@x.com", errors.New("smtp down")), KindTransportError, http.StatusBadGateway},
		{NewErrInternalServerError(errors.New("db down")), KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.code, tt.err.HTTPCode)
		})
	}
}

func TestAPIError_MessageHidesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewErrInternalServerError(cause)

	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "connection refused")
	assert.ErrorIs(t, err, cause)
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", NewErrEmailIsTaken("a@x.com"))

	apiErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindConflict, apiErr.Kind)
	assert.Equal(t, "account with email a@x.com already exists", apiErr.Message)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
