package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/testutil"
)

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantKind    string
		wantMessage string
	}{
		{
			name:        "api error keeps message",
			err:         apierror.NewErrInvalidCode(),
			wantCode:    http.StatusBadRequest,
			wantKind:    "INVALID_CODE",
			wantMessage: "Invalid OTP.",
		},
		{
			name:        "conflict",
			err:         apierror.NewErrEmailIsTaken("a@x.com"),
			wantCode:    http.StatusConflict,
			wantKind:    "CONFLICT",
			wantMessage: "account with email a@x.com already exists",
		},
		{
			name:        "delivery failure",
			err:         apierror.NewErrDeliveryFailed("a@x.com", errors.New("dial tcp: refused")),
			wantCode:    http.StatusBadGateway,
			wantKind:    "TRANSPORT_ERROR",
			wantMessage: "failed to send OTP to a@x.com",
		},
		{
			name:        "internal error hides cause",
			err:         apierror.NewErrInternalServerError(errors.New("pq: connection reset")),
			wantCode:    http.StatusInternalServerError,
			wantKind:    "INTERNAL",
			wantMessage: "internal server error",
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantCode:    http.StatusInternalServerError,
			wantKind:    "INTERNAL",
			wantMessage: "internal server error",
		},
		{
			name:        "echo not found",
			err:         echo.ErrNotFound,
			wantCode:    http.StatusNotFound,
			wantKind:    "NOT_FOUND",
			wantMessage: "Not Found",
		},
		{
			name:        "echo method not allowed",
			err:         echo.ErrMethodNotAllowed,
			wantCode:    http.StatusMethodNotAllowed,
			wantKind:    "BAD_REQUEST",
			wantMessage: "Method Not Allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/verify-otp", nil), rec)

			ErrorHandler(testutil.MakeNoopLogger())(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			resp := decodeResponse(t, rec)
			assert.Equal(t, statusError, resp.Status)
			assert.Equal(t, tt.wantKind, resp.Error)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestErrorHandler_LogsInternalCause(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/users/profile", nil), rec)

	ErrorHandler(logger.NewWithWriter(&buf, 0))(apierror.NewErrInternalServerError(errors.New("pq: connection reset")), c)

	assert.Contains(t, buf.String(), "pq: connection reset")
	assert.NotContains(t, rec.Body.String(), "pq: connection reset")
}

func TestErrorHandler_HeadRequest(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/api/downloads/app", nil), rec)

	ErrorHandler(testutil.MakeNoopLogger())(apierror.NewErrAccountGone(), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestErrorHandler_CommittedResponse(t *testing.T) {
	t.Parallel()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Response().WriteHeader(http.StatusOK)

	ErrorHandler(testutil.MakeNoopLogger())(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}
