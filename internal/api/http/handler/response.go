package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/kameti-auth/internal/apierror"
	"github.com/dtroode/kameti-auth/internal/logger"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Response is the JSON envelope of every API reply.
type Response struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"statusCode"`
}

func success(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, Response{
		Status:     statusSuccess,
		Message:    message,
		Data:       data,
		StatusCode: code,
	})
}

// ErrorHandler renders errors returned by handlers and middleware as envelopes.
// API errors keep their kind and message; anything else becomes a bare 500.
func ErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, kind, message := describe(err)
		if kind == apierror.KindInternal {
			logger.Error("HTTP request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err.Error())
		}

		resp := Response{
			Status:     statusError,
			Message:    message,
			Error:      string(kind),
			StatusCode: code,
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, resp)
		}
		if writeErr != nil {
			logger.Error("HTTP failed to write error response",
				"error", writeErr.Error())
		}
	}
}

func describe(err error) (int, apierror.Kind, string) {
	if apiErr, ok := apierror.As(err); ok {
		if apiErr.Kind == apierror.KindInternal {
			return apiErr.HTTPCode, apiErr.Kind, "internal server error"
		}
		return apiErr.HTTPCode, apiErr.Kind, apiErr.Message
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, kindForStatus(he.Code), fmt.Sprint(he.Message)
	}

	return http.StatusInternalServerError, apierror.KindInternal, "internal server error"
}

func kindForStatus(code int) apierror.Kind {
	switch code {
	case http.StatusNotFound:
		return apierror.KindNotFound
	case http.StatusUnauthorized:
		return apierror.KindUnauthorized
	case http.StatusForbidden:
		return apierror.KindForbidden
	case http.StatusConflict:
		return apierror.KindConflict
	}
	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return apierror.KindBadRequest
	}
	return apierror.KindInternal
}
