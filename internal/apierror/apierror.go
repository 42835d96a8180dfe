// Package apierror defines the client-facing error taxonomy of the auth API.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error category.
type Kind string

const (
	KindBadRequest     Kind = "BAD_REQUEST"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindInvalidCode    Kind = "INVALID_CODE"
	KindNotVerified    Kind = "NOT_VERIFIED"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindForbidden      Kind = "FORBIDDEN"
	KindTransportError Kind = "TRANSPORT_ERROR"
	KindInternal       Kind = "INTERNAL"
)

var httpCodes = map[Kind]int{
	KindBadRequest:     http.StatusBadRequest,
	KindNotFound:       http.StatusNotFound,
	KindConflict:       http.StatusConflict,
	KindInvalidCode:    http.StatusBadRequest,
	KindNotVerified:    http.StatusBadRequest,
	KindUnauthorized:   http.StatusUnauthorized,
	KindForbidden:      http.StatusForbidden,
	KindTransportError: http.StatusBadGateway,
	KindInternal:       http.StatusInternalServerError,
}

// APIError is an error that is safe to show to API clients.
// Err holds the underlying cause and is never rendered.
type APIError struct {
	Kind     Kind
	HTTPCode int
	Template string
	Args     []any
	Message  string
	Err      error
}

// New creates an APIError of kind with a message built from template and args.
func New(kind Kind, template string, args ...any) *APIError {
	code, ok := httpCodes[kind]
	if !ok {
		code = http.StatusInternalServerError
	}
	return &APIError{
		Kind:     kind,
		HTTPCode: code,
		Template: template,
		Args:     args,
		Message:  fmt.Sprintf(template, args...),
	}
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Wrap attaches cause to the error.
func (e *APIError) Wrap(cause error) *APIError {
	e.Err = cause
	return e
}

// As extracts an APIError from err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or KindInternal if err is not an APIError.
func KindOf(err error) Kind {
	if apiErr, ok := As(err); ok {
		return apiErr.Kind
	}
	return KindInternal
}

func NewErrBadRequest(reason string) *APIError {
	return New(KindBadRequest, "%s", reason)
}

func NewErrEmailIsTaken(email string) *APIError {
	return New(KindConflict, "account with email %s already exists", email)
}

func NewErrAccountNotFound(email string) *APIError {
	return New(KindNotFound, "account with email %s not found", email)
}

func NewErrAccountGone() *APIError {
	return New(KindNotFound, "account not found")
}

func NewErrOTPNotFound() *APIError {
	return New(KindNotFound, "OTP expired or not found. Please generate a new OTP.")
}

func NewErrInvalidCode() *APIError {
	return New(KindInvalidCode, "Invalid OTP.")
}

func NewErrNotVerified() *APIError {
	return New(KindNotVerified, "Please verify your OTP first.")
}

func NewErrInvalidCredentials() *APIError {
	return New(KindUnauthorized, "Invalid credentials")
}

func NewErrMissingAuthorizationToken() *APIError {
	return New(KindUnauthorized, "missing authorization token")
}

func NewErrInvalidAuthorizationToken() *APIError {
	return New(KindUnauthorized, "invalid authorization token")
}

func NewErrForbidden() *APIError {
	return New(KindForbidden, "forbidden")
}

func NewErrDeliveryFailed(email string, cause error) *APIError {
	return New(KindTransportError, "failed to send OTP to %s", email).Wrap(cause)
}

func NewErrInternalServerError(cause error) *APIError {
	return New(KindInternal, "internal server error").Wrap(cause)
}
