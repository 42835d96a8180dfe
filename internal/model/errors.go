package model

import "errors"

var (
	// ErrNotFound is returned by stores when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrOTPNotFound means no live unverified OTP exists: it expired or was never requested.
	ErrOTPNotFound = errors.New("otp expired or not found")
	// ErrInvalidCode means a live OTP exists but the presented code does not match it.
	ErrInvalidCode = errors.New("invalid otp code")
	// ErrNotVerified means there is no verified OTP to consume.
	ErrNotVerified = errors.New("otp not verified")

	// ErrInvalidToken is returned when a session token fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid session token")
)
