package model

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultOTPTTL is the lifetime of a freshly generated OTP.
const DefaultOTPTTL = 2 * time.Minute

// OTPStore persists OTP records. Every method is a single atomic store operation.
type OTPStore interface {
	// Replace removes all records for (record.Email, record.Purpose) and stores record.
	Replace(ctx context.Context, record OTPRecord) error
	// MarkVerified flips the live unverified record for the pair to verified when code matches.
	// It returns ErrOTPNotFound when no such record exists and ErrInvalidCode on mismatch.
	MarkVerified(ctx context.Context, email string, purpose Purpose, code string, now time.Time) error
	// ConsumeVerified deletes the live verified record for the pair or returns ErrNotVerified.
	ConsumeVerified(ctx context.Context, email string, purpose Purpose, now time.Time) error
}

// OTPRecord is a one-time passcode issued for an email and purpose.
type OTPRecord struct {
	Email     string
	Code      string
	Purpose   Purpose
	Verified  bool
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the record is no longer usable at now.
func (r OTPRecord) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Purpose scopes an OTP to the action it gates.
type Purpose string

const (
	// PurposeSignup gates account creation.
	PurposeSignup Purpose = "SIGNUP"
	// PurposeLogin gates login.
	PurposeLogin Purpose = "LOGIN"
	// PurposeForgotPassword gates password reset.
	PurposeForgotPassword Purpose = "FORGOT_PASSWORD"
)

// ParsePurpose converts a client supplied OTP type into a Purpose.
func ParsePurpose(s string) (Purpose, error) {
	switch p := Purpose(strings.ToUpper(strings.TrimSpace(s))); p {
	case PurposeSignup, PurposeLogin, PurposeForgotPassword:
		return p, nil
	default:
		return "", fmt.Errorf("unknown otp type %q", s)
	}
}

// NormalizeEmail trims and lower-cases an email address so store lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
