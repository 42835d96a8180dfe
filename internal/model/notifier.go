package model

import (
	"context"
	"time"
)

// Notifier delivers messages to a user's email address.
type Notifier interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Message is a rendered email.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// OTPComposer renders the email that carries an OTP for purpose.
// userName is optional and only used to greet new signups.
type OTPComposer interface {
	ComposeOTP(purpose Purpose, code, userName string, ttl time.Duration) (Message, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}
