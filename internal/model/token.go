package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenManager signs and validates session tokens.
type TokenManager interface {
	Generate(accountID uuid.UUID, role Role) (string, error)
	Parse(token string) (Claims, error)
}

// Claims are the verified contents of a session token.
type Claims struct {
	AccountID uuid.UUID
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}
