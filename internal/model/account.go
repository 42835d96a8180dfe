package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTrialPeriod is the trial length granted to USER accounts.
const DefaultTrialPeriod = 30 * 24 * time.Hour

// AccountStore defines persistence operations for accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
	UpdateByEmail(ctx context.Context, email string, patch AccountPatch) (Account, error)
	// List returns every account, oldest first.
	List(ctx context.Context) ([]Account, error)
}

// Account represents a registered user with authentication material.
type Account struct {
	ID             uuid.UUID
	UserName       string
	Email          string
	PasswordDigest string
	Role           Role
	PhoneNumber    *string
	TrialStartDate *time.Time
	TrialEndDate   *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AccountPatch describes a partial account update. Nil fields are left untouched.
// When Trial is set both trial columns are overwritten, including with NULL.
type AccountPatch struct {
	UserName       *string
	PhoneNumber    *string
	PasswordDigest *string
	Role           *Role
	Trial          *TrialWindow
}

// Empty reports whether the patch changes nothing.
func (p AccountPatch) Empty() bool {
	return p.UserName == nil && p.PhoneNumber == nil && p.PasswordDigest == nil && p.Role == nil && p.Trial == nil
}

// Role is the account role.
type Role string

const (
	// RoleUser is a regular account with a trial window.
	RoleUser Role = "USER"
	// RoleAdmin is an administrative account without a trial window.
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts a client supplied role into a Role. Empty input yields RoleUser.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case "":
		return RoleUser, nil
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// TrialWindow is the [Start, End) interval of a trial. Both ends are nil for admins.
type TrialWindow struct {
	Start *time.Time
	End   *time.Time
}

// DeriveTrialWindow computes the trial window for role. Admins never have one.
// Users keep explicitly supplied dates; a missing start defaults to now and a
// missing end to start+period.
func DeriveTrialWindow(role Role, start, end *time.Time, now time.Time, period time.Duration) TrialWindow {
	if role == RoleAdmin {
		return TrialWindow{}
	}

	s := now
	if start != nil {
		s = *start
	}
	e := s.Add(period)
	if end != nil {
		e = *end
	}

	return TrialWindow{Start: &s, End: &e}
}

// SignupParams carries the data needed to create an account.
type SignupParams struct {
	UserName       string
	Email          string
	Password       string
	Role           Role
	PhoneNumber    *string
	TrialStartDate *time.Time
	TrialEndDate   *time.Time
}

// AccountUpdate carries an administrative edit of an account. Nil fields are left untouched.
type AccountUpdate struct {
	UserName       *string
	PhoneNumber    *string
	Role           *Role
	TrialStartDate *time.Time
	TrialEndDate   *time.Time
}

// AccountView is the client-facing representation of an account.
type AccountView struct {
	ID             uuid.UUID  `json:"_id"`
	UserName       string     `json:"userName"`
	Email          string     `json:"email"`
	Role           Role       `json:"role"`
	PhoneNumber    *string    `json:"phoneNumber"`
	TrialStartDate *time.Time `json:"trailStartDate"`
	TrialEndDate   *time.Time `json:"trailEndDate"`
}

// View strips authentication material from the account.
func (a Account) View() AccountView {
	return AccountView{
		ID:             a.ID,
		UserName:       a.UserName,
		Email:          a.Email,
		Role:           a.Role,
		PhoneNumber:    a.PhoneNumber,
		TrialStartDate: a.TrialStartDate,
		TrialEndDate:   a.TrialEndDate,
	}
}

// Session is the result of a successful register or login.
type Session struct {
	AccessToken string      `json:"access_token"`
	User        AccountView `json:"user"`
}
