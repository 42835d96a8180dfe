package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/dtroode/kameti-auth/internal/logger"
	"github.com/dtroode/kameti-auth/internal/model"
)

const (
	codeFloor = 100000
	codeSpan  = 900000
)

// OTP issues and checks one-time passcodes scoped to (email, purpose).
type OTP struct {
	store  model.OTPStore
	ttl    time.Duration
	now    func() time.Time
	logger *logger.Logger
}

func NewOTP(store model.OTPStore, ttl time.Duration, logger *logger.Logger) *OTP {
	if ttl <= 0 {
		ttl = model.DefaultOTPTTL
	}
	return &OTP{
		store:  store,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// TTL returns the lifetime of generated codes.
func (s *OTP) TTL() time.Duration {
	return s.ttl
}

// Generate replaces any outstanding code for the pair with a fresh one and returns it.
func (s *OTP) Generate(ctx context.Context, email string, purpose model.Purpose) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	now := s.now()
	err = s.store.Replace(ctx, model.OTPRecord{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		Verified:  false,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	})
	if err != nil {
		s.logger.Error("OTP service: failed to store otp",
			"email", email,
			"purpose", purpose,
			"error", err.Error())
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	s.logger.Debug("OTP service: otp generated",
		"email", email,
		"purpose", purpose)

	return code, nil
}

// Verify marks the live code for the pair as verified.
// It returns model.ErrOTPNotFound or model.ErrInvalidCode on failure.
func (s *OTP) Verify(ctx context.Context, email, code string, purpose model.Purpose) error {
	err := s.store.MarkVerified(ctx, email, purpose, code, s.now())
	if err != nil {
		return fmt.Errorf("failed to verify otp: %w", err)
	}

	s.logger.Debug("OTP service: otp verified",
		"email", email,
		"purpose", purpose)

	return nil
}

// Consume spends the verified code for the pair. It returns model.ErrNotVerified if there is none.
func (s *OTP) Consume(ctx context.Context, email string, purpose model.Purpose) error {
	if err := s.store.ConsumeVerified(ctx, email, purpose, s.now()); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}
	return nil
}

// generateCode returns a uniformly random six digit code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeFloor), nil
}
