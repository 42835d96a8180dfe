package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dtroode/kameti-auth/internal/model"
)

// Get returns the stored record for the pair. Test-only accessor.
func (r *OTPRepository) Get(ctx context.Context, email string, purpose model.Purpose) (model.OTPRecord, error) {
	values, err := r.client.HGetAll(ctx, r.key(email, purpose)).Result()
	if err != nil {
		return model.OTPRecord{}, fmt.Errorf("failed to get otp: %w", err)
	}
	if len(values) == 0 {
		return model.OTPRecord{}, model.ErrNotFound
	}

	createdAt, err := strconv.ParseInt(values[fieldCreatedAt], 10, 64)
	if err != nil {
		return model.OTPRecord{}, fmt.Errorf("failed to decode otp created_at: %w", err)
	}
	expiresAt, err := strconv.ParseInt(values[fieldExpiresAt], 10, 64)
	if err != nil {
		return model.OTPRecord{}, fmt.Errorf("failed to decode otp expires_at: %w", err)
	}

	return model.OTPRecord{
		Email:     email,
		Purpose:   purpose,
		Code:      values[fieldCode],
		Verified:  values[fieldVerified] == flagVerified,
		CreatedAt: time.UnixMilli(createdAt),
		ExpiresAt: time.UnixMilli(expiresAt),
	}, nil
}
