package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/kameti-auth/internal/model"
)

const (
	fieldCode      = "code"
	fieldVerified  = "verified"
	fieldCreatedAt = "created_at"
	fieldExpiresAt = "expires_at"

	flagUnverified = "0"
	flagVerified   = "1"
)

// markVerifiedLua flips the verified flag of a live unverified record whose code matches.
// KEYS[1] = record key
// ARGV[1] = presented code
// ARGV[2] = current unix milliseconds
var markVerifiedLua = redis.NewScript(`
local verified = redis.call('HGET', KEYS[1], 'verified')
if not verified or verified ~= '0' then
  return {err='not_found'}
end
local expiresAt = tonumber(redis.call('HGET', KEYS[1], 'expires_at'))
if not expiresAt or tonumber(ARGV[2]) >= expiresAt then
  return {err='not_found'}
end
if redis.call('HGET', KEYS[1], 'code') ~= ARGV[1] then
  return {err='invalid_code'}
end
redis.call('HSET', KEYS[1], 'verified', '1')
return 1
`)

// consumeVerifiedLua deletes a live verified record.
// KEYS[1] = record key
// ARGV[1] = current unix milliseconds
var consumeVerifiedLua = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'verified') ~= '1' then
  return {err='not_verified'}
end
local expiresAt = tonumber(redis.call('HGET', KEYS[1], 'expires_at'))
if not expiresAt or tonumber(ARGV[1]) >= expiresAt then
  return {err='not_verified'}
end
redis.call('DEL', KEYS[1])
return 1
`)

var _ model.OTPStore = (*OTPRepository)(nil)

// OTPRepository stores one hash per (purpose, email) that expires with the OTP.
type OTPRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewOTPRepository(client redis.UniversalClient, prefix string) *OTPRepository {
	if prefix == "" {
		prefix = "otp"
	}
	return &OTPRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *OTPRepository) key(email string, purpose model.Purpose) string {
	return r.prefix + ":" + string(purpose) + ":" + email
}

// Replace overwrites the record for the pair inside a MULTI block.
func (r *OTPRepository) Replace(ctx context.Context, record model.OTPRecord) error {
	key := r.key(record.Email, record.Purpose)
	verified := flagUnverified
	if record.Verified {
		verified = flagVerified
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			fieldCode, record.Code,
			fieldVerified, verified,
			fieldCreatedAt, record.CreatedAt.UnixMilli(),
			fieldExpiresAt, record.ExpiresAt.UnixMilli(),
		)
		pipe.PExpireAt(ctx, key, record.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace otp: %w", err)
	}

	return nil
}

func (r *OTPRepository) MarkVerified(ctx context.Context, email string, purpose model.Purpose, code string, now time.Time) error {
	err := markVerifiedLua.Run(ctx, r.client,
		[]string{r.key(email, purpose)},
		code,
		now.UnixMilli(),
	).Err()
	if err == nil {
		return nil
	}

	switch scriptError(err) {
	case "not_found":
		return model.ErrOTPNotFound
	case "invalid_code":
		return model.ErrInvalidCode
	default:
		return fmt.Errorf("failed to verify otp: %w", err)
	}
}

func (r *OTPRepository) ConsumeVerified(ctx context.Context, email string, purpose model.Purpose, now time.Time) error {
	err := consumeVerifiedLua.Run(ctx, r.client,
		[]string{r.key(email, purpose)},
		now.UnixMilli(),
	).Err()
	if err == nil {
		return nil
	}

	if scriptError(err) == "not_verified" {
		return model.ErrNotVerified
	}
	return fmt.Errorf("failed to consume otp: %w", err)
}

// Ping checks the Redis connection.
func (r *OTPRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// scriptError returns the message of an error reply raised by a script, or "" for other errors.
func scriptError(err error) string {
	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return strings.TrimPrefix(redisErr.Error(), "ERR ")
	}
	return ""
}
