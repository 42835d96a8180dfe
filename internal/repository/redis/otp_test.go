package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/kameti-auth/internal/model"
)

func newTestRepository(t *testing.T) (*OTPRepository, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return NewOTPRepository(client, "test"), mr
}

func makeRecord(email string, purpose model.Purpose, code string, now time.Time) model.OTPRecord {
	return model.OTPRecord{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		CreatedAt: now,
		ExpiresAt: now.Add(model.DefaultOTPTTL),
	}
}

func TestOTPRepository_ReplaceKeepsSingleRecord(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t)
	now := time.Now()

	require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "111111", now)))
	require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "222222", now)))

	keys := mr.Keys()
	assert.Len(t, keys, 1)

	rec, err := repo.Get(ctx, "a@x.com", model.PurposeSignup)
	require.NoError(t, err)
	assert.Equal(t, "222222", rec.Code)
	assert.False(t, rec.Verified)
	assert.Equal(t, now.UnixMilli(), rec.CreatedAt.UnixMilli())

	ttl := mr.TTL(repo.key("a@x.com", model.PurposeSignup))
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, model.DefaultOTPTTL)
}

func TestOTPRepository_PurposesAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	now := time.Now()

	require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "111111", now)))
	require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeLogin, "222222", now)))

	require.NoError(t, repo.MarkVerified(ctx, "a@x.com", model.PurposeLogin, "222222", now))
	assert.ErrorIs(t, repo.ConsumeVerified(ctx, "a@x.com", model.PurposeSignup, now), model.ErrNotVerified)
	assert.NoError(t, repo.ConsumeVerified(ctx, "a@x.com", model.PurposeLogin, now))
}

func TestOTPRepository_MarkVerified(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("missing record", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		err := repo.MarkVerified(ctx, "a@x.com", model.PurposeSignup, "123456", now)
		assert.ErrorIs(t, err, model.ErrOTPNotFound)
	})

	t.Run("wrong code keeps record unverified", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "482913", now)))

		err := repo.MarkVerified(ctx, "a@x.com", model.PurposeSignup, "000000", now)
		assert.ErrorIs(t, err, model.ErrInvalidCode)

		rec, err := repo.Get(ctx, "a@x.com", model.PurposeSignup)
		require.NoError(t, err)
		assert.False(t, rec.Verified)
	})

	t.Run("right code verifies once", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "482913", now)))

		require.NoError(t, repo.MarkVerified(ctx, "a@x.com", model.PurposeSignup, "482913", now))

		rec, err := repo.Get(ctx, "a@x.com", model.PurposeSignup)
		require.NoError(t, err)
		assert.True(t, rec.Verified)

		err = repo.MarkVerified(ctx, "a@x.com", model.PurposeSignup, "482913", now)
		assert.ErrorIs(t, err, model.ErrOTPNotFound)
	})

	t.Run("expired record", func(t *testing.T) {
		repo, _ := newTestRepository(t)
		require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "482913", now)))

		err := repo.MarkVerified(ctx, "a@x.com", model.PurposeSignup, "482913", now.Add(model.DefaultOTPTTL))
		assert.ErrorIs(t, err, model.ErrOTPNotFound)
	})

	t.Run("key evicted by ttl", func(t *testing.T) {
		repo, mr := newTestRepository(t)
		require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "482913", now)))

		mr.FastForward(model.DefaultOTPTTL + time.Second)

		err := repo.MarkVerified(ctx, "a@x.com", model.PurposeSignup, "482913", now)
		assert.ErrorIs(t, err, model.ErrOTPNotFound)
	})
}

func TestOTPRepository_ConsumeVerified(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t)
	now := time.Now()

	require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeForgotPassword, "482913", now)))

	assert.ErrorIs(t, repo.ConsumeVerified(ctx, "a@x.com", model.PurposeForgotPassword, now), model.ErrNotVerified)

	require.NoError(t, repo.MarkVerified(ctx, "a@x.com", model.PurposeForgotPassword, "482913", now))
	require.NoError(t, repo.ConsumeVerified(ctx, "a@x.com", model.PurposeForgotPassword, now))
	assert.Empty(t, mr.Keys())

	assert.ErrorIs(t, repo.ConsumeVerified(ctx, "a@x.com", model.PurposeForgotPassword, now), model.ErrNotVerified)
}

func TestOTPRepository_ConsumeAfterExpiry(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	now := time.Now()

	require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeLogin, "482913", now)))
	require.NoError(t, repo.MarkVerified(ctx, "a@x.com", model.PurposeLogin, "482913", now))

	err := repo.ConsumeVerified(ctx, "a@x.com", model.PurposeLogin, now.Add(model.DefaultOTPTTL+time.Second))
	assert.ErrorIs(t, err, model.ErrNotVerified)
}

func TestOTPRepository_ConcurrentConsumeSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepository(t)
	now := time.Now()

	require.NoError(t, repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, "482913", now)))
	require.NoError(t, repo.MarkVerified(ctx, "a@x.com", model.PurposeSignup, "482913", now))

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.ConsumeVerified(ctx, "a@x.com", model.PurposeSignup, now); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestOTPRepository_ConcurrentReplaceLeavesOneRecord(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepository(t)
	now := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Replace(ctx, makeRecord("a@x.com", model.PurposeSignup, fmt.Sprintf("%06d", 100000+i), now))
		}(i)
	}
	wg.Wait()

	assert.Len(t, mr.Keys(), 1)
}

func TestNewOTPRepository_DefaultPrefix(t *testing.T) {
	repo := NewOTPRepository(nil, "")
	assert.Equal(t, "otp:SIGNUP:a@x.com", repo.key("a@x.com", model.PurposeSignup))
}
