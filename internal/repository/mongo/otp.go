package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/kameti-auth/internal/model"
)

const (
	fieldEmail     = "email"
	fieldCode      = "code"
	fieldPurpose   = "purpose"
	fieldVerified  = "verified"
	fieldExpiresAt = "expires_at"
	fieldCreatedAt = "created_at"

	// replaceAttempts bounds retries of an upsert that lost a race on the unique index.
	replaceAttempts = 3
)

type otpDocument struct {
	Email     string    `bson:"email"`
	Code      string    `bson:"code"`
	Purpose   string    `bson:"purpose"`
	Verified  bool      `bson:"verified"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
}

func newOTPDocument(r model.OTPRecord) otpDocument {
	return otpDocument{
		Email:     r.Email,
		Code:      r.Code,
		Purpose:   string(r.Purpose),
		Verified:  r.Verified,
		ExpiresAt: r.ExpiresAt.UTC(),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func (d otpDocument) record() model.OTPRecord {
	return model.OTPRecord{
		Email:     d.Email,
		Code:      d.Code,
		Purpose:   model.Purpose(d.Purpose),
		Verified:  d.Verified,
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}

var _ model.OTPStore = (*OTPRepository)(nil)

type OTPRepository struct {
	coll *mongo.Collection
}

func NewOTPRepository(conn *Connection) *OTPRepository {
	return &OTPRepository{
		coll: conn.otps,
	}
}

func pairFilter(email string, purpose model.Purpose) bson.D {
	return bson.D{
		{Key: fieldEmail, Value: email},
		{Key: fieldPurpose, Value: string(purpose)},
	}
}

// liveFilter matches the pair's record in the given verified state that has not expired at now.
func liveFilter(email string, purpose model.Purpose, verified bool, now time.Time) bson.D {
	return append(pairFilter(email, purpose),
		bson.E{Key: fieldVerified, Value: verified},
		bson.E{Key: fieldExpiresAt, Value: bson.D{{Key: "$gt", Value: now.UTC()}}},
	)
}

// Replace upserts the single document of the pair. The unique index turns concurrent
// first inserts into a duplicate key error for the loser, which retries as a replace.
func (r *OTPRepository) Replace(ctx context.Context, record model.OTPRecord) error {
	filter := pairFilter(record.Email, record.Purpose)
	doc := newOTPDocument(record)

	var err error
	for i := 0; i < replaceAttempts; i++ {
		_, err = r.coll.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
		if err == nil {
			return nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			break
		}
	}

	return fmt.Errorf("failed to replace otp: %w", err)
}

func (r *OTPRepository) MarkVerified(ctx context.Context, email string, purpose model.Purpose, code string, now time.Time) error {
	filter := append(liveFilter(email, purpose, false, now), bson.E{Key: fieldCode, Value: code})
	update := bson.D{{Key: "$set", Value: bson.D{{Key: fieldVerified, Value: true}}}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to verify otp: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing flipped: tell a wrong code apart from a missing record.
	n, err := r.coll.CountDocuments(ctx, liveFilter(email, purpose, false, now))
	if err != nil {
		return fmt.Errorf("failed to check otp: %w", err)
	}
	if n > 0 {
		return model.ErrInvalidCode
	}
	return model.ErrOTPNotFound
}

func (r *OTPRepository) ConsumeVerified(ctx context.Context, email string, purpose model.Purpose, now time.Time) error {
	res, err := r.coll.DeleteOne(ctx, liveFilter(email, purpose, true, now))
	if err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}
	if res.DeletedCount == 0 {
		return model.ErrNotVerified
	}
	return nil
}

