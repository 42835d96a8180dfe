package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dtroode/kameti-auth/internal/model"
)

// Get returns the stored record for the pair regardless of its state. Test-only accessor.
func (r *OTPRepository) Get(ctx context.Context, email string, purpose model.Purpose) (model.OTPRecord, error) {
	var doc otpDocument
	err := r.coll.FindOne(ctx, pairFilter(email, purpose)).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return model.OTPRecord{}, model.ErrNotFound
		}
		return model.OTPRecord{}, fmt.Errorf("failed to get otp: %w", err)
	}
	return doc.record(), nil
}

// Count returns the number of stored records for the pair. Test-only accessor.
func (r *OTPRepository) Count(ctx context.Context, email string, purpose model.Purpose) (int64, error) {
	return r.coll.CountDocuments(ctx, pairFilter(email, purpose))
}
