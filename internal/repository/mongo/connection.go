package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Connection struct {
	client *mongo.Client
	otps   *mongo.Collection
}

// NewConnection connects to MongoDB and makes sure the OTP collection indexes exist.
func NewConnection(ctx context.Context, uri, database, collection string) (*Connection, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	conn := &Connection{
		client: client,
		otps:   client.Database(database).Collection(collection),
	}

	if err := conn.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return conn, nil
}

// EnsureIndexes creates the unique (email, purpose) index and the expiry TTL index.
// The TTL monitor only runs periodically, so queries also filter on expires_at.
func (c *Connection) EnsureIndexes(ctx context.Context) error {
	_, err := c.otps.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: fieldEmail, Value: 1}, {Key: fieldPurpose, Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_purpose_unique"),
		},
		{
			Keys:    bson.D{{Key: fieldExpiresAt, Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create otp indexes: %w", err)
	}
	return nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.client.Ping(ctx, readpref.Primary())
}

func (c *Connection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
