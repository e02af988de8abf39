package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// EnsureIndexes creates the indexes the core relies on. Account identifier
// uniqueness is enforced here, at the store, so a conflicting create fails
// atomically instead of racing a prior lookup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	accountIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := db.Collection(accountCollection).Indexes().CreateMany(ctx, accountIndexes); err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}

	registrationIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "event_id", Value: 1}}},
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
	}
	if _, err := db.Collection(registrationCollection).Indexes().CreateMany(ctx, registrationIndexes); err != nil {
		return fmt.Errorf("create registration indexes: %w", err)
	}

	feedbackIndex := mongo.IndexModel{Keys: bson.D{{Key: "event_id", Value: 1}}}
	if _, err := db.Collection(feedbackCollection).Indexes().CreateOne(ctx, feedbackIndex); err != nil {
		return fmt.Errorf("create feedback index: %w", err)
	}

	return nil
}
