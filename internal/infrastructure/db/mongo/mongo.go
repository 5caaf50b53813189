package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "ryze-api"
)

// Config selects the database that holds the purchase audit trail.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect opens the audit database, pings it and creates the receipt indexes.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, nil, errors.New("mongo connect: uri and database are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)

	setupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(setupCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(setupCtx, nil); err != nil {
		_ = client.Disconnect(setupCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := ensureReceiptIndexes(setupCtx, db); err != nil {
		_ = client.Disconnect(setupCtx)
		return nil, nil, err
	}
	return client, db, nil
}

// receiptIndexes back the two lookups done on the audit trail: a session's
// history and a single receipt by intent. One receipt per intent.
func receiptIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}, {Key: "applied_at", Value: -1}}},
		{Keys: bson.D{{Key: "intent_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
}

func ensureReceiptIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(receiptsCollection).Indexes().CreateMany(ctx, receiptIndexes()); err != nil {
		return fmt.Errorf("mongo receipt indexes: %w", err)
	}
	return nil
}
