package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "blog-api"
)

// Config selects the deployment and database that hold the blog collections.
type Config struct {
	URI      string
	Database string
	// Timeout bounds connecting and index creation. Zero means ten seconds.
	Timeout time.Duration
}

// Open connects to the deployment, checks it answers, and returns a Store
// with its indexes in place. The client is released again on any failure.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		return nil, errors.New("mongo open: database name is empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	openCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetServerSelectionTimeout(timeout)
	client, err := mongo.Connect(openCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo open: %w", err)
	}
	if err := client.Ping(openCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}

	store := NewStore(client, client.Database(cfg.Database))
	if err := store.EnsureIndexes(openCtx); err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}
	return store, nil
}
