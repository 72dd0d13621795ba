package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/andestravel/travel-requests/internal/pkg/config"
)

// connectTimeout bounds the initial dial and ping; defaultTimeout bounds each
// repository operation.
const (
	connectTimeout = 10 * time.Second
	defaultTimeout = 10 * time.Second
)

// Connect dials the travel-requests database and confirms the deployment
// answers a primary read before any repository is built on top of it. The
// returned client is what the caller disconnects on shutdown.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI).SetAppName("travel-requests")
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect %q: %w", cfg.Database, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping %q: %w", cfg.Database, err)
	}

	return client, client.Database(cfg.Database), nil
}
