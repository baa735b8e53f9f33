package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"parcel-delivery/config"
	"parcel-delivery/logger"
)

// InitDB connects to MongoDB and returns the client with the configured database.
func InitDB(ctx context.Context, cfg config.Config) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1).
			SetStrict(true).
			SetDeprecationErrors(true))

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("Failed to ping the database", err)
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}
	logger.Success("Successfully connected to the database")

	return client, client.Database(cfg.MongoDatabase), nil
}
