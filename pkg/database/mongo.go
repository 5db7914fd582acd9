package database

import (
	"context"
	"fmt"

	"github.com/Nikhil4123/Brocker/pkg/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectMongo connects to MongoDB and verifies the connection with a ping
func ConnectMongo(ctx context.Context, mongoConfig *config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, mongoConfig.ConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(mongoConfig.URI).
		SetMaxPoolSize(mongoConfig.MaxPoolSize).
		SetConnectTimeout(mongoConfig.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}
