package database

import (
	"context"
	"fmt"
	"time"

	"asdcare/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// Collection names.
const (
	UsersCollection        = "users"
	ChildrenCollection     = "children"
	SlotsCollection        = "slots"
	AppointmentsCollection = "appointments"
)

// InitDB connects to cfg.DatabaseURL and pings the primary before
// publishing MongoClient.
func InitDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.DatabaseURL).
		SetAppName("asdcare").
		SetMaxPoolSize(50).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}
	MongoClient = client
	logger.Info("Connected to MongoDB", zap.String("database", cfg.DatabaseName))
	return nil
}

// DB returns the application database handle.
func DB() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// Disconnect closes the global client.
func Disconnect(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
