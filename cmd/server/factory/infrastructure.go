// Package factory provides dependency injection constructors for infrastructure components.
package factory

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/queue"
	"github.com/NewsFeedBlocks/internal/infra/repository"
	"github.com/NewsFeedBlocks/pkg/config"
	"github.com/NewsFeedBlocks/pkg/logging"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// NewLogger builds the JSON logger for the configured environment and makes it the default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := logging.NewLogger(cfg.Environment, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// NewMongoClient creates a MongoDB client with lifecycle management.
// It returns nil when no URI is configured; store-backed blocks then render empty.
func NewMongoClient(lc fx.Lifecycle, cfg *config.Config) (*mongo.Client, error) {
	if cfg.MongoURI == "" {
		slog.Info("MongoDB not configured, item store disabled")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})

	return client, nil
}

// NewItemStore creates the MongoDB item store, or nil without a client.
func NewItemStore(client *mongo.Client, cfg *config.Config) (*repository.MongoItemStore, error) {
	if client == nil {
		return nil, nil
	}
	return repository.NewMongoItemStore(client, cfg.MongoDBName, cfg.MongoColl)
}

// NewEventPublisher publishes page changes to Kafka, or discards them when no
// brokers are configured.
func NewEventPublisher(cfg *config.Config, lc fx.Lifecycle) domain.EventPublisher {
	if len(cfg.KafkaBrokers) == 0 || cfg.KafkaTopic == "" {
		slog.Info("Kafka not configured, page change events disabled")
		return queue.NopPublisher{}
	}

	producer := queue.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return producer.Close()
		},
	})
	return producer
}
