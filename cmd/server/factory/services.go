package factory

import (
	"errors"
	"log/slog"

	"github.com/NewsFeedBlocks/internal/app"
	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/repository"
	transport "github.com/NewsFeedBlocks/internal/transport/http"
	"github.com/NewsFeedBlocks/pkg/config"
)

// NewFeedBlockService creates the block service with validation.
func NewFeedBlockService(
	blocks []app.Block,
	events domain.EventPublisher,
	cfg *config.Config,
	logger *slog.Logger,
) (*app.FeedBlockService, error) {
	if len(blocks) == 0 {
		return nil, errors.New("no blocks configured")
	}
	if events == nil {
		return nil, errors.New("event publisher is nil")
	}
	if cfg.TransitionDelay < 0 {
		return nil, errors.New("transition delay must not be negative")
	}
	return app.NewFeedBlockService(blocks, events, cfg.TransitionDelay, logger), nil
}

// NewBlockHandler serves the block service over HTTP.
func NewBlockHandler(svc *app.FeedBlockService) *transport.BlockHandler {
	return transport.NewBlockHandler(svc)
}

// NewReadinessWaiter waits for the item store and Kafka when they are configured.
func NewReadinessWaiter(store *repository.MongoItemStore, cfg *config.Config) *app.ReadinessWaiter {
	var pinger app.Pinger
	if store != nil {
		pinger = store
	}
	return app.NewReadinessWaiter(pinger, cfg.KafkaBrokers, cfg.KafkaTopic)
}
