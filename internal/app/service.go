package app

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/metrics"
	"github.com/NewsFeedBlocks/pkg/serialdate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ErrBlockNotFound is returned for a block name that is not configured.
var ErrBlockNotFound = errors.New("block not found")

// Block is one configured news feed block.
type Block struct {
	Name         string
	ItemsPerPage int
	Source       domain.Source
}

// FeedBlockService opens sessions for configured blocks. Every Open loads the
// source afresh; nothing is shared between sessions.
type FeedBlockService struct {
	blocks          map[string]Block
	events          domain.EventPublisher
	transitionDelay time.Duration
	logger          *slog.Logger
}

func NewFeedBlockService(
	blocks []Block,
	events domain.EventPublisher,
	transitionDelay time.Duration,
	logger *slog.Logger,
) *FeedBlockService {
	if logger == nil {
		logger = slog.Default()
	}
	byName := make(map[string]Block, len(blocks))
	for _, b := range blocks {
		byName[b.Name] = b
	}
	return &FeedBlockService{
		blocks:          byName,
		events:          events,
		transitionDelay: transitionDelay,
		logger:          logger,
	}
}

// Blocks lists the configured block names in sorted order.
func (s *FeedBlockService) Blocks() []string {
	names := make([]string, 0, len(s.blocks))
	for name := range s.blocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open loads block name and starts a session on the page named by query.
// A failed or empty load is not an error: the session comes back empty.
func (s *FeedBlockService) Open(ctx context.Context, name string, query url.Values) (*Session, error) {
	block, ok := s.blocks[name]
	if !ok {
		return nil, ErrBlockNotFound
	}

	tr := otel.Tracer("news-feed")
	ctx, span := tr.Start(ctx, "FeedBlockService.Open")
	defer span.End()
	span.SetAttributes(attribute.String("block", name))

	items, err := block.Source.Load(ctx)
	if err != nil {
		span.RecordError(err)
		var failure *domain.LoadFailure
		if errors.As(err, &failure) && errors.Is(err, domain.ErrNoResults) {
			s.logger.Debug("There are no news feed items. Check response.", "block", name, "source", failure.Source)
		} else {
			s.logger.Debug("Feed unavailable, rendering empty block", "block", name, "error", err)
		}
		items = nil
	}

	items = serialdate.Normalize(items.Reversed())
	metrics.FeedItemsLoaded.WithLabelValues(name).Observe(float64(len(items)))

	opts := []SessionOption{
		WithLogger(s.logger),
		WithRenderer(NewPageRenderer(s.transitionDelay)),
	}
	if s.events != nil {
		opts = append(opts, WithEventPublisher(s.events))
	}

	session := NewSession(name, items, block.ItemsPerPage, NewURLState(NewHistory(query)), opts...)
	s.logger.Debug("Opened block", "block", name, "items", len(items), "total_pages", session.State().TotalPages)
	session.Start(ctx)
	return session, nil
}
