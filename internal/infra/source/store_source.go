package source

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/metrics"
)

// ErrStoreUnavailable is returned when a store-backed block has no store configured.
var ErrStoreUnavailable = errors.New("item store not configured")

// StoreSource loads the items of one block from an ItemStore.
type StoreSource struct {
	name  string
	block string
	store domain.ItemStore
}

func NewStoreSource(name, block string, store domain.ItemStore) *StoreSource {
	return &StoreSource{name: name, block: block, store: store}
}

func (s *StoreSource) GetName() string {
	return s.name
}

func (s *StoreSource) Load(ctx context.Context) (domain.FeedCollection, error) {
	if s.store == nil {
		metrics.FeedLoads.WithLabelValues(s.name, "error").Inc()
		return nil, &domain.LoadFailure{Source: s.name, Err: ErrStoreUnavailable}
	}

	start := time.Now()
	items, err := s.store.LoadItems(ctx, s.block)
	metrics.FeedLoadDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FeedLoads.WithLabelValues(s.name, "error").Inc()
		slog.Error("Store load failed", "source", s.name, "block", s.block, "error", err)
		return nil, &domain.LoadFailure{Source: s.name, Err: err}
	}
	if len(items) == 0 {
		metrics.FeedLoads.WithLabelValues(s.name, "empty").Inc()
		return nil, &domain.LoadFailure{Source: s.name, Err: domain.ErrNoResults}
	}

	metrics.FeedLoads.WithLabelValues(s.name, "success").Inc()
	return items, nil
}
