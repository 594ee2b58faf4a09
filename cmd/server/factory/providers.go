package factory

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/NewsFeedBlocks/internal/app"
	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/repository"
	"github.com/NewsFeedBlocks/internal/infra/source"
	"github.com/NewsFeedBlocks/internal/infra/transformer"
	"github.com/NewsFeedBlocks/pkg/config"
)

// NewBlocks builds a source for every configured block.
func NewBlocks(cfg *config.Config, store *repository.MongoItemStore) ([]app.Block, error) {
	if len(cfg.Blocks) == 0 {
		return nil, errors.New("no blocks configured")
	}

	var itemStore domain.ItemStore
	if store != nil {
		itemStore = store
	}

	var blocks []app.Block
	for _, bc := range cfg.Blocks {
		if bc.Name == "" {
			slog.Warn("Skipping block without a name")
			continue
		}

		src, err := newSource(bc, cfg, itemStore)
		if err != nil {
			slog.Warn("Skipping block", "block", bc.Name, "error", err)
			continue
		}

		blocks = append(blocks, app.Block{
			Name:         bc.Name,
			ItemsPerPage: bc.PageSize(),
			Source:       src,
		})
		slog.Info("Registered block", "block", bc.Name, "kind", bc.SourceKind(), "transformer", bc.Transformer)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("no valid blocks configured")
	}
	return blocks, nil
}

func newSource(bc config.BlockConfig, cfg *config.Config, store domain.ItemStore) (domain.Source, error) {
	switch bc.SourceKind() {
	case config.KindHTTP:
		if bc.Source == "" {
			return nil, errors.New("http block has no source url")
		}
		tr, err := transformer.GetTransformer(bc.Transformer)
		if err != nil {
			return nil, err
		}
		return source.NewHTTPSource(bc.Name, bc.Source, tr, cfg.FetchTimeout), nil
	case config.KindMongo:
		return source.NewStoreSource(bc.Name, bc.Name, store), nil
	default:
		return nil, fmt.Errorf("unknown source kind: %s", bc.Kind)
	}
}
