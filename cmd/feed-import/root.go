package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/repository"
	"github.com/NewsFeedBlocks/internal/infra/source"
	"github.com/NewsFeedBlocks/internal/infra/transformer"
	"github.com/NewsFeedBlocks/pkg/config"
	"github.com/NewsFeedBlocks/pkg/logging"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	feedURL     string
	blockName   string
	transformTo string
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "feed-import",
	Short: "Import a news feed into the item store",
	Long: `feed-import fetches a feed once and replaces the stored items of a block,
so that blocks of kind "mongo" can serve it.

MongoDB settings come from the same environment as the server
(MONGO_URI, MONGO_DB_NAME, MONGO_COLLECTION).

Examples:
  feed-import --block press --url http://localhost:8081/feed
  feed-import --block blog --url http://localhost:8081/feed.xml --transformer rss
  feed-import --block press --url http://localhost:8081/feed --dry-run`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runImport,
}

func init() {
	rootCmd.Flags().StringVar(&feedURL, "url", "", "feed url to fetch")
	rootCmd.Flags().StringVar(&blockName, "block", "", "block whose items are replaced")
	rootCmd.Flags().StringVar(&transformTo, "transformer", transformer.SheetName, "feed format: sheet or rss")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "fetch and parse only, do not write")
	_ = rootCmd.MarkFlagRequired("url")
	_ = rootCmd.MarkFlagRequired("block")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	slog.SetDefault(logging.NewLogger(cfg.Environment, os.Stderr))

	tr, err := transformer.GetTransformer(transformTo)
	if err != nil {
		return err
	}
	src := source.NewHTTPSource(blockName, feedURL, tr, cfg.FetchTimeout)

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	if dryRun {
		items, err := src.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d items fetched for block %s (dry run)\n", len(items), blockName)
		return nil
	}

	if cfg.MongoURI == "" {
		return errors.New("MONGO_URI is not set")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	store, err := repository.NewMongoItemStore(client, cfg.MongoDBName, cfg.MongoColl)
	if err != nil {
		return err
	}

	n, err := importFeed(ctx, src, store, blockName)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d items imported into block %s\n", n, blockName)
	return nil
}

// importFeed replaces the stored items of block with what src delivers.
// A feed that fails or comes back empty leaves the stored items untouched.
func importFeed(ctx context.Context, src domain.Source, store domain.ItemStore, block string) (int, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load %s: %w", src.GetName(), err)
	}
	if err := store.ReplaceItems(ctx, block, items); err != nil {
		return 0, fmt.Errorf("store items for %s: %w", block, err)
	}
	slog.Info("Imported feed", "block", block, "source", src.GetName(), "items", len(items))
	return len(items), nil
}
