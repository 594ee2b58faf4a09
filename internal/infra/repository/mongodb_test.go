package repository_test

import (
	"context"
	"testing"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func serial(v float64) *float64 { return &v }

func TestMongoItemStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	mongodbContainer, err := mongodb.Run(ctx, "mongo:6")
	require.NoError(t, err)
	defer func() {
		if err := mongodbContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}()

	endpoint, err := mongodbContainer.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	require.NoError(t, err)
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect client: %s", err)
		}
	}()

	store, err := repository.NewMongoItemStore(client, "test_news_feed", "feed_items")
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))

	t.Run("ReplaceItems and LoadItems keep order", func(t *testing.T) {
		items := domain.FeedCollection{
			{Title: "Oldest", RedirectTarget: "https://example.com/1", SerialDate: serial(45292)},
			{Title: "Middle", RedirectTarget: "https://example.com/2", SerialDate: serial(45293)},
			{Title: "Newest", RedirectTarget: "https://example.com/3", Date: "1/5/2024"},
		}
		require.NoError(t, store.ReplaceItems(ctx, "press", items))

		got, err := store.LoadItems(ctx, "press")
		require.NoError(t, err)
		assert.Equal(t, items, got)
	})

	t.Run("ReplaceItems drops previous items", func(t *testing.T) {
		require.NoError(t, store.ReplaceItems(ctx, "press", domain.FeedCollection{{Title: "Only"}}))

		got, err := store.LoadItems(ctx, "press")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Only", got[0].Title)
	})

	t.Run("blocks are isolated", func(t *testing.T) {
		got, err := store.LoadItems(ctx, "unknown-block")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
