package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// itemDocument is the stored form of a feed item. Position keeps the source order.
type itemDocument struct {
	ID             string    `bson:"_id"`
	Block          string    `bson:"block"`
	Position       int       `bson:"position"`
	Title          string    `bson:"title"`
	RedirectTarget string    `bson:"redirect_target"`
	SerialDate     *float64  `bson:"serial_date,omitempty"`
	Date           string    `bson:"date,omitempty"`
	ImportedAt     time.Time `bson:"imported_at"`
}

// MongoItemStore keeps the items of store-backed blocks in one collection.
type MongoItemStore struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewMongoItemStore(client *mongo.Client, dbName, collectionName string) (*MongoItemStore, error) {
	db := client.Database(dbName)
	repo := &MongoItemStore{
		db:         db,
		collection: db.Collection(collectionName),
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return repo, nil
}

func (r *MongoItemStore) createIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "block", Value: 1},
				{Key: "position", Value: 1},
			},
			Options: options.Index().SetName("block_position_idx"),
		},
	}

	opts := options.CreateIndexes().SetMaxTime(10 * time.Second)
	_, err := r.collection.Indexes().CreateMany(ctx, models, opts)
	return err
}

// ReplaceItems swaps the stored items of block for items, preserving their order.
func (r *MongoItemStore) ReplaceItems(ctx context.Context, block string, items domain.FeedCollection) error {
	if _, err := r.collection.DeleteMany(ctx, bson.M{"block": block}); err != nil {
		return fmt.Errorf("failed to clear block %s: %w", block, err)
	}
	if len(items) == 0 {
		return nil
	}

	now := time.Now().UTC()
	models := make([]mongo.WriteModel, 0, len(items))
	for i, item := range items {
		doc := itemDocument{
			ID:             fmt.Sprintf("%s_%06d", block, i),
			Block:          block,
			Position:       i,
			Title:          item.Title,
			RedirectTarget: item.RedirectTarget,
			SerialDate:     item.SerialDate,
			Date:           item.Date,
			ImportedAt:     now,
		}
		filter := bson.M{"_id": doc.ID}
		models = append(models, mongo.NewReplaceOneModel().SetFilter(filter).SetReplacement(doc).SetUpsert(true))
	}

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := r.collection.BulkWrite(ctx, models, opts); err != nil {
		return fmt.Errorf("failed to bulk write items: %w", err)
	}
	return nil
}

// LoadItems returns the items of block in stored order.
func (r *MongoItemStore) LoadItems(ctx context.Context, block string) (domain.FeedCollection, error) {
	filter := bson.M{"block": block}
	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() {
		if err := cursor.Close(ctx); err != nil {
			slog.Warn("Failed to close cursor", "error", err)
		}
	}()

	var items domain.FeedCollection
	for cursor.Next(ctx) {
		var doc itemDocument
		if err := cursor.Decode(&doc); err != nil {
			slog.Warn("Skipping malformed item", "block", block, "error", err)
			continue
		}
		items = append(items, domain.FeedItem{
			Title:          doc.Title,
			RedirectTarget: doc.RedirectTarget,
			SerialDate:     doc.SerialDate,
			Date:           doc.Date,
		})
	}
	return items, cursor.Err()
}

// Ping checks connectivity of the underlying client.
func (r *MongoItemStore) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}
