package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/segmentio/kafka-go"
)

// KafkaProducer publishes page-change events to a topic.
type KafkaProducer struct {
	writer *kafka.Writer
}

var _ domain.EventPublisher = (*KafkaProducer)(nil)

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{}, // same block, same partition: events stay ordered per block
		Async:    false,
	}
	slog.Info("Kafka Producer initialized", "brokers", brokers, "topic", topic)
	return &KafkaProducer{writer: w}
}

func (p *KafkaProducer) PublishPageChange(ctx context.Context, event *domain.PageChange) error {
	msg, err := encodePageChange(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Error("Failed to write to kafka", "error", err)
		return err
	}

	slog.Debug("Published page change to Kafka", "id", event.ID, "block", event.Block, "to", event.To)
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}

func encodePageChange(event *domain.PageChange) (kafka.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(event.Block),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("page_change")},
			{Key: "origin", Value: []byte(event.Origin)},
		},
	}, nil
}

// NopPublisher drops every event. It stands in when Kafka is not configured.
type NopPublisher struct{}

var _ domain.EventPublisher = NopPublisher{}

func (NopPublisher) PublishPageChange(context.Context, *domain.PageChange) error { return nil }

func (NopPublisher) Close() error { return nil }
