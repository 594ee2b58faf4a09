package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/segmentio/kafka-go"
)

// Pinger is a backing service that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ReadinessWaiter blocks startup until the configured backing services answer.
// Services that are not configured are not waited for.
type ReadinessWaiter struct {
	store    Pinger
	brokers  []string
	topic    string
	interval time.Duration
}

func NewReadinessWaiter(store Pinger, brokers []string, topic string) *ReadinessWaiter {
	return &ReadinessWaiter{
		store:    store,
		brokers:  brokers,
		topic:    topic,
		interval: 2 * time.Second,
	}
}

func (w *ReadinessWaiter) WaitForDependencies(ctx context.Context) error {
	if w.store != nil {
		if err := w.waitFor(ctx, "MongoDB", w.store.Ping); err != nil {
			return err
		}
	}
	if len(w.brokers) > 0 {
		if err := w.waitFor(ctx, "Kafka", w.checkKafka); err != nil {
			return err
		}
	}
	return nil
}

// waitFor polls check until it succeeds or ctx is done. Only ctx bounds the wait.
func (w *ReadinessWaiter) waitFor(ctx context.Context, name string, check func(context.Context) error) error {
	slog.Info("Waiting for dependency", "dependency", name)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := check(ctx); err != nil {
				slog.Warn("Dependency not ready yet", "dependency", name, "error", err)
				continue
			}
			slog.Info("Dependency is ready", "dependency", name)
			return nil
		}
	}
}

func (w *ReadinessWaiter) checkKafka(ctx context.Context) error {
	for _, broker := range w.brokers {
		conn, err := net.DialTimeout("tcp", broker, 2*time.Second)
		if err != nil {
			return fmt.Errorf("failed to connect to broker %s: %w", broker, err)
		}
		_ = conn.Close()
	}

	conn, err := kafka.DialContext(ctx, "tcp", w.brokers[0])
	if err != nil {
		return fmt.Errorf("failed to dial kafka: %w", err)
	}
	defer func() {
		_ = conn.Close()
	}()

	partitions, err := conn.ReadPartitions(w.topic)
	if err != nil {
		return fmt.Errorf("failed to read partitions for topic %s: %w", w.topic, err)
	}
	if len(partitions) == 0 {
		return fmt.Errorf("topic %s has no partitions", w.topic)
	}
	return nil
}
