package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/NewsFeedBlocks/internal/domain"
	"github.com/NewsFeedBlocks/internal/infra/metrics"
	"github.com/NewsFeedBlocks/pkg/logging"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// HTTPSource loads a feed with a single GET request. Failures are not retried.
type HTTPSource struct {
	name        string
	url         string
	client      *http.Client
	transformer domain.Transformer
	cb          *gobreaker.CircuitBreaker
	sampler     *logging.ErrorSampler
}

func NewHTTPSource(name, url string, transformer domain.Transformer, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cbSettings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if we have 3 consecutive failures
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
		},
	}

	return &HTTPSource{
		name: name,
		url:  url,
		client: &http.Client{
			Timeout: timeout,
		},
		transformer: transformer,
		cb:          gobreaker.NewCircuitBreaker(cbSettings),
		sampler:     logging.NewErrorSampler(10),
	}
}

func (s *HTTPSource) GetName() string {
	return s.name
}

// Load fetches and decodes the feed. Every error comes back as *domain.LoadFailure;
// an answer without items also wraps domain.ErrNoResults.
func (s *HTTPSource) Load(ctx context.Context) (domain.FeedCollection, error) {
	tr := otel.Tracer("news-feed")
	ctx, span := tr.Start(ctx, "HTTPSource.Load",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("source", s.name), attribute.String("url", s.url)),
	)
	defer span.End()

	start := time.Now()
	items, err := s.load(ctx)
	metrics.FeedLoadDuration.WithLabelValues(s.name).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		status := "error"
		if errors.Is(err, domain.ErrNoResults) {
			status = "empty"
		}
		metrics.FeedLoads.WithLabelValues(s.name, status).Inc()

		if count, log := s.sampler.Sample(s.name); log {
			slog.Error("Feed load failed", "source", s.name, "url", s.url, "error", err, "occurrences", count)
		}
		return nil, &domain.LoadFailure{Source: s.name, Err: err}
	}

	if failures := s.sampler.Count(s.name); failures > 0 {
		slog.Info("Feed recovered", "source", s.name, "failures", failures)
		s.sampler.Reset(s.name)
	}
	metrics.FeedLoads.WithLabelValues(s.name, "success").Inc()
	slog.Debug("Feed loaded", "source", s.name, "items", len(items))
	return items, nil
}

func (s *HTTPSource) load(ctx context.Context) (domain.FeedCollection, error) {
	result, err := s.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json, application/rss+xml, application/atom+xml, */*")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				slog.Warn("Failed to close response body", "error", err)
			}
		}()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("source %s returned status %d", s.name, resp.StatusCode)
		}

		items, err := s.transformer.Transform(resp.Body)
		if errors.Is(err, domain.ErrNoResults) {
			// A well-formed empty answer says nothing about source health.
			return domain.FeedCollection(nil), nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to transform feed from %s: %w", s.name, err)
		}
		return items, nil
	})
	if err != nil {
		return nil, fmt.Errorf("circuit breaker execute failed: %w", err)
	}

	items, _ := result.(domain.FeedCollection)
	if len(items) == 0 {
		return nil, domain.ErrNoResults
	}
	return items, nil
}
