package main

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NewsFeedBlocks/cmd/server/factory"
	"github.com/NewsFeedBlocks/internal/app"
	"github.com/NewsFeedBlocks/internal/infra/tracing"
	transport "github.com/NewsFeedBlocks/internal/transport/http"
	"github.com/NewsFeedBlocks/pkg/config"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.Provide(
			// Config
			config.Load,
			factory.NewLogger,

			// Infrastructure
			factory.NewMongoClient,
			factory.NewItemStore,
			factory.NewEventPublisher,

			// Blocks
			factory.NewBlocks,

			// Services
			factory.NewFeedBlockService,
			factory.NewReadinessWaiter,

			// HTTP Server
			factory.NewBlockHandler,
			transport.NewHTTPServer,
		),
		fx.Invoke(
			SetupTracer,
			WaitForReady, // Block until dependencies are ready
			StartServer,
		),
	).Run()
}

// --- Invokers ---

func SetupTracer(lc fx.Lifecycle, cfg *config.Config, _ *slog.Logger) error {
	if !cfg.TracingEnabled {
		return nil
	}

	ctx := context.Background()
	shutdown, err := tracing.InitTracer(ctx, "news-feed-blocks")
	if err != nil {
		slog.Error("Failed to initialize tracer", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Info("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

// WaitForReady blocks until all configured dependencies are ready.
func WaitForReady(waiter *app.ReadinessWaiter) error {
	return waiter.WaitForDependencies(context.Background())
}

func StartServer(lc fx.Lifecycle, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				slog.Info("Starting news feed server", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("HTTP server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
