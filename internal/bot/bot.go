// Package bot implements lifecycle management and component orchestration
// for the registration bot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Listener receives Telegram updates until ctx is done. *bot.Bot satisfies it.
type Listener interface {
	Start(ctx context.Context)
}

// HTTPServer is a server with explicit start and graceful shutdown.
type HTTPServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Bot represents the main bot application and manages its components' lifecycle.
type Bot struct {
	logger    *slog.Logger
	listener  Listener
	health    HTTPServer
	metrics   *http.Server
	scheduler *Scheduler
}

// NewBot creates the orchestrator. metrics may be nil when the metrics
// listener is disabled.
func NewBot(
	logger *slog.Logger,
	listener Listener,
	health HTTPServer,
	metrics *http.Server,
	scheduler *Scheduler,
) *Bot {
	return &Bot{
		logger:    logger.With("component", "bot_orchestrator"),
		listener:  listener,
		health:    health,
		metrics:   metrics,
		scheduler: scheduler,
	}
}

// Run starts every component and blocks until ctx is cancelled or one of
// them fails. All components are shut down before it returns.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting bot orchestrator...")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		b.logger.Info("Starting Telegram bot listener...")

		b.listener.Start(gCtx)
		b.logger.Info("Telegram bot listener stopped.")

		if gCtx.Err() == nil {
			b.logger.Warn("Telegram bot listener stopped unexpectedly without context cancellation.")
			return fmt.Errorf("telegram listener stopped unexpectedly")
		}
		return nil
	})

	b.goServer(g, gCtx, "health", b.health)
	if b.metrics != nil {
		b.goServer(g, gCtx, "metrics", metricsServer{b.metrics})
	}

	g.Go(func() error {
		b.logger.Info("Starting scheduler...")
		if _, err := b.scheduler.Start(gCtx); err != nil {
			b.logger.Error("Failed to start scheduler", "error", err)
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		b.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := b.scheduler.Stop(); err != nil {
			b.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	b.logger.Info("Bot orchestrator running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if err != nil && !errors.Is(err, context.Canceled) {
		b.logger.Error("Bot orchestrator stopped due to error", "error", err)
		return err
	}

	b.logger.Info("Bot orchestrator stopped gracefully.")
	return nil
}

// goServer runs srv in the group and shuts it down once ctx is done.
func (b *Bot) goServer(g *errgroup.Group, ctx context.Context, name string, srv HTTPServer) {
	g.Go(func() error {
		b.logger.Info("Starting HTTP server", "server", name)
		if err := srv.Start(); err != nil {
			return fmt.Errorf("%s server: %w", name, err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			b.logger.Error("Error shutting down HTTP server", "server", name, "error", err)
		}
		b.logger.Info("HTTP server stopped", "server", name)
		return nil
	})
}

// metricsServer adapts *http.Server to HTTPServer.
type metricsServer struct {
	srv *http.Server
}

func (m metricsServer) Start() error {
	if err := m.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (m metricsServer) Shutdown(ctx context.Context) error {
	return m.srv.Shutdown(ctx)
}
