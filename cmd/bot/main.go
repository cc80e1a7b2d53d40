// Package main contains the entrypoint for the registration bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/edgard/regbot/internal/bot"
	"github.com/edgard/regbot/internal/bot/handlers"
	"github.com/edgard/regbot/internal/bot/tasks"
	"github.com/edgard/regbot/internal/config"
	"github.com/edgard/regbot/internal/health"
	"github.com/edgard/regbot/internal/logger"
	"github.com/edgard/regbot/internal/metrics"
	"github.com/edgard/regbot/internal/registration"
	"github.com/edgard/regbot/internal/store"
	"github.com/edgard/regbot/internal/telegram"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires every component, blocks until shutdown and returns the exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	// A missing .env is normal in deployments that set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	client, err := store.NewClient(cfg.Store.URL, cfg.Store.Token, cfg.Store.DialTimeout)
	if err != nil {
		log.Error("Failed to create store client", "error", err)
		return 1
	}
	defer client.Close()
	st := store.NewStore(client, cfg.Store.KeyPrefix, log)

	if err := st.Ping(ctx); err != nil {
		// The health endpoint reports an unreachable store; keep serving.
		log.Warn("Store is not reachable at startup", "error", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	hDeps := handlers.HandlerDeps{
		Logger: log,
		Config: cfg,
		Store:  st,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log)),
		tgbot.WithDefaultHandler(handlers.NewDefaultHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", me.ID, "bot_username", me.Username)

	hDeps.Workflow = registration.New(st, tg, me.Username, cfg.Messages, m, log)

	count, err := telegram.RegisterHandlers(tg, log, handlers.RegisterAllHandlers(hDeps))
	if err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}
	log.Info("Registered Telegram handlers", "count", count)

	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  st,
		Sender: tg,
		Config: cfg,
	}
	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}

	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           metrics.Handler(registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
	}

	app := bot.NewBot(log, tg, health.New(cfg.HTTP.Addr(), st, log), metricsServer, sched)

	log.Info("Starting bot...", "http_addr", cfg.HTTP.Addr(), "metrics_enabled", cfg.Metrics.Enabled)
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}
