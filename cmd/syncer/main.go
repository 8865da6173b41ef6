package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"redditads_syncer/internal/config"
	"redditads_syncer/internal/publisher"
	"redditads_syncer/internal/redditads"
	"redditads_syncer/internal/scheduler"
	"redditads_syncer/internal/service"
	"redditads_syncer/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// Setup logger
	logger := setupLogger("info")

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	startDate, err := cfg.Reddit.Start()
	if err != nil {
		logger.Error("failed to parse start date", "error", err)
		os.Exit(1)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize RabbitMQ publisher
	rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
		URL:        cfg.RabbitMQ.URL,
		Exchange:   cfg.RabbitMQ.Exchange,
		RoutingKey: cfg.RabbitMQ.RoutingKey,
		QueueName:  cfg.RabbitMQ.QueueName,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", "error", err)
		os.Exit(1)
	}
	defer rabbitMQ.Close()

	// Initialize bookmark store
	bookmarkStore := postgres.NewBookmarkStore(db)

	// Initialize Reddit Ads client
	auth := redditads.NewAuthenticator(redditads.Credentials{
		ClientID:     cfg.Reddit.ClientID,
		ClientSecret: cfg.Reddit.ClientSecret,
		RefreshToken: cfg.Reddit.RefreshToken,
		UserAgent:    cfg.Reddit.UserAgent,
	}, logger)

	client := redditads.NewClient(redditads.Config{
		APIURL:         cfg.Reddit.APIURL,
		AccountID:      cfg.Reddit.AccountID,
		UserAgent:      cfg.Reddit.UserAgent,
		Timeout:        cfg.Reddit.Timeout,
		MaxAttempts:    cfg.Reddit.Retry.MaxAttempts,
		InitialBackoff: cfg.Reddit.Retry.InitialBackoff,
		MaxBackoff:     cfg.Reddit.Retry.MaxBackoff,
	}, auth, logger)

	// One sync service per stream, run sequentially
	syncers := make([]scheduler.Syncer, 0, len(redditads.Streams))
	for _, stream := range redditads.Streams {
		syncers = append(syncers, service.NewSyncService(
			client,
			stream,
			bookmarkStore,
			rabbitMQ,
			logger,
			startDate,
		))
	}

	sched := scheduler.NewScheduler(syncers, cfg.Sync.Interval, cfg.Sync.RunTimeout, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("starting reddit ads syncer",
		"account_id", cfg.Reddit.AccountID,
		"streams", len(syncers),
		"interval", cfg.Sync.Interval,
	)

	if err := sched.Start(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
