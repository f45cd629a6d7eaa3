package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Acurioustractor/barkly-research-platform-sub000/common/id"
	"github.com/Acurioustractor/barkly-research-platform-sub000/common/logger"
	"github.com/Acurioustractor/barkly-research-platform-sub000/common/otel"
	"github.com/Acurioustractor/barkly-research-platform-sub000/core/config"
	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "notification worker starting", "env", cfg.Env)
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	consumer, err := queue.NewRedisConsumer(redisClient, queue.ConsumerConfig{
		Stream:       cfg.Pipeline.RedisStream,
		Group:        cfg.Pipeline.RedisGroup,
		Consumer:     cfg.Pipeline.RedisConsumer,
		DLQStream:    cfg.Pipeline.RedisDLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  5,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	var notifier worker.Notifier
	if cfg.Notify.Enabled() {
		notifier = worker.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.Timeout)
		slog.InfoContext(ctx, "webhook sink configured", "url", cfg.Notify.WebhookURL)
	} else {
		notifier = worker.NewLogNotifier(slog.Default())
		slog.InfoContext(ctx, "no webhook sink configured, notifications will be logged")
	}

	w := worker.New(consumer, notifier, worker.Config{MaxAttempts: 5})

	reclaimer := worker.NewNotificationReclaimer(redisClient, worker.ReclaimerConfig{
		Stream:    cfg.Pipeline.RedisStream,
		Group:     cfg.Pipeline.RedisGroup,
		Consumer:  cfg.Pipeline.RedisConsumer,
		MinIdle:   5 * time.Minute,
		Interval:  time.Minute,
		BatchSize: 10,
	}, consumer, w.ProcessMessage)

	stores := store.NewStores(database.Querier())
	producer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, slog.Default())
	reminder := worker.NewReminderScanner(stores.Assignments(), producer, worker.ReminderConfig{
		Interval: cfg.Reminder.Interval,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go reclaimer.Run(runCtx)
	go reminder.Run(runCtx)
	go func() {
		if err := w.Run(runCtx); err != nil && err != context.Canceled {
			slog.ErrorContext(runCtx, "worker stopped with error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")
	cancel()
	w.Stop()
	reclaimer.Stop()
	reminder.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}
