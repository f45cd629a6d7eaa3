package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Acurioustractor/barkly-research-platform-sub000/common/logger"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
)

type ReclaimerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	MinIdle   time.Duration
	Interval  time.Duration
	BatchSize int64
}

// NotificationReclaimer sweeps notifications another worker read but never
// acknowledged, claims them for this consumer, and replays them through the
// normal processor. Covers the crash window between XREADGROUP and XACK.
type NotificationReclaimer struct {
	client    *redis.Client
	cfg       ReclaimerConfig
	consumer  *queue.RedisConsumer
	processor queue.MessageProcessor

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewNotificationReclaimer(client *redis.Client, cfg ReclaimerConfig, consumer *queue.RedisConsumer, processor queue.MessageProcessor) *NotificationReclaimer {
	return &NotificationReclaimer{
		client:    client,
		cfg:       cfg,
		consumer:  consumer,
		processor: processor,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Run starts the sweep loop. Blocks until Stop() is called.
func (r *NotificationReclaimer) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "engine.worker.reclaimer",
	})

	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "notification reclaimer started",
		"interval", r.cfg.Interval,
		"min_idle", r.cfg.MinIdle,
		"stream", r.cfg.Stream,
		"group", r.cfg.Group)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "notification reclaimer stopping")
			return
		case <-ticker.C:
			if err := r.sweep(ctx); err != nil {
				slog.ErrorContext(ctx, "reclaim sweep error", "error", err)
			}
		}
	}
}

// Stop signals the reclaimer to stop gracefully.
func (r *NotificationReclaimer) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// sweep walks the pending entries list with XAUTOCLAIM, claiming every
// notification idle past the threshold in batches. The "0-0" cursor marks
// a complete pass.
func (r *NotificationReclaimer) sweep(ctx context.Context) error {
	start := "0-0"
	for {
		messages, next, err := r.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
			Stream:   r.cfg.Stream,
			Group:    r.cfg.Group,
			Consumer: r.cfg.Consumer,
			MinIdle:  r.cfg.MinIdle,
			Start:    start,
			Count:    r.cfg.BatchSize,
		}).Result()
		if err != nil {
			return fmt.Errorf("xautoclaim: %w", err)
		}

		if len(messages) > 0 {
			slog.InfoContext(ctx, "claimed stale notifications", "count", len(messages))
		}
		for _, msg := range messages {
			r.replay(ctx, msg)
		}

		if next == "0-0" {
			return nil
		}
		start = next
	}
}

func (r *NotificationReclaimer) replay(ctx context.Context, msg redis.XMessage) {
	msgID := msg.ID
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		MessageID: &msgID,
	})

	parsed, err := queue.ParseMessage(msg)
	if err != nil {
		// A malformed entry would be re-claimed every sweep; ack it away.
		slog.ErrorContext(ctx, "dropping malformed reclaimed notification", "error", err)
		if ackErr := r.consumer.Ack(ctx, queue.Message{ID: msg.ID, Raw: msg}); ackErr != nil {
			slog.ErrorContext(ctx, "failed to ack malformed notification", "error", ackErr)
		}
		return
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		InsightID: &parsed.InsightID,
	})

	slog.InfoContext(ctx, "replaying stale notification",
		"task_type", parsed.TaskType,
		"attempt", parsed.Attempt)

	start := time.Now()
	if err := r.processor(ctx, parsed); err != nil {
		slog.ErrorContext(ctx, "failed to replay stale notification",
			"task_type", parsed.TaskType,
			"error", err)
		return
	}

	slog.DebugContext(ctx, "stale notification replayed",
		"duration_ms", time.Since(start).Milliseconds())
}
