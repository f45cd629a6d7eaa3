package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Acurioustractor/barkly-research-platform-sub000/common/logger"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
)

type Config struct {
	MaxAttempts int
}

// Worker drains the notification stream and delivers each message to the
// configured sink. Failed deliveries are requeued with an incremented
// attempt count; messages exceeding MaxAttempts are dead-lettered.
type Worker struct {
	consumer *queue.RedisConsumer
	notifier Notifier
	cfg      Config

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func New(consumer *queue.RedisConsumer, notifier Notifier, cfg Config) *Worker {
	return &Worker{
		consumer:  consumer,
		notifier:  notifier,
		cfg:       cfg,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (w *Worker) Run(ctx context.Context) error {
	defer close(w.stoppedCh)

	slog.InfoContext(ctx, "notification worker started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			slog.InfoContext(ctx, "notification worker stopping")
			return nil
		default:
			if err := w.processOneBatch(ctx); err != nil {
				slog.ErrorContext(ctx, "batch processing error", "error", err)
				// Brief backoff on error
				time.Sleep(time.Second)
			}
		}
	}
}

func (w *Worker) Stop() {
	close(w.stopCh)
	<-w.stoppedCh
}

func (w *Worker) processOneBatch(ctx context.Context) error {
	messages, err := w.consumer.Read(ctx)
	if err != nil {
		return fmt.Errorf("reading from stream: %w", err)
	}

	for _, msg := range messages {
		if err := w.processMessageSafe(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "notification delivery failed",
				"error", err,
				"message_id", msg.ID,
				"insight_id", msg.InsightID)
			w.handleFailedMessage(ctx, msg, err)
		}
	}

	return nil
}

func (w *Worker) processMessageSafe(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "panic recovered in notification delivery",
				"panic", r,
				"message_id", msg.ID,
				"insight_id", msg.InsightID)
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return w.ProcessMessage(ctx, msg)
}

// Exported so it can be reused by the reclaimer.
func (w *Worker) ProcessMessage(ctx context.Context, msg queue.Message) error {
	taskType := string(msg.TaskType)
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		InsightID: &msg.InsightID,
		MessageID: &msg.ID,
		TaskType:  &taskType,
	})

	slog.InfoContext(ctx, "delivering notification", "attempt", msg.Attempt)

	if err := w.notifier.Deliver(ctx, msg); err != nil {
		return fmt.Errorf("delivering notification: %w", err)
	}

	if err := w.consumer.Ack(ctx, msg); err != nil {
		// Delivery already happened; a reclaimed redelivery is harmless for
		// notifications, so log and move on.
		slog.WarnContext(ctx, "failed to ACK message",
			"error", err,
			"message_id", msg.ID)
	}

	return nil
}

func (w *Worker) handleFailedMessage(ctx context.Context, msg queue.Message, err error) {
	if msg.Attempt >= w.cfg.MaxAttempts {
		slog.ErrorContext(ctx, "max attempts reached, sending to DLQ",
			"message_id", msg.ID,
			"insight_id", msg.InsightID,
			"attempts", msg.Attempt)
		if dlqErr := w.consumer.SendDLQ(ctx, msg, err.Error()); dlqErr != nil {
			slog.ErrorContext(ctx, "failed to send to DLQ", "error", dlqErr)
		}
		return
	}

	slog.WarnContext(ctx, "requeuing failed message",
		"message_id", msg.ID,
		"insight_id", msg.InsightID,
		"attempt", msg.Attempt)
	if requeueErr := w.consumer.Requeue(ctx, msg, err.Error()); requeueErr != nil {
		slog.ErrorContext(ctx, "failed to requeue message", "error", requeueErr)
	}
}
