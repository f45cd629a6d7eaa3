package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Acurioustractor/barkly-research-platform-sub000/common/logger"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
)

type ReminderConfig struct {
	Interval time.Duration
}

// ReminderScanner periodically finds open assignments past their deadline
// and enqueues reminder notifications. Deadlines are advisory: the scan
// never changes assignment state beyond stamping the reminder time, and
// each assignment is reminded at most once.
type ReminderScanner struct {
	assignments store.AssignmentStore
	producer    queue.Producer
	cfg         ReminderConfig

	stopCh    chan struct{}
	stoppedCh chan struct{}
}

func NewReminderScanner(assignments store.AssignmentStore, producer queue.Producer, cfg ReminderConfig) *ReminderScanner {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	return &ReminderScanner{
		assignments: assignments,
		producer:    producer,
		cfg:         cfg,
		stopCh:      make(chan struct{}),
		stoppedCh:   make(chan struct{}),
	}
}

// Run starts the scan loop. Blocks until Stop() is called.
func (r *ReminderScanner) Run(ctx context.Context) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Component: "engine.worker.reminder",
	})

	defer close(r.stoppedCh)

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "reminder scanner started", "interval", r.cfg.Interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			slog.InfoContext(ctx, "reminder scanner stopping")
			return
		case <-ticker.C:
			if err := r.ScanOnce(ctx, time.Now()); err != nil {
				slog.ErrorContext(ctx, "reminder scan error", "error", err)
			}
		}
	}
}

// Stop signals the scanner to stop gracefully.
func (r *ReminderScanner) Stop() {
	close(r.stopCh)
	<-r.stoppedCh
}

// ScanOnce performs one scan cycle.
func (r *ReminderScanner) ScanOnce(ctx context.Context, now time.Time) error {
	overdue, err := r.assignments.ListOverdue(ctx, now)
	if err != nil {
		return fmt.Errorf("listing overdue assignments: %w", err)
	}
	if len(overdue) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "found overdue assignments", "count", len(overdue))

	for _, a := range overdue {
		if err := r.producer.Enqueue(ctx, queue.Notification{
			TaskType:     queue.TaskTypeDeadlineReminder,
			InsightID:    a.InsightID,
			AssignmentID: &a.ID,
			ReviewerID:   &a.ReviewerID,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to enqueue reminder",
				"error", err,
				"assignment_id", a.ID)
			continue
		}
		if err := r.assignments.MarkReminderSent(ctx, a.ID, now); err != nil {
			slog.ErrorContext(ctx, "failed to mark reminder sent",
				"error", err,
				"assignment_id", a.ID)
		}
	}

	return nil
}
