package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type Producer interface {
	Enqueue(ctx context.Context, n Notification) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, n Notification) error {
	attempt := n.Attempt
	if attempt <= 0 {
		attempt = 1
	}

	values := notificationValues(n, attempt)

	if err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: values,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}

	p.logger.InfoContext(ctx, "enqueued notification", "task_type", n.TaskType, "insight_id", n.InsightID, "attempt", attempt)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func notificationValues(n Notification, attempt int) map[string]any {
	values := map[string]any{
		"task_type":  string(n.TaskType),
		"insight_id": n.InsightID,
		"attempt":    attempt,
	}

	if n.AssignmentID != nil {
		values["assignment_id"] = *n.AssignmentID
	}
	if n.ReviewerID != nil {
		values["reviewer_id"] = *n.ReviewerID
	}
	if n.CommunityID != nil {
		values["community_id"] = *n.CommunityID
	}
	if n.Status != "" {
		values["status"] = n.Status
	}
	if n.Detail != "" {
		values["detail"] = n.Detail
	}
	if n.TraceID != nil && *n.TraceID != "" {
		values["trace_id"] = *n.TraceID
	}

	return values
}
