package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
)

// NotificationPayload is the JSON body POSTed to the webhook sink. No
// delivery guarantee is promised to the recipient side; the worker's retry
// loop is the only at-least-once effort made.
type NotificationPayload struct {
	TaskType     string `json:"task_type"`
	InsightID    int64  `json:"insight_id"`
	AssignmentID *int64 `json:"assignment_id,omitempty"`
	ReviewerID   *int64 `json:"reviewer_id,omitempty"`
	CommunityID  *int64 `json:"community_id,omitempty"`
	Status       string `json:"status,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

// Notifier delivers one notification to its sink.
type Notifier interface {
	Deliver(ctx context.Context, msg queue.Message) error
}

type webhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier builds a Notifier that POSTs payloads to url.
func NewWebhookNotifier(url string, timeout time.Duration) Notifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &webhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (n *webhookNotifier) Deliver(ctx context.Context, msg queue.Message) error {
	payload := NotificationPayload{
		TaskType:     string(msg.TaskType),
		InsightID:    msg.InsightID,
		AssignmentID: msg.AssignmentID,
		ReviewerID:   msg.ReviewerID,
		CommunityID:  msg.CommunityID,
		Status:       msg.Status,
		Detail:       msg.Detail,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier builds a Notifier that only logs. Used when no webhook
// sink is configured so the pipeline still drains.
func NewLogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Deliver(ctx context.Context, msg queue.Message) error {
	n.logger.InfoContext(ctx, "notification (no sink configured)",
		"task_type", msg.TaskType,
		"insight_id", msg.InsightID,
		"status", msg.Status,
		"detail", msg.Detail)
	return nil
}
