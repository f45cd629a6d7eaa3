package queue

type TaskType string

const (
	// TaskTypeReviewAssigned notifies a reviewer of a new assignment.
	TaskTypeReviewAssigned TaskType = "review_assigned"
	// TaskTypeDeadlineReminder nudges a reviewer whose assignment is overdue.
	TaskTypeDeadlineReminder TaskType = "deadline_reminder"
	// TaskTypeInsightDecided announces a final validation decision.
	TaskTypeInsightDecided TaskType = "insight_decided"
	// TaskTypeIntegrationFailed alerts operators that a validated insight
	// could not be written downstream.
	TaskTypeIntegrationFailed TaskType = "integration_failed"
)

// Notification is one outbound message for the notification worker. The
// insight is always present; assignment and reviewer depend on the task type.
type Notification struct {
	TaskType     TaskType
	InsightID    int64
	AssignmentID *int64
	ReviewerID   *int64
	CommunityID  *int64
	Status       string
	Detail       string
	TraceID      *string
	Attempt      int
}
