package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs
// within a context. Business context (insight_id, reviewer_id, ...) flows
// through context enrichment so individual log statements don't repeat it.
type LogFields struct {
	InsightID    *int64  // insight under validation
	AssignmentID *int64  // review assignment
	ReviewerID   *int64  // reviewer acting or being notified
	CommunityID  *int64  // originating community
	MessageID    *string // Redis stream message ID
	TaskType     *string // notification task type
	Component    string  // component name, e.g. "engine.service.validation"
}

// WithLogFields enriches context with structured log fields. Multiple calls
// merge, newer non-nil/non-empty values winning.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context, empty if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, new LogFields) LogFields {
	result := existing

	if new.InsightID != nil {
		result.InsightID = new.InsightID
	}
	if new.AssignmentID != nil {
		result.AssignmentID = new.AssignmentID
	}
	if new.ReviewerID != nil {
		result.ReviewerID = new.ReviewerID
	}
	if new.CommunityID != nil {
		result.CommunityID = new.CommunityID
	}
	if new.MessageID != nil {
		result.MessageID = new.MessageID
	}
	if new.TaskType != nil {
		result.TaskType = new.TaskType
	}
	if new.Component != "" {
		result.Component = new.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value, for inline LogFields.
func Ptr[T any](v T) *T {
	return &v
}
