package model

import "time"

type ReviewCriterion string

const (
	CriterionAccuracy     ReviewCriterion = "accuracy"
	CriterionCultural     ReviewCriterion = "cultural_appropriateness"
	CriterionRelevance    ReviewCriterion = "relevance"
	CriterionCompleteness ReviewCriterion = "completeness"
)

type AssignmentStatus string

const (
	AssignmentAssigned   AssignmentStatus = "assigned"
	AssignmentInProgress AssignmentStatus = "in_progress"
	AssignmentCompleted  AssignmentStatus = "completed"
)

// ReviewAssignment is one reviewer's obligation to judge one insight.
// At most one open assignment exists per (insight, reviewer) pair.
type ReviewAssignment struct {
	ID             int64            `json:"id"`
	InsightID      int64            `json:"insight_id"`
	ReviewerID     int64            `json:"reviewer_id"`
	Criterion      ReviewCriterion  `json:"criterion"`
	Status         AssignmentStatus `json:"status"`
	AssignedAt     time.Time        `json:"assigned_at"`
	Deadline       time.Time        `json:"deadline"`
	CompletedAt    *time.Time       `json:"completed_at,omitempty"`
	ReminderSentAt *time.Time       `json:"reminder_sent_at,omitempty"`
}

// Open reports whether the assignment still awaits a response.
func (a ReviewAssignment) Open() bool {
	return a.Status != AssignmentCompleted
}

// Overdue reports whether an open assignment is past its deadline.
// Deadlines are advisory: the only consequence is reminder eligibility.
func (a ReviewAssignment) Overdue(now time.Time) bool {
	return a.Open() && now.After(a.Deadline)
}
