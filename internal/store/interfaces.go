package store

import (
	"context"
	"errors"
	"time"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// InsightStore defines the contract for insight data access
type InsightStore interface {
	Create(ctx context.Context, insight *model.Insight) error
	GetByID(ctx context.Context, id int64) (*model.Insight, error)
	// UpdateDecision stamps both verdicts and the decision time in one write.
	UpdateDecision(ctx context.Context, id int64, status model.ValidationStatus, cultural model.CulturalStatus, decidedAt time.Time) error
	SetIntegrationError(ctx context.Context, id int64, message string) error
	ListValidated(ctx context.Context, communityID *int64, category *model.InsightCategory) ([]model.Insight, error)
}

// ReviewerStore defines the contract for reviewer directory data access
type ReviewerStore interface {
	Create(ctx context.Context, reviewer *model.Reviewer) error
	GetByID(ctx context.Context, id int64) (*model.Reviewer, error)
	SetAvailability(ctx context.Context, id int64, available bool) error
	ListByCommunity(ctx context.Context, communityID int64) ([]model.Reviewer, error)
	// ListAvailableByExpertise returns available reviewers of the community
	// whose expertise areas intersect tags, in insertion (id) order.
	ListAvailableByExpertise(ctx context.Context, communityID int64, tags []string) ([]model.Reviewer, error)
	// ListAvailableCulturalAuthorities returns available elders and cultural
	// authorities of the community, in insertion (id) order.
	ListAvailableCulturalAuthorities(ctx context.Context, communityID int64) ([]model.Reviewer, error)
	// RecordCompletedReview folds one completed review into the reviewer's
	// rolling stats in a single atomic update.
	RecordCompletedReview(ctx context.Context, id int64, turnaroundDays float64) error
	// RecordDecisionAgreement folds whether the reviewer's recommendation
	// matched the panel's final decision into the rolling accuracy rating.
	RecordDecisionAgreement(ctx context.Context, id int64, agreed bool) error
}

// AssignmentStore defines the contract for review assignment data access
type AssignmentStore interface {
	Create(ctx context.Context, a *model.ReviewAssignment) error
	GetByID(ctx context.Context, id int64) (*model.ReviewAssignment, error)
	ListByInsight(ctx context.Context, insightID int64) ([]model.ReviewAssignment, error)
	// GetOpenByInsightAndReviewer enforces the one-open-assignment invariant.
	GetOpenByInsightAndReviewer(ctx context.Context, insightID, reviewerID int64) (*model.ReviewAssignment, error)
	MarkInProgress(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64, completedAt time.Time) error
	// ListOverdue returns open assignments past deadline that have not been
	// reminded yet.
	ListOverdue(ctx context.Context, asOf time.Time) ([]model.ReviewAssignment, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) error
}

// ResponseStore defines the contract for review response data access
type ResponseStore interface {
	Create(ctx context.Context, r *model.ReviewResponse) error
	GetByAssignment(ctx context.Context, assignmentID int64) (*model.ReviewResponse, error)
	// ListByInsight returns the responses of all completed assignments for
	// the insight, in submission order.
	ListByInsight(ctx context.Context, insightID int64) ([]model.ReviewResponse, error)
}

// MetricsStore defines the contract for validation metrics data access
type MetricsStore interface {
	// Upsert is keyed by insight id: recomputation overwrites, making the
	// completion race harmless.
	Upsert(ctx context.Context, m *model.ValidationMetrics) error
	GetByInsight(ctx context.Context, insightID int64) (*model.ValidationMetrics, error)
}

// Typed downstream stores consumed by the integration dispatcher. Their
// table schemas are collaborator-owned.

type NeedStore interface {
	Insert(ctx context.Context, n *model.CommunityNeed) error
}

type ServiceGapStore interface {
	Insert(ctx context.Context, g *model.ServiceGap) error
}

type SuccessPatternStore interface {
	Insert(ctx context.Context, p *model.SuccessPattern) error
}

type HealthIndicatorStore interface {
	// Upsert by (community, indicator type): indicators are singular.
	Upsert(ctx context.Context, h *model.HealthIndicator) error
}

type TrendStore interface {
	Insert(ctx context.Context, t *model.Trend) error
}
