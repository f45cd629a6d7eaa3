package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Acurioustractor/barkly-research-platform-sub000/common/id"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/consensus"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/dispatch"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
)

var (
	ErrInsightNotFound     = errors.New("insight not found")
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrAssignmentCompleted = errors.New("assignment already completed")
	ErrResponseNotFound    = errors.New("response not found")
)

type SubmitInsightParams struct {
	CommunityID       int64                 `json:"community_id"`
	Category          model.InsightCategory `json:"category"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Content           model.Content         `json:"content"`
	SourceDocumentIDs []int64               `json:"source_document_ids,omitempty"`
	AIConfidence      float64               `json:"ai_confidence"`
	TraceID           *string               `json:"trace_id,omitempty"`
}

type SubmitInsightResult struct {
	Insight     *model.Insight
	Assignments []model.ReviewAssignment
	// Escalated reports whether a cultural-track assignment was created.
	Escalated bool
}

type SubmitResponseResult struct {
	Response *model.ReviewResponse
	Insight  *model.Insight
	// PanelComplete is true when this submission closed the last open
	// assignment and triggered consensus computation.
	PanelComplete bool
	Metrics       *model.ValidationMetrics
	Dispatched    bool
}

type ValidationService interface {
	SubmitInsight(ctx context.Context, params SubmitInsightParams) (*SubmitInsightResult, error)
	StartReview(ctx context.Context, assignmentID int64) (*model.ReviewAssignment, error)
	SubmitResponse(ctx context.Context, assignmentID int64, response *model.ReviewResponse) (*SubmitResponseResult, error)
	GetInsight(ctx context.Context, insightID int64) (*model.Insight, error)
	GetResponse(ctx context.Context, assignmentID int64) (*model.ReviewResponse, error)
	GetMetrics(ctx context.Context, insightID int64) (*model.ValidationMetrics, error)
	ListValidated(ctx context.Context, communityID *int64, category *model.InsightCategory) ([]model.Insight, error)
}

type validationService struct {
	stores     StoreProvider
	txRunner   TxRunner
	gate       *CulturalGate
	dispatcher *dispatch.Dispatcher
	queue      queue.Producer
	policy     policy.Policy
	logger     *slog.Logger
}

func NewValidationService(
	stores StoreProvider,
	txRunner TxRunner,
	gate *CulturalGate,
	dispatcher *dispatch.Dispatcher,
	producer queue.Producer,
	p policy.Policy,
	logger *slog.Logger,
) ValidationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &validationService{
		stores:     stores,
		txRunner:   txRunner,
		gate:       gate,
		dispatcher: dispatcher,
		queue:      producer,
		policy:     p,
		logger:     logger,
	}
}

// standardCriteria is cycled over the standard panel so each member carries
// a named focus. Every response still scores all four criteria; the
// criterion on the assignment is a track marker, and cultural_appropriateness
// marks the escalation track exclusively.
var standardCriteria = []model.ReviewCriterion{
	model.CriterionAccuracy,
	model.CriterionRelevance,
	model.CriterionCompleteness,
}

func (s *validationService) SubmitInsight(ctx context.Context, params SubmitInsightParams) (*SubmitInsightResult, error) {
	insight := &model.Insight{
		ID:                id.New(),
		CommunityID:       params.CommunityID,
		Category:          params.Category,
		Title:             params.Title,
		Description:       params.Description,
		Content:           params.Content,
		SourceDocumentIDs: params.SourceDocumentIDs,
		AIConfidence:      params.AIConfidence,
		Status:            model.ValidationPending,
		CulturalStatus:    model.CulturalPending,
	}
	if err := insight.Validate(); err != nil {
		return nil, err
	}

	insight.RequiresCulturalReview = s.gate.RequiresReview(insight)

	candidates, err := s.stores.Reviewers().ListAvailableByExpertise(ctx, params.CommunityID, ExpertiseTags(params.Category))
	if err != nil {
		return nil, fmt.Errorf("listing candidate reviewers: %w", err)
	}
	panel := SelectPanel(candidates, s.policy)

	var culturalReviewer *model.Reviewer
	if insight.RequiresCulturalReview {
		authorities, err := s.stores.Reviewers().ListAvailableCulturalAuthorities(ctx, params.CommunityID)
		if err != nil {
			return nil, fmt.Errorf("listing cultural authorities: %w", err)
		}
		if ranked := SelectPanel(authorities, s.policy); len(ranked) > 0 {
			culturalReviewer = &ranked[0]
			// One open assignment per (insight, reviewer): the cultural
			// track claims the reviewer, so drop them from the panel.
			panel = excludeReviewer(panel, culturalReviewer.ID)
		}
	}

	now := time.Now()
	var assignments []model.ReviewAssignment
	for i, reviewer := range panel {
		assignments = append(assignments, model.ReviewAssignment{
			ID:         id.New(),
			InsightID:  insight.ID,
			ReviewerID: reviewer.ID,
			Criterion:  standardCriteria[i%len(standardCriteria)],
			Status:     model.AssignmentAssigned,
			Deadline:   now.AddDate(0, 0, s.policy.StandardReviewDays),
		})
	}
	escalated := false
	if culturalReviewer != nil {
		assignments = append(assignments, model.ReviewAssignment{
			ID:         id.New(),
			InsightID:  insight.ID,
			ReviewerID: culturalReviewer.ID,
			Criterion:  model.CriterionCultural,
			Status:     model.AssignmentAssigned,
			Deadline:   now.AddDate(0, 0, s.policy.CulturalReviewDays),
		})
		escalated = true
	}

	if len(assignments) > 0 {
		insight.Status = model.ValidationInReview
	}

	var created []model.ReviewAssignment
	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Insights().Create(ctx, insight); err != nil {
			return fmt.Errorf("creating insight: %w", err)
		}
		for i := range assignments {
			// At most one open assignment per (insight, reviewer).
			_, err := sp.Assignments().GetOpenByInsightAndReviewer(ctx, insight.ID, assignments[i].ReviewerID)
			if err == nil {
				continue
			}
			if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("checking open assignment: %w", err)
			}
			if err := sp.Assignments().Create(ctx, &assignments[i]); err != nil {
				return fmt.Errorf("creating assignment: %w", err)
			}
			created = append(created, assignments[i])
		}
		return nil
	}); err != nil {
		return nil, err
	}
	assignments = created

	if len(assignments) == 0 {
		s.logger.WarnContext(ctx, "no reviewers available, insight stays pending",
			"insight_id", insight.ID,
			"community_id", insight.CommunityID,
			"category", insight.Category,
			"requires_cultural_review", insight.RequiresCulturalReview)
	}
	if insight.RequiresCulturalReview && culturalReviewer == nil {
		s.logger.WarnContext(ctx, "no cultural authority available, cultural review deferred",
			"insight_id", insight.ID,
			"community_id", insight.CommunityID)
	}

	for _, a := range assignments {
		s.notify(ctx, queue.Notification{
			TaskType:     queue.TaskTypeReviewAssigned,
			InsightID:    insight.ID,
			AssignmentID: &a.ID,
			ReviewerID:   &a.ReviewerID,
			CommunityID:  &insight.CommunityID,
			TraceID:      params.TraceID,
		})
	}

	s.logger.InfoContext(ctx, "insight submitted for validation",
		"insight_id", insight.ID,
		"community_id", insight.CommunityID,
		"category", insight.Category,
		"panel_size", len(panel),
		"cultural_escalated", escalated)

	return &SubmitInsightResult{
		Insight:     insight,
		Assignments: assignments,
		Escalated:   escalated,
	}, nil
}

// StartReview flips an assignment to in_progress when a reviewer opens it.
// Idempotent: reopening an in-progress assignment is a no-op.
func (s *validationService) StartReview(ctx context.Context, assignmentID int64) (*model.ReviewAssignment, error) {
	assignment, err := s.stores.Assignments().GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("fetching assignment: %w", err)
	}
	if !assignment.Open() {
		return nil, ErrAssignmentCompleted
	}
	if assignment.Status == model.AssignmentAssigned {
		// ErrNotFound here means a concurrent transition already happened.
		if err := s.stores.Assignments().MarkInProgress(ctx, assignment.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("marking assignment in progress: %w", err)
		}
		assignment.Status = model.AssignmentInProgress
	}
	return assignment, nil
}

func (s *validationService) SubmitResponse(ctx context.Context, assignmentID int64, response *model.ReviewResponse) (*SubmitResponseResult, error) {
	// Validation errors are synchronous and leave no trace: the response is
	// rejected before any state is touched.
	if err := response.Validate(); err != nil {
		return nil, err
	}

	assignment, err := s.stores.Assignments().GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("fetching assignment: %w", err)
	}
	if !assignment.Open() {
		return nil, ErrAssignmentCompleted
	}

	insight, err := s.stores.Insights().GetByID(ctx, assignment.InsightID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInsightNotFound
		}
		return nil, fmt.Errorf("fetching insight: %w", err)
	}

	now := time.Now()
	response.ID = id.New()
	response.AssignmentID = assignment.ID
	turnaroundDays := now.Sub(assignment.AssignedAt).Hours() / 24

	if err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Responses().Create(ctx, response); err != nil {
			return fmt.Errorf("creating response: %w", err)
		}
		if err := sp.Assignments().Complete(ctx, assignment.ID, now); err != nil {
			return fmt.Errorf("completing assignment: %w", err)
		}
		if err := sp.Reviewers().RecordCompletedReview(ctx, assignment.ReviewerID, turnaroundDays); err != nil {
			return fmt.Errorf("updating reviewer stats: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review response submitted",
		"insight_id", insight.ID,
		"assignment_id", assignment.ID,
		"reviewer_id", assignment.ReviewerID,
		"recommendation", response.Recommendation)

	result := &SubmitResponseResult{Response: response, Insight: insight}

	complete, err := s.panelComplete(ctx, insight.ID)
	if err != nil {
		return nil, err
	}
	if !complete {
		return result, nil
	}

	metrics, dispatched, err := s.finalize(ctx, insight)
	if err != nil {
		return nil, err
	}
	result.PanelComplete = true
	result.Metrics = metrics
	result.Dispatched = dispatched
	return result, nil
}

func (s *validationService) panelComplete(ctx context.Context, insightID int64) (bool, error) {
	assignments, err := s.stores.Assignments().ListByInsight(ctx, insightID)
	if err != nil {
		return false, fmt.Errorf("listing assignments: %w", err)
	}
	if len(assignments) == 0 {
		return false, nil
	}
	for _, a := range assignments {
		if a.Open() {
			return false, nil
		}
	}
	return true, nil
}

// finalize aggregates the completed panel, persists metrics, stamps the
// decision, and promotes downstream when both verdicts allow it. Safe to
// run more than once for the same response set: the metrics upsert and the
// decision update both overwrite with identical values.
func (s *validationService) finalize(ctx context.Context, insight *model.Insight) (*model.ValidationMetrics, bool, error) {
	responses, err := s.stores.Responses().ListByInsight(ctx, insight.ID)
	if err != nil {
		return nil, false, fmt.Errorf("listing responses: %w", err)
	}
	assignments, err := s.stores.Assignments().ListByInsight(ctx, insight.ID)
	if err != nil {
		return nil, false, fmt.Errorf("listing assignments: %w", err)
	}

	now := time.Now()
	metrics, err := consensus.Aggregate(responses, s.policy, now)
	if err != nil {
		return nil, false, fmt.Errorf("aggregating responses: %w", err)
	}
	metrics.InsightID = insight.ID

	if err := s.stores.Metrics().Upsert(ctx, &metrics); err != nil {
		return nil, false, fmt.Errorf("persisting metrics: %w", err)
	}

	decision := consensus.Decide(metrics, s.policy)

	cultural := decision.Cultural
	// Escalation was required but no authority ever picked it up: the
	// cultural verdict stays pending until one does.
	if insight.RequiresCulturalReview && !culturalTrackCompleted(assignments) {
		cultural = model.CulturalPending
	}

	if err := s.stores.Insights().UpdateDecision(ctx, insight.ID, decision.Status, cultural, now); err != nil {
		return nil, false, fmt.Errorf("recording decision: %w", err)
	}
	insight.Status = decision.Status
	insight.CulturalStatus = cultural
	insight.DecidedAt = &now

	s.recordAgreements(ctx, insight.ID, assignments, responses, decision.Status)

	s.logger.InfoContext(ctx, "validation decision recorded",
		"insight_id", insight.ID,
		"status", decision.Status,
		"cultural_status", cultural,
		"overall_score", metrics.OverallScore,
		"consensus_level", metrics.ConsensusLevel)

	s.notify(ctx, queue.Notification{
		TaskType:    queue.TaskTypeInsightDecided,
		InsightID:   insight.ID,
		CommunityID: &insight.CommunityID,
		Status:      string(decision.Status),
	})

	if decision.Status != model.ValidationValidated {
		return &metrics, false, nil
	}

	// Validated alone is not enough to promote: the cultural verdict gates
	// the downstream write independently.
	if cultural != model.CulturalApproved {
		s.logger.WarnContext(ctx, "promotion blocked by cultural verdict",
			"insight_id", insight.ID,
			"cultural_status", cultural)
		return &metrics, false, nil
	}

	if err := s.dispatcher.Dispatch(ctx, insight); err != nil {
		// Dispatch failure never reverts the validated status. The error is
		// recorded on the insight and alerted; retry is an operator concern.
		s.logger.ErrorContext(ctx, "integration dispatch failed",
			"insight_id", insight.ID,
			"error", err)
		if storeErr := s.stores.Insights().SetIntegrationError(ctx, insight.ID, err.Error()); storeErr != nil {
			s.logger.ErrorContext(ctx, "failed to record integration error",
				"insight_id", insight.ID,
				"error", storeErr)
		}
		s.notify(ctx, queue.Notification{
			TaskType:    queue.TaskTypeIntegrationFailed,
			InsightID:   insight.ID,
			CommunityID: &insight.CommunityID,
			Detail:      err.Error(),
		})
		return &metrics, false, nil
	}

	return &metrics, true, nil
}

func culturalTrackCompleted(assignments []model.ReviewAssignment) bool {
	for _, a := range assignments {
		if a.Criterion == model.CriterionCultural && !a.Open() {
			return true
		}
	}
	return false
}

// recordAgreements folds each panel member's agreement with the recorded
// decision into their rolling accuracy rating. Best effort: the decision is
// already stamped, so a failed fold is logged and skipped.
func (s *validationService) recordAgreements(ctx context.Context, insightID int64, assignments []model.ReviewAssignment, responses []model.ReviewResponse, status model.ValidationStatus) {
	reviewerByAssignment := make(map[int64]int64, len(assignments))
	for _, a := range assignments {
		reviewerByAssignment[a.ID] = a.ReviewerID
	}
	for _, r := range responses {
		reviewerID, ok := reviewerByAssignment[r.AssignmentID]
		if !ok {
			continue
		}
		agreed := recommendationAgrees(r.Recommendation, status)
		if err := s.stores.Reviewers().RecordDecisionAgreement(ctx, reviewerID, agreed); err != nil {
			s.logger.ErrorContext(ctx, "failed to update reviewer accuracy",
				"insight_id", insightID,
				"reviewer_id", reviewerID,
				"error", err)
		}
	}
}

// recommendationAgrees maps each recommendation to the decision it argued
// for. needs_more_review takes no position and never counts as agreement.
func recommendationAgrees(rec model.Recommendation, status model.ValidationStatus) bool {
	switch rec {
	case model.RecommendApprove:
		return status == model.ValidationValidated
	case model.RecommendApproveWithChanges:
		return status == model.ValidationNeedsRevision
	case model.RecommendReject:
		return status == model.ValidationRejected
	default:
		return false
	}
}

func (s *validationService) GetInsight(ctx context.Context, insightID int64) (*model.Insight, error) {
	insight, err := s.stores.Insights().GetByID(ctx, insightID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInsightNotFound
		}
		return nil, fmt.Errorf("fetching insight: %w", err)
	}
	return insight, nil
}

func (s *validationService) GetResponse(ctx context.Context, assignmentID int64) (*model.ReviewResponse, error) {
	response, err := s.stores.Responses().GetByAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("fetching response: %w", err)
	}
	return response, nil
}

func (s *validationService) GetMetrics(ctx context.Context, insightID int64) (*model.ValidationMetrics, error) {
	metrics, err := s.stores.Metrics().GetByInsight(ctx, insightID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInsightNotFound
		}
		return nil, fmt.Errorf("fetching metrics: %w", err)
	}
	return metrics, nil
}

func (s *validationService) ListValidated(ctx context.Context, communityID *int64, category *model.InsightCategory) ([]model.Insight, error) {
	insights, err := s.stores.Insights().ListValidated(ctx, communityID, category)
	if err != nil {
		return nil, fmt.Errorf("listing validated insights: %w", err)
	}
	return insights, nil
}

// notify enqueues fire-and-forget: delivery failure is logged, never
// propagated into engine state.
func (s *validationService) notify(ctx context.Context, n queue.Notification) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, n); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue notification",
			"task_type", n.TaskType,
			"insight_id", n.InsightID,
			"error", err)
	}
}

func excludeReviewer(panel []model.Reviewer, reviewerID int64) []model.Reviewer {
	out := panel[:0]
	for _, r := range panel {
		if r.ID != reviewerID {
			out = append(out, r)
		}
	}
	return out
}
