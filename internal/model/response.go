package model

import (
	"errors"
	"fmt"
	"time"
)

type Recommendation string

const (
	RecommendApprove            Recommendation = "approve"
	RecommendApproveWithChanges Recommendation = "approve_with_changes"
	RecommendReject             Recommendation = "reject"
	RecommendNeedsMoreReview    Recommendation = "needs_more_review"
)

func (r Recommendation) Valid() bool {
	switch r {
	case RecommendApprove, RecommendApproveWithChanges, RecommendReject, RecommendNeedsMoreReview:
		return true
	}
	return false
}

// ErrInvalidResponse marks a review response that fails field validation.
// Handlers report it synchronously; the response is never persisted.
var ErrInvalidResponse = errors.New("invalid review response")

// ReviewResponse is a completed judgment. Immutable once created.
type ReviewResponse struct {
	ID           int64 `json:"id"`
	AssignmentID int64 `json:"assignment_id"`

	// Ordinal criterion scores, integers 1-5.
	AccuracyScore     int `json:"accuracy_score"`
	RelevanceScore    int `json:"relevance_score"`
	CompletenessScore int `json:"completeness_score"`
	CulturalScore     int `json:"cultural_score"`

	// Self-reported holistic score, 1-5. Feeds consensus-level computation
	// only; it is not part of the overall validation score.
	OverallRating int `json:"overall_rating"`

	Feedback       string         `json:"feedback,omitempty"`
	Concerns       []string       `json:"concerns,omitempty"`
	Suggestions    []string       `json:"suggestions,omitempty"`
	Corrections    []string       `json:"corrections,omitempty"`
	Recommendation Recommendation `json:"recommendation"`
	Confidence     float64        `json:"confidence"`
	SubmittedAt    time.Time      `json:"submitted_at"`
}

// Validate enforces the response invariants: all five ratings are integers
// in [1,5], confidence is in [0,1], and the recommendation is recognized.
func (r *ReviewResponse) Validate() error {
	scores := []struct {
		name  string
		value int
	}{
		{"accuracy_score", r.AccuracyScore},
		{"relevance_score", r.RelevanceScore},
		{"completeness_score", r.CompletenessScore},
		{"cultural_score", r.CulturalScore},
		{"overall_rating", r.OverallRating},
	}
	for _, s := range scores {
		if s.value < 1 || s.value > 5 {
			return fmt.Errorf("%w: %s must be between 1 and 5, got %d", ErrInvalidResponse, s.name, s.value)
		}
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be in [0,1], got %v", ErrInvalidResponse, r.Confidence)
	}
	if !r.Recommendation.Valid() {
		return fmt.Errorf("%w: unknown recommendation %q", ErrInvalidResponse, r.Recommendation)
	}
	return nil
}
