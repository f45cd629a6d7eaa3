package model

import (
	"fmt"
	"time"
)

type InsightCategory string

const (
	CategoryNeed            InsightCategory = "need"
	CategoryServiceGap      InsightCategory = "service_gap"
	CategorySuccessPattern  InsightCategory = "success_pattern"
	CategoryHealthIndicator InsightCategory = "health_indicator"
	CategoryTrend           InsightCategory = "trend"
)

// Categories lists every insight category in declaration order.
var Categories = []InsightCategory{
	CategoryNeed,
	CategoryServiceGap,
	CategorySuccessPattern,
	CategoryHealthIndicator,
	CategoryTrend,
}

type ValidationStatus string

const (
	ValidationPending       ValidationStatus = "pending"
	ValidationInReview      ValidationStatus = "in_review"
	ValidationValidated     ValidationStatus = "validated"
	ValidationNeedsRevision ValidationStatus = "needs_revision"
	ValidationRejected      ValidationStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
// needs_revision is terminal for this engine; a corrected insight is
// resubmitted as a new record.
func (s ValidationStatus) Terminal() bool {
	return s == ValidationValidated || s == ValidationNeedsRevision || s == ValidationRejected
}

type CulturalStatus string

const (
	CulturalPending  CulturalStatus = "pending"
	CulturalApproved CulturalStatus = "approved"
	CulturalConcerns CulturalStatus = "concerns"
	CulturalRejected CulturalStatus = "rejected"
)

// Insight is an AI-proposed claim about a community awaiting human validation.
type Insight struct {
	ID                     int64            `json:"id"`
	CommunityID            int64            `json:"community_id"`
	Category               InsightCategory  `json:"category"`
	Title                  string           `json:"title"`
	Description            string           `json:"description,omitempty"`
	Content                Content          `json:"content"`
	SourceDocumentIDs      []int64          `json:"source_document_ids,omitempty"`
	AIConfidence           float64          `json:"ai_confidence"`
	Status                 ValidationStatus `json:"status"`
	CulturalStatus         CulturalStatus   `json:"cultural_status"`
	RequiresCulturalReview bool             `json:"requires_cultural_review"`
	IntegrationError       *string          `json:"integration_error,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
	DecidedAt              *time.Time       `json:"decided_at,omitempty"`
}

// Validate checks the submission-time invariants.
func (i *Insight) Validate() error {
	if i.CommunityID == 0 {
		return fmt.Errorf("community_id is required")
	}
	if i.Title == "" {
		return fmt.Errorf("title is required")
	}
	if i.AIConfidence < 0 || i.AIConfidence > 1 {
		return fmt.Errorf("ai_confidence must be in [0,1], got %v", i.AIConfidence)
	}
	cat, ok := i.Content.Category()
	if !ok {
		return fmt.Errorf("content must carry exactly one category payload")
	}
	if cat != i.Category {
		return fmt.Errorf("content payload is %s but insight category is %s", cat, i.Category)
	}
	return nil
}
