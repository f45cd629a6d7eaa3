package dto

import (
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type SubmitInsightRequest struct {
	CommunityID       int64         `json:"community_id" binding:"required"`
	Category          string        `json:"category" binding:"required"`
	Title             string        `json:"title" binding:"required"`
	Description       string        `json:"description,omitempty"`
	Content           model.Content `json:"content"`
	SourceDocumentIDs []int64       `json:"source_document_ids,omitempty"`
	AIConfidence      float64       `json:"ai_confidence"`
}

type SubmitInsightResponse struct {
	Insight           *model.Insight           `json:"insight"`
	Assignments       []model.ReviewAssignment `json:"assignments"`
	CulturalEscalated bool                     `json:"cultural_escalated"`
}

type ListInsightsResponse struct {
	Insights []model.Insight `json:"insights"`
}
