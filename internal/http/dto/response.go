package dto

import (
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type SubmitResponseRequest struct {
	AccuracyScore     int      `json:"accuracy_score" binding:"required"`
	RelevanceScore    int      `json:"relevance_score" binding:"required"`
	CompletenessScore int      `json:"completeness_score" binding:"required"`
	CulturalScore     int      `json:"cultural_score" binding:"required"`
	OverallRating     int      `json:"overall_rating" binding:"required"`
	Feedback          string   `json:"feedback,omitempty"`
	Concerns          []string `json:"concerns,omitempty"`
	Suggestions       []string `json:"suggestions,omitempty"`
	Corrections       []string `json:"corrections,omitempty"`
	Recommendation    string   `json:"recommendation" binding:"required"`
	Confidence        float64  `json:"confidence"`
}

type SubmitResponseResponse struct {
	Response      *model.ReviewResponse    `json:"response"`
	PanelComplete bool                     `json:"panel_complete"`
	Metrics       *model.ValidationMetrics `json:"metrics,omitempty"`
	Dispatched    bool                     `json:"dispatched"`
}
