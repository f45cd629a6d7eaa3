package dto

import (
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type RegisterReviewerRequest struct {
	CommunityID    int64    `json:"community_id" binding:"required"`
	Name           string   `json:"name" binding:"required"`
	ExpertiseAreas []string `json:"expertise_areas"`
	Role           string   `json:"role,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	AccuracyRating float64  `json:"accuracy_rating,omitempty"`
}

type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}

type ListReviewersResponse struct {
	Reviewers []model.Reviewer `json:"reviewers"`
}
