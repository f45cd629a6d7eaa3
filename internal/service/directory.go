package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Acurioustractor/barkly-research-platform-sub000/common/id"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
)

var ErrReviewerNotFound = errors.New("reviewer not found")

type RegisterReviewerParams struct {
	CommunityID    int64              `json:"community_id"`
	Name           string             `json:"name"`
	ExpertiseAreas []string           `json:"expertise_areas"`
	Role           model.CulturalRole `json:"role"`
	Languages      []string           `json:"languages,omitempty"`
	// AccuracyRating seeds the rolling agreement share for reviewers with a
	// known track record. Zero means unproven; decided panels adjust it.
	AccuracyRating float64 `json:"accuracy_rating,omitempty"`
}

// DirectoryService maintains the reviewer directory. Logically part of the
// engine's data boundary; exposed through the admin surface.
type DirectoryService interface {
	Register(ctx context.Context, params RegisterReviewerParams) (*model.Reviewer, error)
	SetAvailability(ctx context.Context, reviewerID int64, available bool) error
	List(ctx context.Context, communityID int64) ([]model.Reviewer, error)
}

type directoryService struct {
	reviewers store.ReviewerStore
	logger    *slog.Logger
}

func NewDirectoryService(reviewers store.ReviewerStore, logger *slog.Logger) DirectoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &directoryService{reviewers: reviewers, logger: logger}
}

func (s *directoryService) Register(ctx context.Context, params RegisterReviewerParams) (*model.Reviewer, error) {
	if params.CommunityID == 0 {
		return nil, fmt.Errorf("community_id is required")
	}
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	role := params.Role
	if role == "" {
		role = model.RoleMember
	}
	switch role {
	case model.RoleMember, model.RoleElder, model.RoleCulturalAuthority, model.RoleSubjectExpert:
	default:
		return nil, fmt.Errorf("unknown cultural role %q", role)
	}
	if params.AccuracyRating < 0 || params.AccuracyRating > 1 {
		return nil, fmt.Errorf("accuracy_rating must be between 0 and 1")
	}

	reviewer := &model.Reviewer{
		ID:             id.New(),
		CommunityID:    params.CommunityID,
		Name:           params.Name,
		ExpertiseAreas: params.ExpertiseAreas,
		Role:           role,
		Available:      true,
		AccuracyRating: params.AccuracyRating,
		Languages:      params.Languages,
	}
	if err := s.reviewers.Create(ctx, reviewer); err != nil {
		return nil, fmt.Errorf("creating reviewer: %w", err)
	}

	s.logger.InfoContext(ctx, "reviewer registered",
		"reviewer_id", reviewer.ID,
		"community_id", reviewer.CommunityID,
		"role", reviewer.Role)
	return reviewer, nil
}

func (s *directoryService) SetAvailability(ctx context.Context, reviewerID int64, available bool) error {
	if err := s.reviewers.SetAvailability(ctx, reviewerID, available); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrReviewerNotFound
		}
		return fmt.Errorf("updating availability: %w", err)
	}
	s.logger.InfoContext(ctx, "reviewer availability updated",
		"reviewer_id", reviewerID,
		"available", available)
	return nil
}

func (s *directoryService) List(ctx context.Context, communityID int64) ([]model.Reviewer, error) {
	reviewers, err := s.reviewers.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("listing reviewers: %w", err)
	}
	return reviewers, nil
}
