package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type reviewerStore struct {
	q db.Querier
}

const reviewerColumns = `id, community_id, name, expertise_areas, role, available,
	completed_reviews, accuracy_rating, avg_turnaround_days, languages,
	created_at, updated_at`

func (s *reviewerStore) Create(ctx context.Context, reviewer *model.Reviewer) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO reviewers (
			id, community_id, name, expertise_areas, role, available,
			accuracy_rating, avg_turnaround_days, languages
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+reviewerColumns,
		reviewer.ID, reviewer.CommunityID, reviewer.Name,
		reviewer.ExpertiseAreas, string(reviewer.Role), reviewer.Available,
		reviewer.AccuracyRating, reviewer.AvgTurnaroundDays, reviewer.Languages,
	)

	created, err := scanReviewer(row)
	if err != nil {
		return err
	}
	*reviewer = *created
	return nil
}

func (s *reviewerStore) GetByID(ctx context.Context, id int64) (*model.Reviewer, error) {
	row := s.q.QueryRow(ctx, `SELECT `+reviewerColumns+` FROM reviewers WHERE id = $1`, id)
	reviewer, err := scanReviewer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reviewer, nil
}

func (s *reviewerStore) SetAvailability(ctx context.Context, id int64, available bool) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE reviewers SET available = $2, updated_at = now() WHERE id = $1`,
		id, available)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *reviewerStore) ListByCommunity(ctx context.Context, communityID int64) ([]model.Reviewer, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+reviewerColumns+` FROM reviewers
		WHERE community_id = $1
		ORDER BY id`,
		communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviewers(rows)
}

func (s *reviewerStore) ListAvailableByExpertise(ctx context.Context, communityID int64, tags []string) ([]model.Reviewer, error) {
	// id ordering keeps panel selection deterministic under score ties.
	rows, err := s.q.Query(ctx, `
		SELECT `+reviewerColumns+` FROM reviewers
		WHERE community_id = $1
		  AND available
		  AND expertise_areas && $2
		ORDER BY id`,
		communityID, tags)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviewers(rows)
}

func (s *reviewerStore) ListAvailableCulturalAuthorities(ctx context.Context, communityID int64) ([]model.Reviewer, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+reviewerColumns+` FROM reviewers
		WHERE community_id = $1
		  AND available
		  AND role IN ('elder', 'cultural_authority')
		ORDER BY id`,
		communityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReviewers(rows)
}

func (s *reviewerStore) RecordCompletedReview(ctx context.Context, id int64, turnaroundDays float64) error {
	// Rolling mean folded in SQL so concurrent submissions from the same
	// reviewer cannot lose updates.
	tag, err := s.q.Exec(ctx, `
		UPDATE reviewers
		SET avg_turnaround_days =
				(avg_turnaround_days * completed_reviews + $2) / (completed_reviews + 1),
			completed_reviews = completed_reviews + 1,
			updated_at = now()
		WHERE id = $1`,
		id, turnaroundDays)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *reviewerStore) RecordDecisionAgreement(ctx context.Context, id int64, agreed bool) error {
	// Accuracy is the rolling share of decided panels where the reviewer's
	// recommendation matched the outcome. completed_reviews was already
	// incremented when the response landed, so it is the divisor here.
	outcome := 0.0
	if agreed {
		outcome = 1.0
	}
	tag, err := s.q.Exec(ctx, `
		UPDATE reviewers
		SET accuracy_rating = accuracy_rating
				+ ($2 - accuracy_rating) / GREATEST(completed_reviews, 1),
			updated_at = now()
		WHERE id = $1`,
		id, outcome)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReviewer(row pgx.Row) (*model.Reviewer, error) {
	var (
		reviewer model.Reviewer
		role     string
	)
	err := row.Scan(
		&reviewer.ID, &reviewer.CommunityID, &reviewer.Name,
		&reviewer.ExpertiseAreas, &role, &reviewer.Available,
		&reviewer.CompletedReviews, &reviewer.AccuracyRating,
		&reviewer.AvgTurnaroundDays, &reviewer.Languages,
		&reviewer.CreatedAt, &reviewer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	reviewer.Role = model.CulturalRole(role)
	return &reviewer, nil
}

func scanReviewers(rows pgx.Rows) ([]model.Reviewer, error) {
	var reviewers []model.Reviewer
	for rows.Next() {
		reviewer, err := scanReviewer(rows)
		if err != nil {
			return nil, err
		}
		reviewers = append(reviewers, *reviewer)
	}
	return reviewers, rows.Err()
}
