package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type responseStore struct {
	q db.Querier
}

const responseColumns = `id, assignment_id, accuracy_score, relevance_score,
	completeness_score, cultural_score, overall_rating, feedback, concerns,
	suggestions, corrections, recommendation, confidence, submitted_at`

func (s *responseStore) Create(ctx context.Context, r *model.ReviewResponse) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO review_responses (
			id, assignment_id, accuracy_score, relevance_score,
			completeness_score, cultural_score, overall_rating, feedback,
			concerns, suggestions, corrections, recommendation, confidence
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+responseColumns,
		r.ID, r.AssignmentID, r.AccuracyScore, r.RelevanceScore,
		r.CompletenessScore, r.CulturalScore, r.OverallRating, r.Feedback,
		r.Concerns, r.Suggestions, r.Corrections, string(r.Recommendation),
		r.Confidence,
	)

	created, err := scanResponse(row)
	if err != nil {
		return err
	}
	*r = *created
	return nil
}

func (s *responseStore) GetByAssignment(ctx context.Context, assignmentID int64) (*model.ReviewResponse, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+responseColumns+` FROM review_responses WHERE assignment_id = $1`,
		assignmentID)
	r, err := scanResponse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *responseStore) ListByInsight(ctx context.Context, insightID int64) ([]model.ReviewResponse, error) {
	rows, err := s.q.Query(ctx, `
		SELECT r.id, r.assignment_id, r.accuracy_score, r.relevance_score,
			r.completeness_score, r.cultural_score, r.overall_rating, r.feedback,
			r.concerns, r.suggestions, r.corrections, r.recommendation,
			r.confidence, r.submitted_at
		FROM review_responses r
		JOIN review_assignments a ON a.id = r.assignment_id
		WHERE a.insight_id = $1
		ORDER BY r.submitted_at, r.id`,
		insightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []model.ReviewResponse
	for rows.Next() {
		r, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *r)
	}
	return responses, rows.Err()
}

func scanResponse(row pgx.Row) (*model.ReviewResponse, error) {
	var (
		r              model.ReviewResponse
		recommendation string
	)
	err := row.Scan(
		&r.ID, &r.AssignmentID, &r.AccuracyScore, &r.RelevanceScore,
		&r.CompletenessScore, &r.CulturalScore, &r.OverallRating, &r.Feedback,
		&r.Concerns, &r.Suggestions, &r.Corrections, &recommendation,
		&r.Confidence, &r.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Recommendation = model.Recommendation(recommendation)
	return &r, nil
}
