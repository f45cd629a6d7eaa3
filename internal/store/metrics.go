package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type metricsStore struct {
	q db.Querier
}

const metricsColumns = `insight_id, total_reviewers, completed_reviews,
	accuracy_avg, relevance_avg, completeness_avg, cultural_avg,
	overall_score, consensus_level, cultural_compliance, recommendations,
	common_concerns, common_suggestions, computed_at`

func (s *metricsStore) Upsert(ctx context.Context, m *model.ValidationMetrics) error {
	recommendations, err := json.Marshal(m.Recommendations)
	if err != nil {
		return fmt.Errorf("encoding recommendation counts: %w", err)
	}

	// Keyed by insight id: the last writer of a concurrent recomputation
	// wins, and both compute the same aggregate.
	row := s.q.QueryRow(ctx, `
		INSERT INTO validation_metrics (
			insight_id, total_reviewers, completed_reviews,
			accuracy_avg, relevance_avg, completeness_avg, cultural_avg,
			overall_score, consensus_level, cultural_compliance,
			recommendations, common_concerns, common_suggestions, computed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (insight_id) DO UPDATE SET
			total_reviewers = EXCLUDED.total_reviewers,
			completed_reviews = EXCLUDED.completed_reviews,
			accuracy_avg = EXCLUDED.accuracy_avg,
			relevance_avg = EXCLUDED.relevance_avg,
			completeness_avg = EXCLUDED.completeness_avg,
			cultural_avg = EXCLUDED.cultural_avg,
			overall_score = EXCLUDED.overall_score,
			consensus_level = EXCLUDED.consensus_level,
			cultural_compliance = EXCLUDED.cultural_compliance,
			recommendations = EXCLUDED.recommendations,
			common_concerns = EXCLUDED.common_concerns,
			common_suggestions = EXCLUDED.common_suggestions,
			computed_at = EXCLUDED.computed_at
		RETURNING `+metricsColumns,
		m.InsightID, m.TotalReviewers, m.CompletedReviews,
		m.AccuracyAvg, m.RelevanceAvg, m.CompletenessAvg, m.CulturalAvg,
		m.OverallScore, m.ConsensusLevel, m.CulturalCompliance,
		recommendations, m.CommonConcerns, m.CommonSuggestions, m.ComputedAt,
	)

	stored, err := scanMetrics(row)
	if err != nil {
		return err
	}
	*m = *stored
	return nil
}

func (s *metricsStore) GetByInsight(ctx context.Context, insightID int64) (*model.ValidationMetrics, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+metricsColumns+` FROM validation_metrics WHERE insight_id = $1`,
		insightID)
	m, err := scanMetrics(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

func scanMetrics(row pgx.Row) (*model.ValidationMetrics, error) {
	var (
		m               model.ValidationMetrics
		recommendations []byte
	)
	err := row.Scan(
		&m.InsightID, &m.TotalReviewers, &m.CompletedReviews,
		&m.AccuracyAvg, &m.RelevanceAvg, &m.CompletenessAvg, &m.CulturalAvg,
		&m.OverallScore, &m.ConsensusLevel, &m.CulturalCompliance,
		&recommendations, &m.CommonConcerns, &m.CommonSuggestions, &m.ComputedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(recommendations, &m.Recommendations); err != nil {
		return nil, fmt.Errorf("decoding recommendation counts: %w", err)
	}
	return &m, nil
}
