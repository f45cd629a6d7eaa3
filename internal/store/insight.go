package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type insightStore struct {
	q db.Querier
}

const insightColumns = `id, community_id, category, title, description, content,
	source_document_ids, ai_confidence, status, cultural_status,
	requires_cultural_review, integration_error, created_at, updated_at, decided_at`

func (s *insightStore) Create(ctx context.Context, insight *model.Insight) error {
	content, err := json.Marshal(insight.Content)
	if err != nil {
		return fmt.Errorf("encoding insight content: %w", err)
	}

	row := s.q.QueryRow(ctx, `
		INSERT INTO insights (
			id, community_id, category, title, description, content,
			source_document_ids, ai_confidence, status, cultural_status,
			requires_cultural_review
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+insightColumns,
		insight.ID, insight.CommunityID, string(insight.Category),
		insight.Title, insight.Description, content,
		insight.SourceDocumentIDs, insight.AIConfidence,
		string(insight.Status), string(insight.CulturalStatus),
		insight.RequiresCulturalReview,
	)

	created, err := scanInsight(row)
	if err != nil {
		return err
	}
	*insight = *created
	return nil
}

func (s *insightStore) GetByID(ctx context.Context, id int64) (*model.Insight, error) {
	row := s.q.QueryRow(ctx, `SELECT `+insightColumns+` FROM insights WHERE id = $1`, id)
	insight, err := scanInsight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return insight, nil
}

func (s *insightStore) UpdateDecision(ctx context.Context, id int64, status model.ValidationStatus, cultural model.CulturalStatus, decidedAt time.Time) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE insights
		SET status = $2, cultural_status = $3, decided_at = $4, updated_at = now()
		WHERE id = $1`,
		id, string(status), string(cultural), decidedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *insightStore) SetIntegrationError(ctx context.Context, id int64, message string) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE insights SET integration_error = $2, updated_at = now() WHERE id = $1`,
		id, message)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *insightStore) ListValidated(ctx context.Context, communityID *int64, category *model.InsightCategory) ([]model.Insight, error) {
	// NULL filter arguments match everything.
	var cat *string
	if category != nil {
		c := string(*category)
		cat = &c
	}
	rows, err := s.q.Query(ctx, `
		SELECT `+insightColumns+`
		FROM insights
		WHERE status = 'validated'
		  AND ($1::bigint IS NULL OR community_id = $1)
		  AND ($2::text IS NULL OR category = $2)
		ORDER BY decided_at DESC NULLS LAST, id DESC`,
		communityID, cat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []model.Insight
	for rows.Next() {
		insight, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		insights = append(insights, *insight)
	}
	return insights, rows.Err()
}

func scanInsight(row pgx.Row) (*model.Insight, error) {
	var (
		insight  model.Insight
		category string
		status   string
		cultural string
		content  []byte
	)
	err := row.Scan(
		&insight.ID, &insight.CommunityID, &category, &insight.Title,
		&insight.Description, &content, &insight.SourceDocumentIDs,
		&insight.AIConfidence, &status, &cultural,
		&insight.RequiresCulturalReview, &insight.IntegrationError,
		&insight.CreatedAt, &insight.UpdatedAt, &insight.DecidedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &insight.Content); err != nil {
		return nil, fmt.Errorf("decoding insight content: %w", err)
	}
	insight.Category = model.InsightCategory(category)
	insight.Status = model.ValidationStatus(status)
	insight.CulturalStatus = model.CulturalStatus(cultural)
	return &insight, nil
}
