package store

import (
	"context"

	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

// Target stores for the integration dispatcher. Writes are intentionally
// narrow: the engine only ever inserts (or upserts) validated records.

type needStore struct {
	q db.Querier
}

func (s *needStore) Insert(ctx context.Context, n *model.CommunityNeed) error {
	return s.q.QueryRow(ctx, `
		INSERT INTO community_needs (
			id, insight_id, community_id, title, description, need_type,
			urgency, affected_groups, evidence
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		n.ID, n.InsightID, n.CommunityID, n.Title, n.Description,
		n.NeedType, n.Urgency, n.AffectedGroups, n.Evidence,
	).Scan(&n.CreatedAt)
}

type serviceGapStore struct {
	q db.Querier
}

func (s *serviceGapStore) Insert(ctx context.Context, g *model.ServiceGap) error {
	return s.q.QueryRow(ctx, `
		INSERT INTO service_gaps (
			id, insight_id, community_id, title, service, severity,
			affected_population, location, recommended_action
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		g.ID, g.InsightID, g.CommunityID, g.Title, g.Service, g.Severity,
		g.AffectedPopulation, g.Location, g.RecommendedAction,
	).Scan(&g.CreatedAt)
}

type successPatternStore struct {
	q db.Querier
}

func (s *successPatternStore) Insert(ctx context.Context, p *model.SuccessPattern) error {
	return s.q.QueryRow(ctx, `
		INSERT INTO success_patterns (
			id, insight_id, community_id, title, pattern,
			contributing_factors, outcomes, replicability
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		p.ID, p.InsightID, p.CommunityID, p.Title, p.Pattern,
		p.ContributingFactors, p.Outcomes, p.Replicability,
	).Scan(&p.CreatedAt)
}

type healthIndicatorStore struct {
	q db.Querier
}

func (s *healthIndicatorStore) Upsert(ctx context.Context, h *model.HealthIndicator) error {
	// One row per (community, indicator type): a newer reading replaces the
	// previous one instead of accumulating duplicates.
	return s.q.QueryRow(ctx, `
		INSERT INTO health_indicators (
			id, insight_id, community_id, indicator_type, value, unit, direction
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (community_id, indicator_type) DO UPDATE SET
			insight_id = EXCLUDED.insight_id,
			value = EXCLUDED.value,
			unit = EXCLUDED.unit,
			direction = EXCLUDED.direction,
			updated_at = now()
		RETURNING id, updated_at`,
		h.ID, h.InsightID, h.CommunityID, h.IndicatorType, h.Value, h.Unit, h.Direction,
	).Scan(&h.ID, &h.UpdatedAt)
}

type trendStore struct {
	q db.Querier
}

func (s *trendStore) Insert(ctx context.Context, t *model.Trend) error {
	return s.q.QueryRow(ctx, `
		INSERT INTO trends (
			id, insight_id, community_id, title, trend_type, direction,
			magnitude, time_period, drivers
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`,
		t.ID, t.InsightID, t.CommunityID, t.Title, t.TrendType, t.Direction,
		t.Magnitude, t.TimePeriod, t.Drivers,
	).Scan(&t.CreatedAt)
}
