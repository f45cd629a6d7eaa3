package store

import (
	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
)

// Stores bundles every store over one Querier. Built over the pool for
// request-scoped reads, or over a transaction inside WithTx.
type Stores struct {
	q db.Querier
}

func NewStores(q db.Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Insights() InsightStore {
	return &insightStore{q: s.q}
}

func (s *Stores) Reviewers() ReviewerStore {
	return &reviewerStore{q: s.q}
}

func (s *Stores) Assignments() AssignmentStore {
	return &assignmentStore{q: s.q}
}

func (s *Stores) Responses() ResponseStore {
	return &responseStore{q: s.q}
}

func (s *Stores) Metrics() MetricsStore {
	return &metricsStore{q: s.q}
}

func (s *Stores) Needs() NeedStore {
	return &needStore{q: s.q}
}

func (s *Stores) ServiceGaps() ServiceGapStore {
	return &serviceGapStore{q: s.q}
}

func (s *Stores) SuccessPatterns() SuccessPatternStore {
	return &successPatternStore{q: s.q}
}

func (s *Stores) HealthIndicators() HealthIndicatorStore {
	return &healthIndicatorStore{q: s.q}
}

func (s *Stores) Trends() TrendStore {
	return &trendStore{q: s.q}
}
