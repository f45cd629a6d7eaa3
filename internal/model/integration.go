package model

import "time"

// Downstream integration records. A validated insight is transformed into
// exactly one of these shapes, keyed by its category. Schemas are owned by
// the consuming stores; the engine only routes and copies fields.

type CommunityNeed struct {
	ID             int64     `json:"id"`
	InsightID      int64     `json:"insight_id"`
	CommunityID    int64     `json:"community_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	NeedType       string    `json:"need_type"`
	Urgency        string    `json:"urgency,omitempty"`
	AffectedGroups []string  `json:"affected_groups,omitempty"`
	Evidence       string    `json:"evidence,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ServiceGap struct {
	ID                 int64     `json:"id"`
	InsightID          int64     `json:"insight_id"`
	CommunityID        int64     `json:"community_id"`
	Title              string    `json:"title"`
	Service            string    `json:"service"`
	Severity           int       `json:"severity"`
	AffectedPopulation int       `json:"affected_population"`
	Location           string    `json:"location,omitempty"`
	RecommendedAction  string    `json:"recommended_action,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type SuccessPattern struct {
	ID                  int64     `json:"id"`
	InsightID           int64     `json:"insight_id"`
	CommunityID         int64     `json:"community_id"`
	Title               string    `json:"title"`
	Pattern             string    `json:"pattern"`
	ContributingFactors []string  `json:"contributing_factors,omitempty"`
	Outcomes            []string  `json:"outcomes,omitempty"`
	Replicability       string    `json:"replicability,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// HealthIndicator is singular per (community, indicator type); dispatch
// upserts rather than inserts.
type HealthIndicator struct {
	ID            int64     `json:"id"`
	InsightID     int64     `json:"insight_id"`
	CommunityID   int64     `json:"community_id"`
	IndicatorType string    `json:"indicator_type"`
	Value         float64   `json:"value"`
	Unit          string    `json:"unit,omitempty"`
	Direction     string    `json:"direction,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Trend struct {
	ID          int64     `json:"id"`
	InsightID   int64     `json:"insight_id"`
	CommunityID int64     `json:"community_id"`
	Title       string    `json:"title"`
	TrendType   string    `json:"trend_type"`
	Direction   string    `json:"direction"`
	Magnitude   float64   `json:"magnitude,omitempty"`
	TimePeriod  string    `json:"time_period,omitempty"`
	Drivers     []string  `json:"drivers,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
