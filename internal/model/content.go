package model

import "strings"

// Content is the category-specific payload of an insight. Exactly one arm
// is non-nil; Category reports which. Modelling this as a closed union (and
// not a free-form map) keeps the integration dispatcher an exhaustive
// switch instead of a runtime lookup that can silently miss a case.
type Content struct {
	Need            *NeedContent            `json:"need,omitempty"`
	ServiceGap      *ServiceGapContent      `json:"service_gap,omitempty"`
	SuccessPattern  *SuccessPatternContent  `json:"success_pattern,omitempty"`
	HealthIndicator *HealthIndicatorContent `json:"health_indicator,omitempty"`
	Trend           *TrendContent           `json:"trend,omitempty"`
}

type NeedContent struct {
	NeedType       string   `json:"need_type"`
	Urgency        string   `json:"urgency,omitempty"`
	AffectedGroups []string `json:"affected_groups,omitempty"`
	Evidence       string   `json:"evidence,omitempty"`
}

type ServiceGapContent struct {
	Service            string `json:"service"`
	Severity           int    `json:"severity"`
	AffectedPopulation int    `json:"affected_population"`
	Location           string `json:"location,omitempty"`
	RecommendedAction  string `json:"recommended_action,omitempty"`
}

type SuccessPatternContent struct {
	Pattern             string   `json:"pattern"`
	ContributingFactors []string `json:"contributing_factors,omitempty"`
	Outcomes            []string `json:"outcomes,omitempty"`
	Replicability       string   `json:"replicability,omitempty"`
}

type HealthIndicatorContent struct {
	IndicatorType string  `json:"indicator_type"`
	Value         float64 `json:"value"`
	Unit          string  `json:"unit,omitempty"`
	Direction     string  `json:"direction,omitempty"`
}

type TrendContent struct {
	TrendType  string   `json:"trend_type"`
	Direction  string   `json:"direction"`
	Magnitude  float64  `json:"magnitude,omitempty"`
	TimePeriod string   `json:"time_period,omitempty"`
	Drivers    []string `json:"drivers,omitempty"`
}

// Category returns the category of the populated arm. ok is false when zero
// or multiple arms are set.
func (c Content) Category() (InsightCategory, bool) {
	var cat InsightCategory
	n := 0
	if c.Need != nil {
		cat, n = CategoryNeed, n+1
	}
	if c.ServiceGap != nil {
		cat, n = CategoryServiceGap, n+1
	}
	if c.SuccessPattern != nil {
		cat, n = CategorySuccessPattern, n+1
	}
	if c.HealthIndicator != nil {
		cat, n = CategoryHealthIndicator, n+1
	}
	if c.Trend != nil {
		cat, n = CategoryTrend, n+1
	}
	return cat, n == 1
}

// Text flattens the payload's free-text fields for keyword screening.
func (c Content) Text() string {
	var sb strings.Builder
	write := func(parts ...string) {
		for _, p := range parts {
			if p == "" {
				continue
			}
			sb.WriteString(p)
			sb.WriteByte(' ')
		}
	}
	switch {
	case c.Need != nil:
		write(c.Need.NeedType, c.Need.Urgency, c.Need.Evidence)
		write(c.Need.AffectedGroups...)
	case c.ServiceGap != nil:
		write(c.ServiceGap.Service, c.ServiceGap.Location, c.ServiceGap.RecommendedAction)
	case c.SuccessPattern != nil:
		write(c.SuccessPattern.Pattern, c.SuccessPattern.Replicability)
		write(c.SuccessPattern.ContributingFactors...)
		write(c.SuccessPattern.Outcomes...)
	case c.HealthIndicator != nil:
		write(c.HealthIndicator.IndicatorType, c.HealthIndicator.Unit, c.HealthIndicator.Direction)
	case c.Trend != nil:
		write(c.Trend.TrendType, c.Trend.Direction, c.Trend.TimePeriod)
		write(c.Trend.Drivers...)
	}
	return strings.TrimSpace(sb.String())
}
