// Package dispatch routes validated insights into the category-specific
// downstream stores. Routing is a total function over the content union;
// an insight whose payload matches no arm is a configuration error, never
// a silent drop.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Acurioustractor/barkly-research-platform-sub000/common/id"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
)

// ErrNoTarget is returned when an insight's content carries no payload the
// dispatcher knows how to route. The insight keeps its validated status;
// the failed dispatch is the caller's to record.
var ErrNoTarget = errors.New("no dispatch target for insight content")

// TargetStores is the set of downstream stores the dispatcher writes to.
// *store.Stores satisfies it.
type TargetStores interface {
	Needs() store.NeedStore
	ServiceGaps() store.ServiceGapStore
	SuccessPatterns() store.SuccessPatternStore
	HealthIndicators() store.HealthIndicatorStore
	Trends() store.TrendStore
}

type Dispatcher struct {
	targets TargetStores
	logger  *slog.Logger
}

func New(targets TargetStores, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{targets: targets, logger: logger}
}

// Dispatch transforms the insight's content payload into the downstream
// record for its category and writes it. One write per call; callers only
// invoke this for insights that are validated and culturally approved.
func (d *Dispatcher) Dispatch(ctx context.Context, insight *model.Insight) error {
	c := insight.Content

	switch {
	case c.Need != nil:
		record := &model.CommunityNeed{
			ID:             id.New(),
			InsightID:      insight.ID,
			CommunityID:    insight.CommunityID,
			Title:          insight.Title,
			Description:    insight.Description,
			NeedType:       c.Need.NeedType,
			Urgency:        c.Need.Urgency,
			AffectedGroups: c.Need.AffectedGroups,
			Evidence:       c.Need.Evidence,
		}
		if err := d.targets.Needs().Insert(ctx, record); err != nil {
			return fmt.Errorf("writing community need: %w", err)
		}
		d.logger.InfoContext(ctx, "dispatched community need", "insight_id", insight.ID, "need_id", record.ID)

	case c.ServiceGap != nil:
		record := &model.ServiceGap{
			ID:                 id.New(),
			InsightID:          insight.ID,
			CommunityID:        insight.CommunityID,
			Title:              insight.Title,
			Service:            c.ServiceGap.Service,
			Severity:           c.ServiceGap.Severity,
			AffectedPopulation: c.ServiceGap.AffectedPopulation,
			Location:           c.ServiceGap.Location,
			RecommendedAction:  c.ServiceGap.RecommendedAction,
		}
		if err := d.targets.ServiceGaps().Insert(ctx, record); err != nil {
			return fmt.Errorf("writing service gap: %w", err)
		}
		d.logger.InfoContext(ctx, "dispatched service gap", "insight_id", insight.ID, "gap_id", record.ID)

	case c.SuccessPattern != nil:
		record := &model.SuccessPattern{
			ID:                  id.New(),
			InsightID:           insight.ID,
			CommunityID:         insight.CommunityID,
			Title:               insight.Title,
			Pattern:             c.SuccessPattern.Pattern,
			ContributingFactors: c.SuccessPattern.ContributingFactors,
			Outcomes:            c.SuccessPattern.Outcomes,
			Replicability:       c.SuccessPattern.Replicability,
		}
		if err := d.targets.SuccessPatterns().Insert(ctx, record); err != nil {
			return fmt.Errorf("writing success pattern: %w", err)
		}
		d.logger.InfoContext(ctx, "dispatched success pattern", "insight_id", insight.ID, "pattern_id", record.ID)

	case c.HealthIndicator != nil:
		record := &model.HealthIndicator{
			ID:            id.New(),
			InsightID:     insight.ID,
			CommunityID:   insight.CommunityID,
			IndicatorType: c.HealthIndicator.IndicatorType,
			Value:         c.HealthIndicator.Value,
			Unit:          c.HealthIndicator.Unit,
			Direction:     c.HealthIndicator.Direction,
		}
		if err := d.targets.HealthIndicators().Upsert(ctx, record); err != nil {
			return fmt.Errorf("writing health indicator: %w", err)
		}
		d.logger.InfoContext(ctx, "dispatched health indicator", "insight_id", insight.ID, "indicator_id", record.ID)

	case c.Trend != nil:
		record := &model.Trend{
			ID:          id.New(),
			InsightID:   insight.ID,
			CommunityID: insight.CommunityID,
			Title:       insight.Title,
			TrendType:   c.Trend.TrendType,
			Direction:   c.Trend.Direction,
			Magnitude:   c.Trend.Magnitude,
			TimePeriod:  c.Trend.TimePeriod,
			Drivers:     c.Trend.Drivers,
		}
		if err := d.targets.Trends().Insert(ctx, record); err != nil {
			return fmt.Errorf("writing trend: %w", err)
		}
		d.logger.InfoContext(ctx, "dispatched trend", "insight_id", insight.ID, "trend_id", record.ID)

	default:
		return fmt.Errorf("%w: insight %d category %q", ErrNoTarget, insight.ID, insight.Category)
	}

	return nil
}
