package service

import (
	"sort"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
)

// expertiseTags maps an insight category to the expertise-area tags a
// reviewer must carry to qualify for its panel. A reviewer matches when the
// sets intersect.
var expertiseTags = map[model.InsightCategory][]string{
	model.CategoryNeed:            {"community_needs", "social_services", "wellbeing"},
	model.CategoryServiceGap:      {"service_delivery", "community_services", "policy"},
	model.CategorySuccessPattern:  {"program_evaluation", "community_development"},
	model.CategoryHealthIndicator: {"health", "public_health", "wellbeing"},
	model.CategoryTrend:           {"data_analysis", "community_development", "policy"},
}

// ExpertiseTags returns the tag set used to filter candidates for a category.
func ExpertiseTags(category model.InsightCategory) []string {
	return expertiseTags[category]
}

// selectionScore ranks a candidate by weighted accuracy, responsiveness and
// elder standing.
func selectionScore(r model.Reviewer, w policy.SelectionWeights) float64 {
	score := w.Accuracy*r.AccuracyRating + w.Responsiveness/(1+r.AvgTurnaroundDays)
	if r.Role == model.RoleElder {
		score += w.ElderBonus
	}
	return score
}

// SelectPanel returns up to PanelSize candidates ranked by selection score.
// Pure: candidates arrive pre-filtered (community, availability, expertise)
// and in insertion order, which breaks score ties so selection stays
// deterministic. An empty pool yields an empty panel, not an error.
func SelectPanel(candidates []model.Reviewer, p policy.Policy) []model.Reviewer {
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]model.Reviewer, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return selectionScore(ranked[i], p.Selection) > selectionScore(ranked[j], p.Selection)
	})

	if len(ranked) > p.PanelSize {
		ranked = ranked[:p.PanelSize]
	}
	return ranked
}
