// Package consensus turns a completed review panel into validation metrics
// and maps those metrics to a final decision. Both halves are pure: the
// tracker persists their output, nothing here touches a store.
package consensus

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
)

// ErrNoResponses is returned when aggregation is invoked on an empty panel.
// The tracker only calls Aggregate after confirming completion, so hitting
// this indicates a caller bug.
var ErrNoResponses = errors.New("no review responses to aggregate")

// maxRatingVariance is the population variance of the most polarized
// possible 1-5 rating split. Fixed normalization constant, not recomputed.
const maxRatingVariance = 4.0

// Aggregate computes the validation metrics for one insight's completed
// response set. Deterministic: the same responses in the same order yield
// an identical record (ComputedAt aside, which callers stamp via now).
func Aggregate(responses []model.ReviewResponse, p policy.Policy, now time.Time) (model.ValidationMetrics, error) {
	if len(responses) == 0 {
		return model.ValidationMetrics{}, ErrNoResponses
	}

	n := float64(len(responses))
	var accSum, relSum, compSum, cultSum float64
	overall := make([]float64, len(responses))
	tally := make(map[model.Recommendation]int, 4)

	for i, r := range responses {
		accSum += float64(r.AccuracyScore)
		relSum += float64(r.RelevanceScore)
		compSum += float64(r.CompletenessScore)
		cultSum += float64(r.CulturalScore)
		overall[i] = float64(r.OverallRating)
		tally[r.Recommendation]++
	}

	m := model.ValidationMetrics{
		TotalReviewers:   len(responses),
		CompletedReviews: len(responses),
		AccuracyAvg:      accSum / n,
		RelevanceAvg:     relSum / n,
		CompletenessAvg:  compSum / n,
		CulturalAvg:      cultSum / n,
		Recommendations:  tally,
		ComputedAt:       now,
	}

	// Overall score is the mean of the four criterion means, not the mean
	// of the self-reported overall ratings.
	m.OverallScore = (m.AccuracyAvg + m.RelevanceAvg + m.CompletenessAvg + m.CulturalAvg) / 4

	variance := populationVariance(overall)
	m.ConsensusLevel = 1 - variance/maxRatingVariance
	if m.ConsensusLevel < 0 {
		m.ConsensusLevel = 0
	}

	cultural := KeywordScreen(p.CulturalKeywords)
	m.CulturalCompliance = m.CulturalAvg >= p.Decision.CulturalComplianceScore &&
		!anyCulturalConcern(responses, cultural)

	m.CommonConcerns = sharedItems(responses, func(r model.ReviewResponse) []string { return r.Concerns }, p)
	m.CommonSuggestions = sharedItems(responses, func(r model.ReviewResponse) []string { return r.Suggestions }, p)

	return m, nil
}

func populationVariance(values []float64) float64 {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return sq / n
}

// anyCulturalConcern reports whether any response raises a concern that
// trips the cultural keyword screen. The screen is the same predicate the
// escalation gate uses; a concern that names ceremony, sacred knowledge,
// etc. blocks compliance even when scores are high.
func anyCulturalConcern(responses []model.ReviewResponse, isCultural func(string) bool) bool {
	for _, r := range responses {
		for _, c := range r.Concerns {
			if isCultural(c) {
				return true
			}
		}
	}
	return false
}

// KeywordScreen builds the cultural-content predicate: a lowercased
// substring scan over the keyword set. Deliberately crude; callers swap in
// a better classifier without touching control flow.
func KeywordScreen(keywords []string) func(string) bool {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return func(text string) bool {
		text = strings.ToLower(text)
		for _, k := range lowered {
			if k != "" && strings.Contains(text, k) {
				return true
			}
		}
		return false
	}
}

// sharedItems returns items mentioned by at least MinMentions distinct
// responses, ordered by descending frequency then first appearance, capped
// at MaxCommonItems. Matching is case-insensitive; the first-seen spelling
// is reported.
func sharedItems(responses []model.ReviewResponse, pick func(model.ReviewResponse) []string, p policy.Policy) []string {
	type entry struct {
		text  string
		count int
		order int
	}
	byKey := make(map[string]*entry)
	order := 0

	for _, r := range responses {
		seen := make(map[string]bool)
		for _, raw := range pick(r) {
			text := strings.TrimSpace(raw)
			if text == "" {
				continue
			}
			key := strings.ToLower(text)
			if seen[key] {
				continue // one mention per response
			}
			seen[key] = true
			if e, ok := byKey[key]; ok {
				e.count++
			} else {
				byKey[key] = &entry{text: text, count: 1, order: order}
				order++
			}
		}
	}

	shared := make([]*entry, 0, len(byKey))
	for _, e := range byKey {
		if e.count >= p.MinMentions {
			shared = append(shared, e)
		}
	}
	sort.SliceStable(shared, func(i, j int) bool {
		if shared[i].count != shared[j].count {
			return shared[i].count > shared[j].count
		}
		return shared[i].order < shared[j].order
	})

	if len(shared) > p.MaxCommonItems {
		shared = shared[:p.MaxCommonItems]
	}
	out := make([]string, len(shared))
	for i, e := range shared {
		out[i] = e.text
	}
	return out
}
