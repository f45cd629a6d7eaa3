package model

import "time"

// ValidationMetrics is the computed aggregate for one insight's completed
// panel. Recomputation from the same response set is idempotent; the latest
// record overwrites any prior one.
type ValidationMetrics struct {
	InsightID        int64 `json:"insight_id"`
	TotalReviewers   int   `json:"total_reviewers"`
	CompletedReviews int   `json:"completed_reviews"`

	AccuracyAvg     float64 `json:"accuracy_avg"`
	RelevanceAvg    float64 `json:"relevance_avg"`
	CompletenessAvg float64 `json:"completeness_avg"`
	CulturalAvg     float64 `json:"cultural_avg"`

	// OverallScore is the mean of the four per-criterion means.
	OverallScore float64 `json:"overall_score"`

	// ConsensusLevel is 1 - popvar(overall ratings)/4, floored at 0.
	// Higher means more agreement.
	ConsensusLevel float64 `json:"consensus_level"`

	CulturalCompliance bool `json:"cultural_compliance"`

	Recommendations map[Recommendation]int `json:"recommendations"`

	// Items mentioned by at least two reviewers, most frequent first,
	// capped at five each.
	CommonConcerns    []string `json:"common_concerns,omitempty"`
	CommonSuggestions []string `json:"common_suggestions,omitempty"`

	ComputedAt time.Time `json:"computed_at"`
}
