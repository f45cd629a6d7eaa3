// Package policy holds the tunable constants of the validation engine:
// reviewer-selection weights, decision thresholds, deadline windows, and
// the cultural keyword screen. The compiled-in defaults are the production
// values; a YAML file can override any subset without touching the
// selection or decision logic.
package policy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SelectionWeights struct {
	// Accuracy weights the reviewer's historical accuracy rating.
	Accuracy float64 `yaml:"accuracy"`
	// Responsiveness weights 1/(1+avgTurnaroundDays).
	Responsiveness float64 `yaml:"responsiveness"`
	// ElderBonus is added in full for elders, not at all otherwise.
	ElderBonus float64 `yaml:"elder_bonus"`
}

type DecisionThresholds struct {
	ValidateScore     float64 `yaml:"validate_score"`     // overall score floor for the validated branch
	ValidateConsensus float64 `yaml:"validate_consensus"` // consensus floor for the validated branch
	ReviseScore       float64 `yaml:"revise_score"`       // overall score floor for needs_revision

	CulturalComplianceScore float64 `yaml:"cultural_compliance_score"` // avg cultural floor for compliance
	CulturalApproveScore    float64 `yaml:"cultural_approve_score"`    // avg cultural floor for approved
	CulturalConcernsScore   float64 `yaml:"cultural_concerns_score"`   // avg cultural floor for concerns
}

type Policy struct {
	// PanelSize bounds the standard review panel. Panels may come up
	// smaller, down to zero, when few reviewers qualify.
	PanelSize int `yaml:"panel_size"`

	StandardReviewDays int `yaml:"standard_review_days"`
	// Cultural review runs on a shorter window because cultural concerns
	// block downstream release.
	CulturalReviewDays int `yaml:"cultural_review_days"`

	Selection SelectionWeights   `yaml:"selection"`
	Decision  DecisionThresholds `yaml:"decision"`

	// CulturalKeywords drives the escalation screen. A plain substring
	// match: false positives and negatives are acceptable, human review is
	// the real filter.
	CulturalKeywords []string `yaml:"cultural_keywords"`

	// Aggregation of shared concerns/suggestions.
	MinMentions    int `yaml:"min_mentions"`
	MaxCommonItems int `yaml:"max_common_items"`
}

func Default() Policy {
	return Policy{
		PanelSize:          3,
		StandardReviewDays: 7,
		CulturalReviewDays: 5,
		Selection: SelectionWeights{
			Accuracy:       0.5,
			Responsiveness: 0.3,
			ElderBonus:     0.2,
		},
		Decision: DecisionThresholds{
			ValidateScore:           4.0,
			ValidateConsensus:       0.7,
			ReviseScore:             3.0,
			CulturalComplianceScore: 3.5,
			CulturalApproveScore:    4.0,
			CulturalConcernsScore:   3.0,
		},
		CulturalKeywords: []string{
			"traditional", "ceremony", "sacred", "elder", "spiritual",
			"cultural", "indigenous", "ancestral", "ritual", "medicine",
		},
		MinMentions:    2,
		MaxCommonItems: 5,
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults unchanged.
func Load(path string) (Policy, error) {
	p := Default()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Policy{}, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	if err := p.validate(); err != nil {
		return Policy{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

func (p Policy) validate() error {
	if p.PanelSize < 1 {
		return fmt.Errorf("panel_size must be at least 1")
	}
	if p.StandardReviewDays < 1 || p.CulturalReviewDays < 1 {
		return fmt.Errorf("review windows must be at least one day")
	}
	if p.MinMentions < 1 {
		return fmt.Errorf("min_mentions must be at least 1")
	}
	return nil
}
