package service

import (
	"strings"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/consensus"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
)

// ContentPredicate decides whether text carries culturally sensitive
// material. The default is the policy keyword screen; tests and future
// classifiers swap it without touching assignment flow.
type ContentPredicate func(text string) bool

// CulturalGate decides whether an insight needs the cultural review track.
type CulturalGate struct {
	isCultural ContentPredicate
}

func NewCulturalGate(p policy.Policy) *CulturalGate {
	return &CulturalGate{isCultural: consensus.KeywordScreen(p.CulturalKeywords)}
}

// NewCulturalGateWithPredicate builds a gate around a custom screen.
func NewCulturalGateWithPredicate(pred ContentPredicate) *CulturalGate {
	return &CulturalGate{isCultural: pred}
}

// RequiresReview screens the insight's full text: title, description and
// the flattened content payload.
func (g *CulturalGate) RequiresReview(insight *model.Insight) bool {
	text := strings.Join([]string{insight.Title, insight.Description, insight.Content.Text()}, " ")
	return g.isCultural(text)
}
