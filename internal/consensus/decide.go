package consensus

import (
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
)

// Decision is the pair of verdicts derived from one metrics record. The
// two are computed independently: a validated status never implies
// cultural approval, and the dispatcher checks both before promoting.
type Decision struct {
	Status   model.ValidationStatus
	Cultural model.CulturalStatus
}

// Decide maps validation metrics to the insight's final validation status
// and cultural-appropriateness verdict. Pure and deterministic.
func Decide(m model.ValidationMetrics, p policy.Policy) Decision {
	return Decision{
		Status:   validationStatus(m, p.Decision),
		Cultural: culturalVerdict(m, p.Decision),
	}
}

func validationStatus(m model.ValidationMetrics, t policy.DecisionThresholds) model.ValidationStatus {
	if m.OverallScore >= t.ValidateScore && m.ConsensusLevel >= t.ValidateConsensus {
		approvals := m.Recommendations[model.RecommendApprove]
		rejections := m.Recommendations[model.RecommendReject]
		switch {
		case approvals >= rejections:
			return model.ValidationValidated
		case m.Recommendations[model.RecommendApproveWithChanges] > 0:
			return model.ValidationNeedsRevision
		default:
			return model.ValidationRejected
		}
	}
	if m.OverallScore >= t.ReviseScore {
		return model.ValidationNeedsRevision
	}
	return model.ValidationRejected
}

func culturalVerdict(m model.ValidationMetrics, t policy.DecisionThresholds) model.CulturalStatus {
	if m.CulturalCompliance && m.CulturalAvg >= t.CulturalApproveScore {
		return model.CulturalApproved
	}
	if m.CulturalAvg >= t.CulturalConcernsScore {
		return model.CulturalConcerns
	}
	return model.CulturalRejected
}
