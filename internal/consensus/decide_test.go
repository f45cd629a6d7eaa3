package consensus_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/consensus"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
)

var _ = Describe("Decide", func() {
	var pol policy.Policy

	BeforeEach(func() {
		pol = policy.Default()
	})

	metrics := func(overall, cons, cultural float64, recs map[model.Recommendation]int, compliant bool) model.ValidationMetrics {
		return model.ValidationMetrics{
			OverallScore:       overall,
			ConsensusLevel:     cons,
			CulturalAvg:        cultural,
			CulturalCompliance: compliant,
			Recommendations:    recs,
		}
	}

	It("validates a high-scoring high-consensus panel with majority approval", func() {
		m := metrics(4.25, 0.94, 5.0, map[model.Recommendation]int{model.RecommendApprove: 3}, true)
		d := consensus.Decide(m, pol)
		Expect(d.Status).To(Equal(model.ValidationValidated))
		Expect(d.Cultural).To(Equal(model.CulturalApproved))
	})

	It("rejects a low-scoring panel regardless of consensus", func() {
		m := metrics(2.0, 1.0, 2.0, map[model.Recommendation]int{model.RecommendReject: 3}, false)
		d := consensus.Decide(m, pol)
		Expect(d.Status).To(Equal(model.ValidationRejected))
		Expect(d.Cultural).To(Equal(model.CulturalRejected))
	})

	It("requires revision for a middling score", func() {
		m := metrics(3.4, 0.9, 3.4, map[model.Recommendation]int{model.RecommendApproveWithChanges: 3}, false)
		d := consensus.Decide(m, pol)
		Expect(d.Status).To(Equal(model.ValidationNeedsRevision))
	})

	It("requires revision above the validate floor when consensus is too low", func() {
		m := metrics(4.2, 0.5, 4.0, map[model.Recommendation]int{model.RecommendApprove: 2, model.RecommendReject: 1}, true)
		d := consensus.Decide(m, pol)
		Expect(d.Status).To(Equal(model.ValidationNeedsRevision))
	})

	Context("when score and consensus clear the validate bar", func() {
		It("validates when approvals tie rejections", func() {
			m := metrics(4.0, 0.8, 4.5, map[model.Recommendation]int{
				model.RecommendApprove: 1,
				model.RecommendReject:  1,
			}, true)
			Expect(consensus.Decide(m, pol).Status).To(Equal(model.ValidationValidated))
		})

		It("requires revision when rejections lead but someone wants changes", func() {
			m := metrics(4.0, 0.8, 4.5, map[model.Recommendation]int{
				model.RecommendReject:             2,
				model.RecommendApprove:            1,
				model.RecommendApproveWithChanges: 1,
			}, true)
			Expect(consensus.Decide(m, pol).Status).To(Equal(model.ValidationNeedsRevision))
		})

		It("rejects when rejections lead and nobody wants changes", func() {
			m := metrics(4.0, 0.8, 4.5, map[model.Recommendation]int{
				model.RecommendReject:  2,
				model.RecommendApprove: 1,
			}, true)
			Expect(consensus.Decide(m, pol).Status).To(Equal(model.ValidationRejected))
		})
	})

	Describe("cultural verdict", func() {
		It("approves only with compliance and a high cultural average", func() {
			m := metrics(4.5, 0.9, 4.0, map[model.Recommendation]int{model.RecommendApprove: 3}, true)
			Expect(consensus.Decide(m, pol).Cultural).To(Equal(model.CulturalApproved))
		})

		It("flags concerns when compliance failed but the average holds", func() {
			m := metrics(4.5, 0.9, 4.5, map[model.Recommendation]int{model.RecommendApprove: 3}, false)
			Expect(consensus.Decide(m, pol).Cultural).To(Equal(model.CulturalConcerns))
		})

		It("flags concerns for a middling cultural average", func() {
			m := metrics(4.5, 0.9, 3.2, map[model.Recommendation]int{model.RecommendApprove: 3}, false)
			Expect(consensus.Decide(m, pol).Cultural).To(Equal(model.CulturalConcerns))
		})

		It("rejects below the concerns floor", func() {
			m := metrics(4.5, 0.9, 2.5, map[model.Recommendation]int{model.RecommendApprove: 3}, false)
			Expect(consensus.Decide(m, pol).Cultural).To(Equal(model.CulturalRejected))
		})

		It("never implies cultural approval from a validated status", func() {
			m := metrics(4.5, 0.9, 3.0, map[model.Recommendation]int{model.RecommendApprove: 3}, false)
			d := consensus.Decide(m, pol)
			Expect(d.Status).To(Equal(model.ValidationValidated))
			Expect(d.Cultural).To(Equal(model.CulturalConcerns))
		})
	})

	It("is deterministic for identical inputs", func() {
		m := metrics(3.7, 0.66, 3.9, map[model.Recommendation]int{
			model.RecommendApprove:            1,
			model.RecommendApproveWithChanges: 2,
		}, false)

		first := consensus.Decide(m, pol)
		for i := 0; i < 10; i++ {
			Expect(consensus.Decide(m, pol)).To(Equal(first))
		}
	})
})
