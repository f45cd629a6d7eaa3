package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

var _ = Describe("ReviewResponse", func() {
	var resp model.ReviewResponse

	BeforeEach(func() {
		resp = model.ReviewResponse{
			AccuracyScore:     4,
			RelevanceScore:    4,
			CompletenessScore: 3,
			CulturalScore:     5,
			OverallRating:     4,
			Recommendation:    model.RecommendApprove,
			Confidence:        0.8,
		}
	})

	It("accepts a well-formed response", func() {
		Expect(resp.Validate()).To(Succeed())
	})

	It("rejects an out-of-range score and names the field", func() {
		resp.AccuracyScore = 6
		err := resp.Validate()
		Expect(err).To(MatchError(model.ErrInvalidResponse))
		Expect(err.Error()).To(ContainSubstring("accuracy_score"))
	})

	It("rejects a zero score", func() {
		resp.OverallRating = 0
		Expect(resp.Validate()).To(MatchError(model.ErrInvalidResponse))
	})

	It("rejects confidence outside [0,1]", func() {
		resp.Confidence = 1.2
		Expect(resp.Validate()).To(MatchError(model.ErrInvalidResponse))
	})

	It("rejects an unknown recommendation", func() {
		resp.Recommendation = "maybe"
		err := resp.Validate()
		Expect(err).To(MatchError(model.ErrInvalidResponse))
		Expect(err.Error()).To(ContainSubstring("recommendation"))
	})
})

var _ = Describe("Recommendation", func() {
	DescribeTable("Valid",
		func(r model.Recommendation, want bool) {
			Expect(r.Valid()).To(Equal(want))
		},
		Entry("approve", model.RecommendApprove, true),
		Entry("approve_with_changes", model.RecommendApproveWithChanges, true),
		Entry("reject", model.RecommendReject, true),
		Entry("needs_more_review", model.RecommendNeedsMoreReview, true),
		Entry("empty", model.Recommendation(""), false),
		Entry("unknown", model.Recommendation("defer"), false),
	)
})
