package consensus_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/consensus"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
)

func response(acc, rel, comp, cult, overall int, rec model.Recommendation) model.ReviewResponse {
	return model.ReviewResponse{
		AccuracyScore:     acc,
		RelevanceScore:    rel,
		CompletenessScore: comp,
		CulturalScore:     cult,
		OverallRating:     overall,
		Recommendation:    rec,
		Confidence:        0.9,
	}
}

var _ = Describe("Aggregate", func() {
	var (
		pol policy.Policy
		now time.Time
	)

	BeforeEach(func() {
		pol = policy.Default()
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	It("rejects an empty response set", func() {
		_, err := consensus.Aggregate(nil, pol, now)
		Expect(err).To(MatchError(consensus.ErrNoResponses))
	})

	Context("with a unanimous high-scoring panel", func() {
		// Overall ratings [5,5,4], cultural all 5, other criteria all 4.
		var responses []model.ReviewResponse

		BeforeEach(func() {
			responses = []model.ReviewResponse{
				response(4, 4, 4, 5, 5, model.RecommendApprove),
				response(4, 4, 4, 5, 5, model.RecommendApprove),
				response(4, 4, 4, 5, 4, model.RecommendApprove),
			}
		})

		It("computes per-criterion means and the overall score as their mean", func() {
			m, err := consensus.Aggregate(responses, pol, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(m.AccuracyAvg).To(Equal(4.0))
			Expect(m.RelevanceAvg).To(Equal(4.0))
			Expect(m.CompletenessAvg).To(Equal(4.0))
			Expect(m.CulturalAvg).To(Equal(5.0))
			Expect(m.OverallScore).To(Equal(4.25))
		})

		It("derives consensus from the population variance of overall ratings", func() {
			m, err := consensus.Aggregate(responses, pol, now)
			Expect(err).NotTo(HaveOccurred())

			// popvar([5,5,4]) = 2/9; consensus = 1 - (2/9)/4
			Expect(m.ConsensusLevel).To(BeNumerically("~", 0.9444, 0.0001))
		})

		It("reports cultural compliance and tallies recommendations", func() {
			m, err := consensus.Aggregate(responses, pol, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(m.CulturalCompliance).To(BeTrue())
			Expect(m.Recommendations).To(Equal(map[model.Recommendation]int{
				model.RecommendApprove: 3,
			}))
			Expect(m.TotalReviewers).To(Equal(3))
			Expect(m.CompletedReviews).To(Equal(3))
			Expect(m.ComputedAt).To(Equal(now))
		})
	})

	Context("with a unanimous low-scoring panel", func() {
		It("produces a low overall score with full consensus", func() {
			responses := []model.ReviewResponse{
				response(2, 2, 2, 2, 2, model.RecommendReject),
				response(2, 2, 2, 2, 2, model.RecommendReject),
				response(2, 2, 2, 2, 1, model.RecommendReject),
			}

			m, err := consensus.Aggregate(responses, pol, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(m.OverallScore).To(Equal(2.0))
			Expect(m.CulturalCompliance).To(BeFalse())
			Expect(m.Recommendations[model.RecommendReject]).To(Equal(3))
		})
	})

	DescribeTable("uniform panels have full consensus and means equal to the score",
		func(k int) {
			responses := []model.ReviewResponse{
				response(k, k, k, k, k, model.RecommendApprove),
				response(k, k, k, k, k, model.RecommendApprove),
				response(k, k, k, k, k, model.RecommendApprove),
				response(k, k, k, k, k, model.RecommendApprove),
			}

			m, err := consensus.Aggregate(responses, pol, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(m.ConsensusLevel).To(Equal(1.0))
			Expect(m.AccuracyAvg).To(Equal(float64(k)))
			Expect(m.RelevanceAvg).To(Equal(float64(k)))
			Expect(m.CompletenessAvg).To(Equal(float64(k)))
			Expect(m.CulturalAvg).To(Equal(float64(k)))
			Expect(m.OverallScore).To(Equal(float64(k)))
		},
		Entry("all ones", 1),
		Entry("all twos", 2),
		Entry("all threes", 3),
		Entry("all fours", 4),
		Entry("all fives", 5),
	)

	It("is idempotent over the same response set", func() {
		responses := []model.ReviewResponse{
			response(4, 3, 5, 4, 4, model.RecommendApprove),
			response(3, 4, 4, 4, 3, model.RecommendApproveWithChanges),
			response(5, 4, 3, 5, 5, model.RecommendApprove),
		}

		first, err := consensus.Aggregate(responses, pol, now)
		Expect(err).NotTo(HaveOccurred())
		second, err := consensus.Aggregate(responses, pol, now)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
	})

	It("floors consensus at zero for maximally polarized ratings", func() {
		responses := []model.ReviewResponse{
			response(3, 3, 3, 3, 1, model.RecommendReject),
			response(3, 3, 3, 3, 5, model.RecommendApprove),
		}

		m, err := consensus.Aggregate(responses, pol, now)
		Expect(err).NotTo(HaveOccurred())

		// popvar([1,5]) = 4, the normalization ceiling
		Expect(m.ConsensusLevel).To(Equal(0.0))
	})

	Describe("cultural compliance", func() {
		It("is blocked by a concern matching the cultural keyword screen", func() {
			r1 := response(5, 5, 5, 5, 5, model.RecommendApprove)
			r1.Concerns = []string{"references a sacred site without permission"}
			responses := []model.ReviewResponse{
				r1,
				response(5, 5, 5, 5, 5, model.RecommendApprove),
				response(5, 5, 5, 5, 5, model.RecommendApprove),
			}

			m, err := consensus.Aggregate(responses, pol, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.CulturalCompliance).To(BeFalse())
		})

		It("ignores concerns that do not trip the screen", func() {
			r1 := response(5, 5, 5, 5, 5, model.RecommendApprove)
			r1.Concerns = []string{"sample size seems small"}
			responses := []model.ReviewResponse{
				r1,
				response(5, 5, 5, 5, 5, model.RecommendApprove),
			}

			m, err := consensus.Aggregate(responses, pol, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.CulturalCompliance).To(BeTrue())
		})
	})

	Describe("common concerns and suggestions", func() {
		It("keeps items mentioned by at least two responses, most frequent first", func() {
			r1 := response(4, 4, 4, 4, 4, model.RecommendApprove)
			r1.Concerns = []string{"outdated data", "small sample"}
			r1.Suggestions = []string{"add recent figures"}
			r2 := response(4, 4, 4, 4, 4, model.RecommendApprove)
			r2.Concerns = []string{"small sample", "outdated data"}
			r2.Suggestions = []string{"add recent figures"}
			r3 := response(4, 4, 4, 4, 4, model.RecommendApprove)
			r3.Concerns = []string{"small sample", "unclear wording"}

			m, err := consensus.Aggregate([]model.ReviewResponse{r1, r2, r3}, pol, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(m.CommonConcerns).To(Equal([]string{"small sample", "outdated data"}))
			Expect(m.CommonSuggestions).To(Equal([]string{"add recent figures"}))
		})

		It("deduplicates repeated mentions within one response", func() {
			r1 := response(4, 4, 4, 4, 4, model.RecommendApprove)
			r1.Concerns = []string{"Outdated data", "outdated data"}
			r2 := response(4, 4, 4, 4, 4, model.RecommendApprove)

			m, err := consensus.Aggregate([]model.ReviewResponse{r1, r2}, pol, now)
			Expect(err).NotTo(HaveOccurred())

			// One response mentioning an item twice is a single mention.
			Expect(m.CommonConcerns).To(BeEmpty())
		})

		It("caps each list at the policy maximum", func() {
			items := []string{"a", "b", "c", "d", "e", "f", "g"}
			r1 := response(4, 4, 4, 4, 4, model.RecommendApprove)
			r1.Concerns = items
			r2 := response(4, 4, 4, 4, 4, model.RecommendApprove)
			r2.Concerns = items

			m, err := consensus.Aggregate([]model.ReviewResponse{r1, r2}, pol, now)
			Expect(err).NotTo(HaveOccurred())

			Expect(m.CommonConcerns).To(HaveLen(pol.MaxCommonItems))
			Expect(m.CommonConcerns).To(Equal([]string{"a", "b", "c", "d", "e"}))
		})
	})
})

var _ = Describe("KeywordScreen", func() {
	It("matches case-insensitively on substrings", func() {
		screen := consensus.KeywordScreen([]string{"ceremony", "sacred"})
		Expect(screen("the Annual Ceremony grounds")).To(BeTrue())
		Expect(screen("SACRED knowledge")).To(BeTrue())
		Expect(screen("road maintenance backlog")).To(BeFalse())
	})

	It("ignores empty keywords", func() {
		screen := consensus.KeywordScreen([]string{""})
		Expect(screen("anything")).To(BeFalse())
	})
})
