package service_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/service"
)

var _ = Describe("CulturalGate", func() {
	var gate *service.CulturalGate

	BeforeEach(func() {
		gate = service.NewCulturalGate(policy.Default())
	})

	insight := func(title, description string, content model.Content) *model.Insight {
		return &model.Insight{
			CommunityID: 1,
			Title:       title,
			Description: description,
			Content:     content,
		}
	}

	need := func(evidence string) model.Content {
		return model.Content{Need: &model.NeedContent{NeedType: "housing", Evidence: evidence}}
	}

	It("escalates on a keyword in the title", func() {
		Expect(gate.RequiresReview(insight("Sacred site access", "", need("")))).To(BeTrue())
	})

	It("escalates on a keyword in the description", func() {
		Expect(gate.RequiresReview(insight("Housing shortage", "raised during ceremony planning", need("")))).To(BeTrue())
	})

	It("escalates on a keyword inside the content payload", func() {
		Expect(gate.RequiresReview(insight("Housing shortage", "", need("elders raised overcrowding")))).To(BeTrue())
	})

	It("passes culturally neutral insights through", func() {
		Expect(gate.RequiresReview(insight("Housing shortage", "waitlist keeps growing", need("waitlist data")))).To(BeFalse())
	})

	It("honours a custom predicate", func() {
		gate = service.NewCulturalGateWithPredicate(func(string) bool { return true })
		Expect(gate.RequiresReview(insight("anything", "", need("")))).To(BeTrue())
	})
})
