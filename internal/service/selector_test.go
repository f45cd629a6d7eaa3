package service_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/service"
)

var _ = Describe("SelectPanel", func() {
	var pol policy.Policy

	BeforeEach(func() {
		pol = policy.Default()
	})

	reviewer := func(id int64, accuracy, turnaround float64, role model.CulturalRole) model.Reviewer {
		return model.Reviewer{
			ID:                id,
			CommunityID:       1,
			Name:              "reviewer",
			Role:              role,
			Available:         true,
			AccuracyRating:    accuracy,
			AvgTurnaroundDays: turnaround,
		}
	}

	It("returns an empty panel for an empty pool", func() {
		Expect(service.SelectPanel(nil, pol)).To(BeEmpty())
	})

	It("ranks by accuracy when responsiveness and role are equal", func() {
		candidates := []model.Reviewer{
			reviewer(1, 0.5, 2, model.RoleMember),
			reviewer(2, 0.9, 2, model.RoleMember),
			reviewer(3, 0.7, 2, model.RoleMember),
		}

		panel := service.SelectPanel(candidates, pol)
		Expect(panelIDs(panel)).To(Equal([]int64{2, 3, 1}))
	})

	It("rewards faster turnaround", func() {
		candidates := []model.Reviewer{
			reviewer(1, 0.8, 9, model.RoleMember), // 0.4 + 0.3/10 = 0.43
			reviewer(2, 0.8, 0, model.RoleMember), // 0.4 + 0.3/1  = 0.70
		}

		panel := service.SelectPanel(candidates, pol)
		Expect(panelIDs(panel)).To(Equal([]int64{2, 1}))
	})

	It("grants the elder bonus to elders only", func() {
		candidates := []model.Reviewer{
			reviewer(1, 0.8, 2, model.RoleCulturalAuthority), // 0.4 + 0.1 = 0.5
			reviewer(2, 0.8, 2, model.RoleElder),             // 0.5 + bonus = 0.7
			reviewer(3, 0.8, 2, model.RoleMember),            // 0.5
		}

		panel := service.SelectPanel(candidates, pol)
		Expect(panel[0].ID).To(Equal(int64(2)))
	})

	It("breaks score ties by insertion order", func() {
		candidates := []model.Reviewer{
			reviewer(7, 0.6, 3, model.RoleMember),
			reviewer(3, 0.6, 3, model.RoleMember),
			reviewer(9, 0.6, 3, model.RoleMember),
		}

		panel := service.SelectPanel(candidates, pol)
		Expect(panelIDs(panel)).To(Equal([]int64{7, 3, 9}))
	})

	It("truncates to the configured panel size", func() {
		var candidates []model.Reviewer
		for i := int64(1); i <= 6; i++ {
			candidates = append(candidates, reviewer(i, 0.5, 2, model.RoleMember))
		}

		panel := service.SelectPanel(candidates, pol)
		Expect(panel).To(HaveLen(pol.PanelSize))
	})

	It("returns fewer than the panel size when the pool is short", func() {
		candidates := []model.Reviewer{reviewer(1, 0.5, 2, model.RoleMember)}
		Expect(service.SelectPanel(candidates, pol)).To(HaveLen(1))
	})

	It("does not reorder the caller's slice", func() {
		candidates := []model.Reviewer{
			reviewer(1, 0.2, 2, model.RoleMember),
			reviewer(2, 0.9, 2, model.RoleMember),
		}

		service.SelectPanel(candidates, pol)
		Expect(panelIDs(candidates)).To(Equal([]int64{1, 2}))
	})
})

var _ = Describe("ExpertiseTags", func() {
	It("maps every category to a non-empty tag set", func() {
		for _, cat := range model.Categories {
			Expect(service.ExpertiseTags(cat)).NotTo(BeEmpty(), string(cat))
		}
	})

	It("keys panels for health indicators to health expertise", func() {
		Expect(service.ExpertiseTags(model.CategoryHealthIndicator)).To(ContainElement("health"))
	})
})

func panelIDs(panel []model.Reviewer) []int64 {
	ids := make([]int64, len(panel))
	for i, r := range panel {
		ids[i] = r.ID
	}
	return ids
}
