package model_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

var _ = Describe("Content", func() {
	Describe("Category", func() {
		It("reports the populated arm", func() {
			c := model.Content{ServiceGap: &model.ServiceGapContent{Service: "dialysis"}}
			cat, ok := c.Category()
			Expect(ok).To(BeTrue())
			Expect(cat).To(Equal(model.CategoryServiceGap))
		})

		It("fails on an empty union", func() {
			_, ok := model.Content{}.Category()
			Expect(ok).To(BeFalse())
		})

		It("fails when multiple arms are set", func() {
			c := model.Content{
				Need:  &model.NeedContent{NeedType: "housing"},
				Trend: &model.TrendContent{TrendType: "attendance", Direction: "up"},
			}
			_, ok := c.Category()
			Expect(ok).To(BeFalse())
		})
	})

	Describe("Text", func() {
		It("flattens the free-text fields of the populated arm", func() {
			c := model.Content{Need: &model.NeedContent{
				NeedType:       "housing",
				Urgency:        "high",
				AffectedGroups: []string{"young families"},
				Evidence:       "waitlist doubled",
			}}
			Expect(c.Text()).To(Equal("housing high waitlist doubled young families"))
		})

		It("is empty for an empty union", func() {
			Expect(model.Content{}.Text()).To(BeEmpty())
		})
	})
})
