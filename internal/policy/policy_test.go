package policy_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
)

var _ = Describe("Policy", func() {
	Describe("Default", func() {
		It("carries the production selection weights and thresholds", func() {
			p := policy.Default()

			Expect(p.PanelSize).To(Equal(3))
			Expect(p.StandardReviewDays).To(Equal(7))
			Expect(p.CulturalReviewDays).To(Equal(5))
			Expect(p.Selection.Accuracy).To(Equal(0.5))
			Expect(p.Selection.Responsiveness).To(Equal(0.3))
			Expect(p.Selection.ElderBonus).To(Equal(0.2))
			Expect(p.Decision.ValidateScore).To(Equal(4.0))
			Expect(p.Decision.ValidateConsensus).To(Equal(0.7))
			Expect(p.Decision.ReviseScore).To(Equal(3.0))
			Expect(p.CulturalKeywords).To(ContainElements("sacred", "ceremony", "elder"))
		})
	})

	Describe("Load", func() {
		It("returns the defaults for an empty path", func() {
			p, err := policy.Load("")
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(policy.Default()))
		})

		It("overlays only the fields present in the file", func() {
			path := writePolicyFile(`
panel_size: 5
decision:
  validate_score: 4.5
cultural_keywords: ["songline"]
`)

			p, err := policy.Load(path)
			Expect(err).NotTo(HaveOccurred())

			Expect(p.PanelSize).To(Equal(5))
			Expect(p.Decision.ValidateScore).To(Equal(4.5))
			Expect(p.CulturalKeywords).To(Equal([]string{"songline"}))
			// untouched fields keep their defaults
			Expect(p.StandardReviewDays).To(Equal(7))
			Expect(p.Selection.Accuracy).To(Equal(0.5))
		})

		It("rejects a missing file", func() {
			_, err := policy.Load(filepath.Join(GinkgoT().TempDir(), "absent.yaml"))
			Expect(err).To(HaveOccurred())
		})

		It("rejects malformed yaml", func() {
			path := writePolicyFile("panel_size: [not an int")
			_, err := policy.Load(path)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a zero panel size", func() {
			path := writePolicyFile("panel_size: 0")
			_, err := policy.Load(path)
			Expect(err).To(MatchError(ContainSubstring("panel_size")))
		})

		It("rejects sub-day review windows", func() {
			path := writePolicyFile("cultural_review_days: 0")
			_, err := policy.Load(path)
			Expect(err).To(MatchError(ContainSubstring("review windows")))
		})
	})
})

func writePolicyFile(content string) string {
	path := filepath.Join(GinkgoT().TempDir(), "policy.yaml")
	Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())
	return path
}
