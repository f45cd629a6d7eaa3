package queue_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/redis/go-redis/v9"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
)

var _ = Describe("ParseMessage", func() {
	message := func(values map[string]any) redis.XMessage {
		return redis.XMessage{ID: "1700000000-0", Values: values}
	}

	It("parses a review assignment notification", func() {
		msg, err := queue.ParseMessage(message(map[string]any{
			"task_type":     "review_assigned",
			"insight_id":    "100",
			"assignment_id": "200",
			"reviewer_id":   "10",
			"community_id":  "1",
			"trace_id":      "abc123",
		}))
		Expect(err).NotTo(HaveOccurred())

		Expect(msg.TaskType).To(Equal(queue.TaskTypeReviewAssigned))
		Expect(msg.InsightID).To(Equal(int64(100)))
		Expect(*msg.AssignmentID).To(Equal(int64(200)))
		Expect(*msg.ReviewerID).To(Equal(int64(10)))
		Expect(*msg.CommunityID).To(Equal(int64(1)))
		Expect(msg.TraceID).To(Equal("abc123"))
		Expect(msg.ID).To(Equal("1700000000-0"))
	})

	It("defaults a missing attempt to one", func() {
		msg, err := queue.ParseMessage(message(map[string]any{
			"task_type":  "insight_decided",
			"insight_id": "100",
			"status":     "validated",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(1))
	})

	It("carries an explicit attempt through", func() {
		msg, err := queue.ParseMessage(message(map[string]any{
			"task_type":  "insight_decided",
			"insight_id": "100",
			"status":     "validated",
			"attempt":    "3",
		}))
		Expect(err).NotTo(HaveOccurred())
		Expect(msg.Attempt).To(Equal(3))
	})

	It("rejects a missing task type", func() {
		_, err := queue.ParseMessage(message(map[string]any{"insight_id": "100"}))
		Expect(err).To(MatchError(ContainSubstring("task_type")))
	})

	It("rejects an unknown task type", func() {
		_, err := queue.ParseMessage(message(map[string]any{
			"task_type":  "carrier_pigeon",
			"insight_id": "100",
		}))
		Expect(err).To(MatchError(ContainSubstring("carrier_pigeon")))
	})

	It("rejects a missing insight id", func() {
		_, err := queue.ParseMessage(message(map[string]any{"task_type": "insight_decided", "status": "validated"}))
		Expect(err).To(MatchError(ContainSubstring("insight_id")))
	})

	It("rejects a non-numeric insight id", func() {
		_, err := queue.ParseMessage(message(map[string]any{
			"task_type":  "insight_decided",
			"insight_id": "one hundred",
			"status":     "validated",
		}))
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("per-type required fields",
		func(values map[string]any, fragment string) {
			_, err := queue.ParseMessage(message(values))
			Expect(err).To(MatchError(ContainSubstring(fragment)))
		},
		Entry("review_assigned without a reviewer",
			map[string]any{"task_type": "review_assigned", "insight_id": "1", "assignment_id": "2"},
			"reviewer_id"),
		Entry("deadline_reminder without an assignment",
			map[string]any{"task_type": "deadline_reminder", "insight_id": "1", "reviewer_id": "2"},
			"assignment_id"),
		Entry("insight_decided without a status",
			map[string]any{"task_type": "insight_decided", "insight_id": "1"},
			"status"),
		Entry("integration_failed without detail",
			map[string]any{"task_type": "integration_failed", "insight_id": "1"},
			"detail"),
	)
})
