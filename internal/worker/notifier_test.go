package worker_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/worker"
)

var _ = Describe("WebhookNotifier", func() {
	var (
		ctx context.Context
		msg queue.Message
	)

	BeforeEach(func() {
		ctx = context.Background()
		assignmentID := int64(200)
		reviewerID := int64(10)
		msg = queue.Message{
			ID:           "1700000000-0",
			TaskType:     queue.TaskTypeReviewAssigned,
			InsightID:    100,
			AssignmentID: &assignmentID,
			ReviewerID:   &reviewerID,
		}
	})

	It("posts the notification payload as JSON", func() {
		var received worker.NotificationPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
			Expect(json.NewDecoder(r.Body).Decode(&received)).To(Succeed())
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		n := worker.NewWebhookNotifier(server.URL, 0)
		Expect(n.Deliver(ctx, msg)).To(Succeed())

		Expect(received.TaskType).To(Equal("review_assigned"))
		Expect(received.InsightID).To(Equal(int64(100)))
		Expect(*received.AssignmentID).To(Equal(int64(200)))
		Expect(*received.ReviewerID).To(Equal(int64(10)))
	})

	It("treats a non-2xx response as a delivery failure", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		n := worker.NewWebhookNotifier(server.URL, 0)
		Expect(n.Deliver(ctx, msg)).To(MatchError(ContainSubstring("502")))
	})

	It("fails when the sink is unreachable", func() {
		n := worker.NewWebhookNotifier("http://127.0.0.1:1", 0)
		Expect(n.Deliver(ctx, msg)).To(HaveOccurred())
	})
})
