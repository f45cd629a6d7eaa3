package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/worker"
)

type mockAssignmentStore struct {
	store.AssignmentStore

	listOverdueFn      func(ctx context.Context, asOf time.Time) ([]model.ReviewAssignment, error)
	markReminderSentFn func(ctx context.Context, id int64, at time.Time) error
}

func (m *mockAssignmentStore) ListOverdue(ctx context.Context, asOf time.Time) ([]model.ReviewAssignment, error) {
	if m.listOverdueFn != nil {
		return m.listOverdueFn(ctx, asOf)
	}
	return nil, nil
}

func (m *mockAssignmentStore) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	if m.markReminderSentFn != nil {
		return m.markReminderSentFn(ctx, id, at)
	}
	return nil
}

type mockProducer struct {
	enqueueFn func(ctx context.Context, n queue.Notification) error
	enqueued  []queue.Notification
}

func (m *mockProducer) Enqueue(ctx context.Context, n queue.Notification) error {
	m.enqueued = append(m.enqueued, n)
	if m.enqueueFn != nil {
		return m.enqueueFn(ctx, n)
	}
	return nil
}

func (m *mockProducer) Close() error { return nil }

var _ = Describe("ReminderScanner", func() {
	var (
		ctx         context.Context
		assignments *mockAssignmentStore
		producer    *mockProducer
		scanner     *worker.ReminderScanner
		now         time.Time
	)

	overdue := func(id, insightID, reviewerID int64) model.ReviewAssignment {
		return model.ReviewAssignment{
			ID:         id,
			InsightID:  insightID,
			ReviewerID: reviewerID,
			Status:     model.AssignmentAssigned,
			Deadline:   now.Add(-24 * time.Hour),
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		assignments = &mockAssignmentStore{}
		producer = &mockProducer{}
		scanner = worker.NewReminderScanner(assignments, producer, worker.ReminderConfig{})
		now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	It("does nothing when nothing is overdue", func() {
		Expect(scanner.ScanOnce(ctx, now)).To(Succeed())
		Expect(producer.enqueued).To(BeEmpty())
	})

	It("enqueues one reminder per overdue assignment and stamps it", func() {
		assignments.listOverdueFn = func(_ context.Context, asOf time.Time) ([]model.ReviewAssignment, error) {
			Expect(asOf).To(Equal(now))
			return []model.ReviewAssignment{overdue(200, 100, 10), overdue(201, 101, 11)}, nil
		}
		var stamped []int64
		assignments.markReminderSentFn = func(_ context.Context, id int64, at time.Time) error {
			Expect(at).To(Equal(now))
			stamped = append(stamped, id)
			return nil
		}

		Expect(scanner.ScanOnce(ctx, now)).To(Succeed())

		Expect(producer.enqueued).To(HaveLen(2))
		Expect(producer.enqueued[0].TaskType).To(Equal(queue.TaskTypeDeadlineReminder))
		Expect(producer.enqueued[0].InsightID).To(Equal(int64(100)))
		Expect(*producer.enqueued[0].AssignmentID).To(Equal(int64(200)))
		Expect(*producer.enqueued[0].ReviewerID).To(Equal(int64(10)))
		Expect(stamped).To(Equal([]int64{200, 201}))
	})

	It("skips the stamp when the enqueue fails, so the next scan retries", func() {
		assignments.listOverdueFn = func(_ context.Context, _ time.Time) ([]model.ReviewAssignment, error) {
			return []model.ReviewAssignment{overdue(200, 100, 10), overdue(201, 101, 11)}, nil
		}
		producer.enqueueFn = func(_ context.Context, n queue.Notification) error {
			if *n.AssignmentID == 200 {
				return errors.New("stream unavailable")
			}
			return nil
		}
		var stamped []int64
		assignments.markReminderSentFn = func(_ context.Context, id int64, _ time.Time) error {
			stamped = append(stamped, id)
			return nil
		}

		Expect(scanner.ScanOnce(ctx, now)).To(Succeed())
		Expect(stamped).To(Equal([]int64{201}))
	})

	It("propagates a listing failure", func() {
		assignments.listOverdueFn = func(_ context.Context, _ time.Time) ([]model.ReviewAssignment, error) {
			return nil, errors.New("db down")
		}
		Expect(scanner.ScanOnce(ctx, now)).To(MatchError(ContainSubstring("db down")))
	})
})
