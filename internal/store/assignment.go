package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/model"
)

type assignmentStore struct {
	q db.Querier
}

const assignmentColumns = `id, insight_id, reviewer_id, criterion, status,
	assigned_at, deadline, completed_at, reminder_sent_at`

func (s *assignmentStore) Create(ctx context.Context, a *model.ReviewAssignment) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO review_assignments (
			id, insight_id, reviewer_id, criterion, status, deadline
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+assignmentColumns,
		a.ID, a.InsightID, a.ReviewerID, string(a.Criterion), string(a.Status), a.Deadline,
	)

	created, err := scanAssignment(row)
	if err != nil {
		return err
	}
	*a = *created
	return nil
}

func (s *assignmentStore) GetByID(ctx context.Context, id int64) (*model.ReviewAssignment, error) {
	row := s.q.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM review_assignments WHERE id = $1`, id)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *assignmentStore) ListByInsight(ctx context.Context, insightID int64) ([]model.ReviewAssignment, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+assignmentColumns+` FROM review_assignments
		WHERE insight_id = $1
		ORDER BY id`,
		insightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (s *assignmentStore) GetOpenByInsightAndReviewer(ctx context.Context, insightID, reviewerID int64) (*model.ReviewAssignment, error) {
	row := s.q.QueryRow(ctx, `
		SELECT `+assignmentColumns+` FROM review_assignments
		WHERE insight_id = $1 AND reviewer_id = $2 AND status <> 'completed'`,
		insightID, reviewerID)
	a, err := scanAssignment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *assignmentStore) MarkInProgress(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE review_assignments SET status = 'in_progress'
		WHERE id = $1 AND status = 'assigned'`,
		id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *assignmentStore) Complete(ctx context.Context, id int64, completedAt time.Time) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE review_assignments SET status = 'completed', completed_at = $2
		WHERE id = $1 AND status <> 'completed'`,
		id, completedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *assignmentStore) ListOverdue(ctx context.Context, asOf time.Time) ([]model.ReviewAssignment, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+assignmentColumns+` FROM review_assignments
		WHERE status <> 'completed'
		  AND deadline < $1
		  AND reminder_sent_at IS NULL
		ORDER BY deadline`,
		asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (s *assignmentStore) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	tag, err := s.q.Exec(ctx, `
		UPDATE review_assignments SET reminder_sent_at = $2 WHERE id = $1`,
		id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAssignment(row pgx.Row) (*model.ReviewAssignment, error) {
	var (
		a         model.ReviewAssignment
		criterion string
		status    string
	)
	err := row.Scan(
		&a.ID, &a.InsightID, &a.ReviewerID, &criterion, &status,
		&a.AssignedAt, &a.Deadline, &a.CompletedAt, &a.ReminderSentAt,
	)
	if err != nil {
		return nil, err
	}
	a.Criterion = model.ReviewCriterion(criterion)
	a.Status = model.AssignmentStatus(status)
	return &a, nil
}

func scanAssignments(rows pgx.Rows) ([]model.ReviewAssignment, error) {
	var assignments []model.ReviewAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}
