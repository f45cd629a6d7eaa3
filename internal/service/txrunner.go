package service

import (
	"context"

	"github.com/Acurioustractor/barkly-research-platform-sub000/core/db"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
)

// StoreProvider exposes only the stores needed by a transactional operation.
type StoreProvider interface {
	Insights() store.InsightStore
	Reviewers() store.ReviewerStore
	Assignments() store.AssignmentStore
	Responses() store.ResponseStore
	Metrics() store.MetricsStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q db.Querier) error {
		stores := store.NewStores(q)
		return fn(stores)
	})
}
