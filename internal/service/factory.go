package service

import (
	"log/slog"

	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/dispatch"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/policy"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/queue"
	"github.com/Acurioustractor/barkly-research-platform-sub000/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	queue    queue.Producer
	policy   policy.Policy
	logger   *slog.Logger
}

func NewServices(stores *store.Stores, txRunner TxRunner, producer queue.Producer, p policy.Policy, logger *slog.Logger) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		queue:    producer,
		policy:   p,
		logger:   logger,
	}
}

func (s *Services) Validation() ValidationService {
	return NewValidationService(
		s.stores,
		s.txRunner,
		NewCulturalGate(s.policy),
		dispatch.New(s.stores, s.logger),
		s.queue,
		s.policy,
		s.logger,
	)
}

func (s *Services) Directory() DirectoryService {
	return NewDirectoryService(s.stores.Reviewers(), s.logger)
}
