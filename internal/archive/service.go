package archive

import (
	"context"
	"time"
)

// RepositoryPort defines data access methods for archiving.
type RepositoryPort interface {
	Archive(ctx context.Context, cutoff *time.Time, batch time.Time) (int64, error)
	Batches(ctx context.Context) ([]Batch, error)
	Archived(ctx context.Context, batch time.Time) ([]Invoice, error)
}

// Service handles archive business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Run archives live invoices for the period and returns the batch and
// the number of moved headers. A run that matches nothing still
// registers its batch timestamp. Zero asOf means now.
func (s *Service) Run(ctx context.Context, period Period, asOf time.Time) (Batch, int64, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	// The batch tag has second precision in the store.
	asOf = asOf.Truncate(time.Second)

	cutoff, bounded, err := period.Cutoff(asOf)
	if err != nil {
		return Batch{}, 0, err
	}

	var cutoffArg *time.Time
	if bounded {
		cutoffArg = &cutoff
	}

	moved, err := s.repo.Archive(ctx, cutoffArg, asOf)
	if err != nil {
		return Batch{}, 0, err
	}
	return Batch{Timestamp: asOf}, moved, nil
}

// Batches returns all archive batches, most recent first.
func (s *Service) Batches(ctx context.Context) ([]Batch, error) {
	return s.repo.Batches(ctx)
}

// Archived returns the headers moved in one batch.
func (s *Service) Archived(ctx context.Context, batch time.Time) ([]Invoice, error) {
	return s.repo.Archived(ctx, batch)
}
