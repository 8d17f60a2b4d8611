package org

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// RepositoryPort defines data access methods for organization profiles.
type RepositoryPort interface {
	Insert(ctx context.Context, p Profile) (*Profile, error)
	Current(ctx context.Context) (*Profile, error)
}

// Service handles organization profile business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// SaveProfile appends a new profile row stamped with the current time,
// making it the profile in effect. The staged logo travels with the draft.
func (s *Service) SaveProfile(ctx context.Context, draft *Draft) (*Profile, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, shared.NewValidation("organization name is required")
	}
	return s.repo.Insert(ctx, Profile{
		Name:      draft.Name,
		GSTNumber: draft.GSTNumber,
		TINNumber: draft.TINNumber,
		Address:   draft.Address,
		Email:     draft.Email,
		Contact:   draft.Contact,
		Logo:      draft.Logo(),
		CreatedAt: time.Now(),
	})
}

// CurrentProfile returns the profile in effect.
func (s *Service) CurrentProfile(ctx context.Context) (*Profile, error) {
	return s.repo.Current(ctx)
}
