package invoicing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// RepositoryPort defines data access methods for invoices.
type RepositoryPort interface {
	Create(ctx context.Context, draft Draft, number string, createdAt time.Time) (*Invoice, error)
	Invoice(ctx context.Context, id int64) (*Invoice, error)
	Items(ctx context.Context, invoiceID int64) ([]LineItem, error)
	List(ctx context.Context, f Filter) ([]Invoice, error)
}

// Service handles invoice business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Commit validates the draft, generates an invoice number and persists
// the header plus all line items atomically. A number collision (two
// commits within the same second) is retried once with a random
// suffix; live invoice numbers are unique by constraint either way.
func (s *Service) Commit(ctx context.Context, draft Draft) (*Invoice, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, shared.NewValidation("customer name is required")
	}
	for _, item := range draft.Items {
		if item.Product == "" {
			return nil, shared.NewValidation("product name is required")
		}
		if item.Quantity <= 0 {
			return nil, shared.NewValidation("quantity must be a positive integer")
		}
		if !item.Price.IsPositive() {
			return nil, shared.NewValidation("price must be a positive number")
		}
	}

	now := time.Now()
	if draft.InvoiceDate.IsZero() {
		draft.InvoiceDate = now
	}

	number := fmt.Sprintf("INV-%d", now.Unix())
	inv, err := s.repo.Create(ctx, draft, number, now)
	if errors.Is(err, ErrDuplicateNumber) {
		number = fmt.Sprintf("%s-%s", number, uuid.NewString()[:4])
		inv, err = s.repo.Create(ctx, draft, number, now)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Invoice returns one header by identifier.
func (s *Service) Invoice(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.Invoice(ctx, id)
}

// Items returns the line items of one invoice.
func (s *Service) Items(ctx context.Context, id int64) ([]LineItem, error) {
	return s.repo.Items(ctx, id)
}

// List returns live invoices matching the filter.
func (s *Service) List(ctx context.Context, f Filter) ([]Invoice, error) {
	return s.repo.List(ctx, f)
}
