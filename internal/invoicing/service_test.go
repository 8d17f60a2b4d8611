package invoicing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

type memoryInvoiceRepo struct {
	invoices map[int64]*Invoice
	items    map[int64][]LineItem
	numbers  map[string]bool
	nextID   int64

	// when > 0, Create fails with ErrDuplicateNumber this many times.
	collisions int
}

func newMemoryInvoiceRepo() *memoryInvoiceRepo {
	return &memoryInvoiceRepo{
		invoices: make(map[int64]*Invoice),
		items:    make(map[int64][]LineItem),
		numbers:  make(map[string]bool),
	}
}

func (r *memoryInvoiceRepo) Create(ctx context.Context, draft Draft, number string, createdAt time.Time) (*Invoice, error) {
	if r.collisions > 0 {
		r.collisions--
		return nil, ErrDuplicateNumber
	}
	if r.numbers[number] {
		return nil, ErrDuplicateNumber
	}
	r.nextID++
	total := decimal.Zero
	for _, item := range draft.Items {
		r.items[r.nextID] = append(r.items[r.nextID], LineItem{
			ID:        int64(len(r.items[r.nextID]) + 1),
			InvoiceID: r.nextID,
			Product:   item.Product,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
		total = total.Add(item.Subtotal())
	}
	inv := &Invoice{
		ID:          r.nextID,
		Number:      number,
		Customer:    draft.Customer,
		Email:       draft.Email,
		Contact:     draft.Contact,
		Total:       total,
		InvoiceDate: draft.InvoiceDate,
		CreatedAt:   createdAt,
	}
	r.invoices[inv.ID] = inv
	r.numbers[number] = true
	return inv, nil
}

func (r *memoryInvoiceRepo) Invoice(ctx context.Context, id int64) (*Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, shared.NewNotFound("invoice %d", id)
	}
	return inv, nil
}

func (r *memoryInvoiceRepo) Items(ctx context.Context, invoiceID int64) ([]LineItem, error) {
	return r.items[invoiceID], nil
}

func (r *memoryInvoiceRepo) List(ctx context.Context, f Filter) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range r.invoices {
		if f.Customer != "" && !strings.Contains(inv.Customer, f.Customer) {
			continue
		}
		if f.Number != "" && !strings.Contains(inv.Number, f.Number) {
			continue
		}
		if f.Total != nil && !inv.Total.Equal(*f.Total) {
			continue
		}
		out = append(out, *inv)
	}
	return out, nil
}

func TestCommitComputesStoredTotal(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)

	inv, err := svc.Commit(context.Background(), Draft{
		Customer: "Alice",
		Items: []PendingItem{
			{Product: "Pen", Quantity: 2, Price: dec("10.0")},
			{Product: "Book", Quantity: 1, Price: dec("50.0")},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "70.00", inv.Total.StringFixed(2))
	require.True(t, strings.HasPrefix(inv.Number, "INV-"))

	stored, err := svc.Invoice(context.Background(), inv.ID)
	require.NoError(t, err)
	require.True(t, stored.Total.Equal(inv.Total), "header row total matches the item sum exactly")

	items, err := svc.Items(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestCommitEmptyCustomerWritesNothing(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)

	_, err := svc.Commit(context.Background(), Draft{
		Items: []PendingItem{{Product: "Pen", Quantity: 1, Price: dec("10")}},
	})

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Empty(t, repo.invoices)
	require.Empty(t, repo.items)
}

func TestCommitRejectsInvalidItems(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)

	var ve *shared.ValidationError

	_, err := svc.Commit(context.Background(), Draft{
		Customer: "Alice",
		Items:    []PendingItem{{Product: "Pen", Quantity: 0, Price: dec("10")}},
	})
	require.ErrorAs(t, err, &ve)

	_, err = svc.Commit(context.Background(), Draft{
		Customer: "Alice",
		Items:    []PendingItem{{Product: "Pen", Quantity: 1, Price: dec("-1")}},
	})
	require.ErrorAs(t, err, &ve)
	require.Empty(t, repo.invoices)
}

func TestCommitRetriesNumberCollision(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	repo.collisions = 1
	svc := NewService(repo)

	inv, err := svc.Commit(context.Background(), Draft{Customer: "Alice"})
	require.NoError(t, err)

	// INV-<seconds>-<4 hex chars> after one collision.
	parts := strings.Split(inv.Number, "-")
	require.Len(t, parts, 3)
	require.Len(t, parts[2], 4)
}

func TestCommitDefaultsInvoiceDate(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)

	before := time.Now()
	inv, err := svc.Commit(context.Background(), Draft{Customer: "Alice"})
	require.NoError(t, err)
	require.False(t, inv.InvoiceDate.Before(before.Truncate(time.Second)))
	require.True(t, inv.Total.IsZero(), "an invoice with no items commits with a zero total")
}

func TestListFiltersByCustomer(t *testing.T) {
	repo := newMemoryInvoiceRepo()
	svc := NewService(repo)

	_, err := svc.Commit(context.Background(), Draft{Customer: "Alice"})
	require.NoError(t, err)
	_, err = svc.Commit(context.Background(), Draft{Customer: "Bob"})
	require.NoError(t, err)

	out, err := svc.List(context.Background(), Filter{Customer: "Ali"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Alice", out[0].Customer)
}
