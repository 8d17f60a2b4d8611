package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// Repository provides read-only access to live invoice rows.
type Repository struct {
	conn *sql.DB
}

// NewRepository constructs a repository.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// LiveInvoices returns creation timestamp and total of every live header.
func (r *Repository) LiveInvoices(ctx context.Context) ([]InvoiceSample, error) {
	rows, err := r.conn.QueryContext(ctx, "SELECT created_at, total FROM invoices")
	if err != nil {
		return nil, fmt.Errorf("analytics: live invoices: %w", err)
	}
	defer rows.Close()

	var samples []InvoiceSample
	for rows.Next() {
		var createdAt, total string
		if err := rows.Scan(&createdAt, &total); err != nil {
			return nil, fmt.Errorf("analytics: scan invoice: %w", err)
		}
		ts, err := time.ParseInLocation(shared.TimeLayout, createdAt, time.Local)
		if err != nil {
			return nil, fmt.Errorf("analytics: parse created_at: %w", err)
		}
		amount, err := decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("analytics: parse total: %w", err)
		}
		samples = append(samples, InvoiceSample{CreatedAt: ts, Total: amount})
	}
	return samples, rows.Err()
}

// LiveItems returns line items joined to live headers only; items of
// archived invoices never contribute to the sums.
func (r *Repository) LiveItems(ctx context.Context) ([]ItemSample, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT it.product, it.quantity, it.price
		 FROM invoice_items it JOIN invoices i ON i.id = it.invoice_id`)
	if err != nil {
		return nil, fmt.Errorf("analytics: live items: %w", err)
	}
	defer rows.Close()

	var samples []ItemSample
	for rows.Next() {
		var (
			s     ItemSample
			price string
		)
		if err := rows.Scan(&s.Product, &s.Quantity, &price); err != nil {
			return nil, fmt.Errorf("analytics: scan item: %w", err)
		}
		s.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("analytics: parse price: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
