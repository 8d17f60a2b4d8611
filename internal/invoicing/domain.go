package invoicing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the header record for one sale. Total is always derived
// from the owned line items; it is never edited independently.
type Invoice struct {
	ID          int64
	Number      string
	Customer    string
	Email       string
	Contact     string
	Total       decimal.Decimal
	InvoiceDate time.Time
	CreatedAt   time.Time
}

// LineItem is one product/quantity/price entry owned by exactly one
// invoice. Items are immutable once the parent invoice is persisted.
type LineItem struct {
	ID        int64
	InvoiceID int64
	Product   string
	Quantity  int
	Price     decimal.Decimal
}

// Subtotal returns quantity times unit price.
func (it LineItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Draft carries a fully staged invoice into Commit.
type Draft struct {
	Customer    string `validate:"required"`
	Email       string
	Contact     string
	InvoiceDate time.Time
	Items       []PendingItem
}

// PendingItem is a staged line item awaiting commit.
type PendingItem struct {
	Product  string
	Quantity int
	Price    decimal.Decimal
}

// Subtotal returns quantity times unit price.
func (it PendingItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Filter narrows invoice history listings. Zero values mean "any".
type Filter struct {
	Number   string
	Customer string
	Total    *decimal.Decimal
	Date     string
}
