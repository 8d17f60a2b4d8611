package invoicing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// Builder stages one in-progress invoice: customer fields plus an
// ordered sequence of pending line items. Nothing is persisted until
// the draft is handed to Service.Commit.
type Builder struct {
	Customer string
	Email    string
	Contact  string

	invoiceDate time.Time
	items       []PendingItem
}

// NewBuilder returns an empty builder with the invoice date set to now.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Reset()
	return b
}

// AddItem validates and appends a pending line item.
func (b *Builder) AddItem(product string, quantity int, price decimal.Decimal) error {
	if product == "" {
		return shared.NewValidation("product name is required")
	}
	if quantity <= 0 {
		return shared.NewValidation("quantity must be a positive integer")
	}
	if !price.IsPositive() {
		return shared.NewValidation("price must be a positive number")
	}
	b.items = append(b.items, PendingItem{Product: product, Quantity: quantity, Price: price})
	return nil
}

// EditItem removes the item at index and returns it for re-entry via
// AddItem. Corrections happen only in the staging phase.
func (b *Builder) EditItem(index int) (PendingItem, error) {
	if index < 0 || index >= len(b.items) {
		return PendingItem{}, shared.NewNotFound("line item %d", index)
	}
	item := b.items[index]
	b.items = append(b.items[:index], b.items[index+1:]...)
	return item, nil
}

// RemoveItem deletes the item at index.
func (b *Builder) RemoveItem(index int) error {
	_, err := b.EditItem(index)
	return err
}

// Items returns a copy of the pending sequence in entry order.
func (b *Builder) Items() []PendingItem {
	out := make([]PendingItem, len(b.items))
	copy(out, b.items)
	return out
}

// Total recomputes the running total from scratch on every call so the
// displayed value can never drift from the pending sequence.
func (b *Builder) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range b.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// InvoiceDate returns the user-selected invoice date.
func (b *Builder) InvoiceDate() time.Time { return b.invoiceDate }

// SetInvoiceDate overrides the default creation-time invoice date.
func (b *Builder) SetInvoiceDate(t time.Time) { b.invoiceDate = t }

// Reset clears all pending items and customer fields and reinitializes
// the invoice date to the current time.
func (b *Builder) Reset() {
	b.Customer = ""
	b.Email = ""
	b.Contact = ""
	b.items = nil
	b.invoiceDate = time.Now()
}

// Draft snapshots the staged state for Commit.
func (b *Builder) Draft() Draft {
	return Draft{
		Customer:    b.Customer,
		Email:       b.Email,
		Contact:     b.Contact,
		InvoiceDate: b.invoiceDate,
		Items:       b.Items(),
	}
}
