package invoicing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	platformdb "github.com/invoicedesk/invoicedesk/internal/platform/db"
	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// ErrDuplicateNumber indicates the generated invoice number already
// exists in the live table. The service retries with a suffixed number.
var ErrDuplicateNumber = errors.New("invoicing: duplicate invoice number")

// Repository provides SQLite backed persistence for invoices.
type Repository struct {
	conn *sql.DB
}

// NewRepository constructs a repository.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// Create persists the header and all line items in one transaction.
// The header is inserted with a zero total placeholder, items follow,
// and the accumulated total is written back before commit; a failure
// at any step rolls back the whole invoice.
func (r *Repository) Create(ctx context.Context, draft Draft, number string, createdAt time.Time) (*Invoice, error) {
	inv := &Invoice{
		Number:      number,
		Customer:    draft.Customer,
		Email:       draft.Email,
		Contact:     draft.Contact,
		InvoiceDate: draft.InvoiceDate,
		CreatedAt:   createdAt,
	}

	err := platformdb.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (customer, total, invoice_number, created_at, invoice_date, customer_email, customer_contact)
			 VALUES (?, '0', ?, ?, ?, ?, ?)`,
			draft.Customer,
			number,
			createdAt.Format(shared.TimeLayout),
			draft.InvoiceDate.Format(shared.DateLayout),
			nullString(draft.Email),
			nullString(draft.Contact),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateNumber
			}
			return fmt.Errorf("invoicing: insert header: %w", err)
		}

		inv.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("invoicing: header id: %w", err)
		}

		total := decimal.Zero
		for _, item := range draft.Items {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO invoice_items (invoice_id, product, quantity, price) VALUES (?, ?, ?, ?)",
				inv.ID, item.Product, item.Quantity, item.Price.String(),
			)
			if err != nil {
				return fmt.Errorf("invoicing: insert item %q: %w", item.Product, err)
			}
			total = total.Add(item.Subtotal())
		}

		if _, err := tx.ExecContext(ctx,
			"UPDATE invoices SET total = ? WHERE id = ?",
			total.String(), inv.ID,
		); err != nil {
			return fmt.Errorf("invoicing: update total: %w", err)
		}

		inv.Total = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Invoice retrieves a header by identifier.
func (r *Repository) Invoice(ctx context.Context, id int64) (*Invoice, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT id, customer, total, invoice_number, created_at, invoice_date, customer_email, customer_contact
		 FROM invoices WHERE id = ?`, id)

	inv, err := scanInvoice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.NewNotFound("invoice %d", id)
	}
	if err != nil {
		return nil, fmt.Errorf("invoicing: load invoice: %w", err)
	}
	return inv, nil
}

// Items returns the line items owned by an invoice, in entry order.
func (r *Repository) Items(ctx context.Context, invoiceID int64) ([]LineItem, error) {
	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, invoice_id, product, quantity, price FROM invoice_items WHERE invoice_id = ? ORDER BY id",
		invoiceID)
	if err != nil {
		return nil, fmt.Errorf("invoicing: list items: %w", err)
	}
	defer rows.Close()

	var items []LineItem
	for rows.Next() {
		var (
			it    LineItem
			price string
		)
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Product, &it.Quantity, &price); err != nil {
			return nil, fmt.Errorf("invoicing: scan item: %w", err)
		}
		it.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("invoicing: parse price: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List returns live invoices matching the filter, newest first. Every
// filter value is bound as a query parameter; no user input is ever
// spliced into the statement text. A total filter matches by exact
// decimal equality after scanning, never by numeric coercion in SQL.
func (r *Repository) List(ctx context.Context, f Filter) ([]Invoice, error) {
	query := `SELECT id, customer, total, invoice_number, created_at, invoice_date, customer_email, customer_contact
		FROM invoices WHERE 1=1`
	args := []any{}

	if f.Number != "" {
		query += " AND invoice_number LIKE ?"
		args = append(args, "%"+f.Number+"%")
	}
	if f.Customer != "" {
		query += " AND customer LIKE ?"
		args = append(args, "%"+f.Customer+"%")
	}
	if f.Date != "" {
		query += " AND created_at LIKE ?"
		args = append(args, "%"+f.Date+"%")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("invoicing: list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("invoicing: scan invoice: %w", err)
		}
		if f.Total != nil && !inv.Total.Equal(*f.Total) {
			continue
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (*Invoice, error) {
	var (
		inv                           Invoice
		total, createdAt, invoiceDate string
		email, contact                sql.NullString
	)
	if err := row.Scan(&inv.ID, &inv.Customer, &total, &inv.Number, &createdAt, &invoiceDate, &email, &contact); err != nil {
		return nil, err
	}
	inv.Email = email.String
	inv.Contact = contact.String

	var err error
	inv.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, err
	}
	inv.CreatedAt, err = time.ParseInLocation(shared.TimeLayout, createdAt, time.Local)
	if err != nil {
		return nil, err
	}
	inv.InvoiceDate, err = time.ParseInLocation(shared.DateLayout, invoiceDate, time.Local)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
