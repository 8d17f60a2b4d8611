package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	platformdb "github.com/invoicedesk/invoicedesk/internal/platform/db"
	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// Repository provides SQLite backed persistence for archive runs.
type Repository struct {
	conn *sql.DB
}

// NewRepository constructs a repository.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// Archive moves every live invoice whose invoice date is at or before
// the cutoff (all of them when cutoff is nil) into the archive tables,
// tags the copies with batch, deletes the source rows and registers
// the batch — all in one transaction so rows can never exist in both
// or neither table. Line items move together with their header.
func (r *Repository) Archive(ctx context.Context, cutoff *time.Time, batch time.Time) (int64, error) {
	batchTS := batch.Format(shared.TimeLayout)

	where := ""
	args := func(extra ...any) []any { return extra }
	if cutoff != nil {
		where = " WHERE invoice_date <= ?"
		cutoffDate := cutoff.Format(shared.DateLayout)
		args = func(extra ...any) []any { return append(extra, cutoffDate) }
	}

	var moved int64
	err := platformdb.WithTx(ctx, r.conn, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO archived_invoices (customer, total, invoice_number, invoice_date, customer_email, customer_contact, archive_batch_timestamp)
			 SELECT customer, total, invoice_number, invoice_date, customer_email, customer_contact, ? FROM invoices`+where,
			args(batchTS)...,
		)
		if err != nil {
			return fmt.Errorf("archive: copy headers: %w", err)
		}
		moved, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("archive: moved count: %w", err)
		}

		itemWhere := ""
		if cutoff != nil {
			itemWhere = " AND i.invoice_date <= ?"
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO archived_invoice_items (invoice_number, product, quantity, price, archive_batch_timestamp)
			 SELECT i.invoice_number, it.product, it.quantity, it.price, ?
			 FROM invoice_items it JOIN invoices i ON i.id = it.invoice_id WHERE 1=1`+itemWhere,
			args(batchTS)...,
		); err != nil {
			return fmt.Errorf("archive: copy items: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM invoice_items WHERE invoice_id IN (SELECT id FROM invoices"+where+")",
			args()...,
		); err != nil {
			return fmt.Errorf("archive: delete live items: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM invoices"+where, args()...); err != nil {
			return fmt.Errorf("archive: delete live headers: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO archive_backups (archive_batch_timestamp) VALUES (?)", batchTS,
		); err != nil {
			return fmt.Errorf("archive: register batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// Batches returns all archive batches, most recent first.
func (r *Repository) Batches(ctx context.Context) ([]Batch, error) {
	rows, err := r.conn.QueryContext(ctx,
		"SELECT id, archive_batch_timestamp FROM archive_backups ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("archive: list batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var (
			b  Batch
			ts string
		)
		if err := rows.Scan(&b.ID, &ts); err != nil {
			return nil, fmt.Errorf("archive: scan batch: %w", err)
		}
		b.Timestamp, err = time.ParseInLocation(shared.TimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("archive: parse batch timestamp: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// Archived returns the headers tagged with one batch timestamp.
func (r *Repository) Archived(ctx context.Context, batch time.Time) ([]Invoice, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, customer, total, invoice_number, invoice_date, customer_email, customer_contact, archive_batch_timestamp
		 FROM archived_invoices WHERE archive_batch_timestamp = ? ORDER BY id`,
		batch.Format(shared.TimeLayout))
	if err != nil {
		return nil, fmt.Errorf("archive: list archived: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		var (
			inv                    Invoice
			total, invoiceDate, ts string
			email, contact         sql.NullString
		)
		if err := rows.Scan(&inv.ID, &inv.Customer, &total, &inv.Number, &invoiceDate, &email, &contact, &ts); err != nil {
			return nil, fmt.Errorf("archive: scan archived: %w", err)
		}
		inv.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("archive: parse total: %w", err)
		}
		inv.Email = email.String
		inv.Contact = contact.String
		inv.InvoiceDate, err = time.ParseInLocation(shared.DateLayout, invoiceDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("archive: parse invoice date: %w", err)
		}
		inv.Batch, err = time.ParseInLocation(shared.TimeLayout, ts, time.Local)
		if err != nil {
			return nil, fmt.Errorf("archive: parse batch timestamp: %w", err)
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
