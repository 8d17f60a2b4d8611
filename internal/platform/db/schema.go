package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// Money columns (invoices.total, invoice_items.price and their archive
// mirrors) are TEXT holding canonical decimal strings.
const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer TEXT NOT NULL,
	total TEXT NOT NULL DEFAULT '0',
	invoice_number TEXT NOT NULL,
	created_at TEXT NOT NULL,
	invoice_date TEXT NOT NULL,
	customer_email TEXT,
	customer_contact TEXT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_invoices_number ON invoices(invoice_number);
CREATE INDEX IF NOT EXISTS idx_invoices_invoice_date ON invoices(invoice_date);

CREATE TABLE IF NOT EXISTS invoice_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	invoice_id INTEGER NOT NULL,
	product TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	FOREIGN KEY(invoice_id) REFERENCES invoices(id)
);

CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items(invoice_id);

CREATE TABLE IF NOT EXISTS organization_info (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	org_name TEXT NOT NULL,
	gst_number TEXT,
	tin_number TEXT,
	org_address TEXT,
	org_email TEXT,
	org_contact TEXT,
	org_logo_blob BLOB,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS archived_invoices (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	customer TEXT NOT NULL,
	total TEXT NOT NULL,
	invoice_number TEXT NOT NULL,
	invoice_date TEXT NOT NULL,
	customer_email TEXT,
	customer_contact TEXT,
	archive_batch_timestamp TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_archived_invoices_batch ON archived_invoices(archive_batch_timestamp);

CREATE TABLE IF NOT EXISTS archived_invoice_items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	invoice_number TEXT NOT NULL,
	product TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price TEXT NOT NULL,
	archive_batch_timestamp TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS archive_backups (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	archive_batch_timestamp TEXT NOT NULL
);
`

// EnsureSchema idempotently creates all tables and seeds a placeholder
// organization row when organization_info is empty. Store failures
// propagate untouched.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	if _, err := conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("platform/db: ensure schema: %w", err)
	}

	var count int
	if err := conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM organization_info").Scan(&count); err != nil {
		return fmt.Errorf("platform/db: count organizations: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := conn.ExecContext(ctx,
		`INSERT INTO organization_info (org_name, gst_number, tin_number, org_address, org_email, org_contact, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		"My Organization",
		"GST123456789",
		"TIN987654321",
		"123 Main St, City, Country \nMain Region \nZip Code - 00 00 00",
		"contact@my_organization.com",
		"(+00) 000 000 0000",
		time.Now().Format(shared.TimeLayout),
	)
	if err != nil {
		return fmt.Errorf("platform/db: seed organization: %w", err)
	}
	return nil
}
