package invoicing

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	platformdb "github.com/invoicedesk/invoicedesk/internal/platform/db"
)

func openStore(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	conn, err := platformdb.New(ctx, filepath.Join(t.TempDir(), "invoices.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, platformdb.EnsureSchema(ctx, conn))
	return conn
}

func countRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, conn.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestCreatePersistsHeaderAndItems(t *testing.T) {
	conn := openStore(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	createdAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	inv, err := repo.Create(ctx, Draft{
		Customer:    "Alice",
		Email:       "alice@example.com",
		InvoiceDate: createdAt,
		Items: []PendingItem{
			{Product: "Pen", Quantity: 2, Price: dec("10")},
			{Product: "Book", Quantity: 1, Price: dec("50")},
		},
	}, "INV-1700000000", createdAt)
	require.NoError(t, err)

	stored, err := repo.Invoice(ctx, inv.ID)
	require.NoError(t, err)
	require.True(t, stored.Total.Equal(dec("70")), "stored header total is the exact item sum")
	require.Equal(t, "Alice", stored.Customer)
	require.True(t, stored.CreatedAt.Equal(createdAt))

	items, err := repo.Items(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.True(t, items[0].Price.Equal(dec("10")))
	require.True(t, items[1].Price.Equal(dec("50")))
}

func TestCreateDuplicateNumberRollsBackItems(t *testing.T) {
	conn := openStore(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	date := time.Date(2024, 1, 15, 10, 30, 0, 0, time.Local)
	_, err := repo.Create(ctx, Draft{Customer: "Alice", InvoiceDate: date}, "INV-1", date)
	require.NoError(t, err)

	_, err = repo.Create(ctx, Draft{
		Customer:    "Bob",
		InvoiceDate: date,
		Items:       []PendingItem{{Product: "Pen", Quantity: 1, Price: dec("10")}},
	}, "INV-1", date)
	require.ErrorIs(t, err, ErrDuplicateNumber)

	require.Equal(t, 1, countRows(t, conn, "invoices"))
	require.Zero(t, countRows(t, conn, "invoice_items"), "the failed commit leaves no item rows behind")
}

func TestCreateKeepsSubCentTotalsExact(t *testing.T) {
	conn := openStore(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	date := time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local)
	inv, err := repo.Create(ctx, Draft{
		Customer:    "Carol",
		InvoiceDate: date,
		Items:       []PendingItem{{Product: "Wire", Quantity: 3, Price: dec("7.999")}},
	}, "INV-2", date)
	require.NoError(t, err)

	stored, err := repo.Invoice(ctx, inv.ID)
	require.NoError(t, err)
	require.True(t, stored.Total.Equal(dec("23.997")))

	total := dec("23.997")
	matched, err := repo.List(ctx, Filter{Total: &total})
	require.NoError(t, err)
	require.Len(t, matched, 1)

	near := dec("24")
	matched, err = repo.List(ctx, Filter{Total: &near})
	require.NoError(t, err)
	require.Empty(t, matched)
}

func TestListBindsFilterValues(t *testing.T) {
	conn := openStore(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	date := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	_, err := repo.Create(ctx, Draft{Customer: "Alice O'Brien", InvoiceDate: date}, "INV-3", date)
	require.NoError(t, err)
	_, err = repo.Create(ctx, Draft{Customer: "Bob", InvoiceDate: date}, "INV-4", date.Add(time.Second))
	require.NoError(t, err)

	out, err := repo.List(ctx, Filter{Customer: "O'Bri"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Alice O'Brien", out[0].Customer)

	// Statement metacharacters stay inert filter text.
	out, err = repo.List(ctx, Filter{Customer: "'; DELETE FROM invoices; --"})
	require.NoError(t, err)
	require.Empty(t, out)
	require.Equal(t, 2, countRows(t, conn, "invoices"))
}
