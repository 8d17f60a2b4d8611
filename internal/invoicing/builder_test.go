package invoicing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBuilderTotalRecomputed(t *testing.T) {
	b := NewBuilder()
	require.True(t, b.Total().IsZero())

	require.NoError(t, b.AddItem("Pen", 2, dec("10")))
	require.Equal(t, "20.00", b.Total().StringFixed(2))

	require.NoError(t, b.AddItem("Book", 1, dec("50")))
	require.Equal(t, "70.00", b.Total().StringFixed(2))

	require.NoError(t, b.AddItem("Notebook", 3, dec("12.50")))
	require.Equal(t, "107.50", b.Total().StringFixed(2))

	require.NoError(t, b.RemoveItem(2))
	require.Equal(t, "70.00", b.Total().StringFixed(2))
}

func TestBuilderAddItemValidation(t *testing.T) {
	b := NewBuilder()

	cases := []struct {
		name     string
		product  string
		quantity int
		price    decimal.Decimal
	}{
		{"empty product", "", 1, dec("10")},
		{"zero quantity", "Pen", 0, dec("10")},
		{"negative quantity", "Pen", -2, dec("10")},
		{"zero price", "Pen", 1, decimal.Zero},
		{"negative price", "Pen", 1, dec("-5")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := b.AddItem(tc.product, tc.quantity, tc.price)
			var ve *shared.ValidationError
			require.ErrorAs(t, err, &ve)
		})
	}
	require.Empty(t, b.Items())
}

func TestBuilderEditItemReturnsForReentry(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddItem("Pen", 2, dec("10")))
	require.NoError(t, b.AddItem("Book", 1, dec("50")))

	item, err := b.EditItem(0)
	require.NoError(t, err)
	require.Equal(t, "Pen", item.Product)
	require.Equal(t, 2, item.Quantity)

	// The edited item left the sequence; only Book remains.
	require.Len(t, b.Items(), 1)
	require.Equal(t, "50.00", b.Total().StringFixed(2))

	require.NoError(t, b.AddItem(item.Product, 5, item.Price))
	require.Equal(t, "100.00", b.Total().StringFixed(2))
}

func TestBuilderEditItemOutOfRange(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.AddItem("Pen", 1, dec("10")))

	var nf *shared.NotFoundError
	_, err := b.EditItem(3)
	require.ErrorAs(t, err, &nf)
	_, err = b.EditItem(-1)
	require.ErrorAs(t, err, &nf)
	require.ErrorAs(t, b.RemoveItem(1), &nf)
}

func TestBuilderReset(t *testing.T) {
	b := NewBuilder()
	b.Customer = "Alice"
	b.Email = "alice@example.com"
	b.SetInvoiceDate(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local))
	require.NoError(t, b.AddItem("Pen", 2, dec("10")))

	before := time.Now()
	b.Reset()

	require.Empty(t, b.Customer)
	require.Empty(t, b.Email)
	require.Empty(t, b.Items())
	require.True(t, b.Total().IsZero())
	require.False(t, b.InvoiceDate().Before(before), "reset re-stamps the invoice date to now")
}
