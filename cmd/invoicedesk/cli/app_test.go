package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseItemSpec(t *testing.T) {
	item, err := parseItemSpec("Pen:2:10.50")
	require.NoError(t, err)
	require.Equal(t, "Pen", item.Product)
	require.Equal(t, 2, item.Quantity)
	require.Equal(t, "10.50", item.Price.StringFixed(2))
}

func TestParseItemSpecColonInProduct(t *testing.T) {
	item, err := parseItemSpec("USB-C: cable (1m):3:7.99")
	require.NoError(t, err)
	require.Equal(t, "USB-C: cable (1m)", item.Product)
	require.Equal(t, 3, item.Quantity)
}

func TestParseItemSpecErrors(t *testing.T) {
	for _, spec := range []string{"Pen", "Pen:2", "Pen:two:10", "Pen:2:ten"} {
		_, err := parseItemSpec(spec)
		require.Error(t, err, spec)
	}
}
