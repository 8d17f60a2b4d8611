package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBarsRendersSeries(t *testing.T) {
	out, err := Bars(0, 0, []float64{100, 150, -30}, []string{"2024-01", "2024-02", "2024-03"}, Opts{
		Title: "Monthly Sales",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "<svg"))
	require.True(t, strings.HasSuffix(out, "</svg>"))
	require.Equal(t, 3, strings.Count(out, "<rect"))
	require.Contains(t, out, "Monthly Sales")
	require.Contains(t, out, "2024-02")
}

func TestBarsRequiresMatchingLabels(t *testing.T) {
	_, err := Bars(720, 300, []float64{1, 2}, []string{"a"}, Opts{})
	require.Error(t, err)

	_, err = Bars(720, 300, nil, nil, Opts{})
	require.Error(t, err)
}

func TestBarsEscapesLabels(t *testing.T) {
	out, err := Bars(720, 300, []float64{5}, []string{"<Pens & Co>"}, Opts{})
	require.NoError(t, err)
	require.NotContains(t, out, "<Pens")
	require.Contains(t, out, "&lt;Pens &amp; Co&gt;")
}
