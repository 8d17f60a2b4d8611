package svg

// Opts customises the bar chart renderer.
type Opts struct {
	Title       string
	Description string
	BarColor    string
	AxisColor   string
	GridColor   string
	Padding     float64
	TickCount   int
}

// Defaults for the report charts.
const (
	DefaultWidth   = 720
	DefaultHeight  = 300
	DefaultPadding = 32.0
	DefaultTicks   = 6
)
