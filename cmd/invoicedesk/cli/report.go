package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
	"github.com/samber/lo"

	"github.com/invoicedesk/invoicedesk/internal/analytics"
	"github.com/invoicedesk/invoicedesk/internal/analytics/svg"
)

type reportCmd struct {
	kind  string
	chart bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "sales summaries over live invoices" }
func (*reportCmd) Usage() string {
	return `invoicedesk report -kind <monthly|yearly|products|extremes|growth> [-chart]

  Prints the selected summary; -chart additionally writes a bar chart
  SVG next to the database file.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "monthly", "Summary kind.")
	f.BoolVar(&c.chart, "chart", false, "Also write an SVG bar chart.")
}

func (c *reportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		var (
			title  string
			series []float64
			labels []string
		)

		switch c.kind {
		case "monthly", "yearly", "growth":
			var (
				points []analytics.PeriodSales
				err    error
			)
			switch c.kind {
			case "monthly":
				title = "Monthly Sales"
				points, err = s.analytics.MonthlySales(ctx)
			case "yearly":
				title = "Yearly Sales"
				points, err = s.analytics.YearlySales(ctx)
			default:
				title = "Monthly Increase in Sales"
				points, err = s.analytics.MonthlyGrowth(ctx)
			}
			if err != nil {
				return err
			}
			for _, p := range points {
				fmt.Printf("%s\t%s\n", p.Period, p.Total.StringFixed(2))
			}
			labels = lo.Map(points, func(p analytics.PeriodSales, _ int) string { return p.Period })
			series = lo.Map(points, func(p analytics.PeriodSales, _ int) float64 { return p.Total.InexactFloat64() })

		case "products":
			title = "Item-wise Sales"
			out, err := s.analytics.ProductSales(ctx)
			if err != nil {
				return err
			}
			for _, p := range out {
				fmt.Printf("%s\t%s\n", p.Product, p.Total.StringFixed(2))
			}
			labels = lo.Map(out, func(p analytics.ProductSales, _ int) string { return p.Product })
			series = lo.Map(out, func(p analytics.ProductSales, _ int) float64 { return p.Total.InexactFloat64() })

		case "extremes":
			title = "Highest and Lowest Sales"
			ext, err := s.analytics.Extremes(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Highest\t%s\n", ext.Highest.StringFixed(2))
			fmt.Printf("Lowest\t%s\n", ext.Lowest.StringFixed(2))
			labels = []string{"Highest", "Lowest"}
			series = []float64{ext.Highest.InexactFloat64(), ext.Lowest.InexactFloat64()}

		default:
			return fmt.Errorf("kind must be one of monthly, yearly, products, extremes, growth")
		}

		if !c.chart {
			return nil
		}
		if len(series) == 0 {
			fmt.Println("No live invoices; chart skipped.")
			return nil
		}

		doc, err := svg.Bars(0, 0, series, labels, svg.Opts{Title: title})
		if err != nil {
			return err
		}
		path := filepath.Join(s.cfg.DataDir, fmt.Sprintf("report_%s.svg", c.kind))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return err
		}
		fmt.Println("Chart written to", path)
		return nil
	})
}
