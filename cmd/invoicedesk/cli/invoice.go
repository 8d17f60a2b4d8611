package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/invoicedesk/invoicedesk/internal/invoicing"
	"github.com/invoicedesk/invoicedesk/internal/shared"
)

type invoiceCreateCmd struct {
	customer string
	email    string
	contact  string
	date     string
	items    itemSpecs
	noPDF    bool
}

func (*invoiceCreateCmd) Name() string     { return "create" }
func (*invoiceCreateCmd) Synopsis() string { return "stage, save and render a new invoice" }
func (*invoiceCreateCmd) Usage() string {
	return `invoicedesk create -customer <name> [-email <addr>] [-contact <phone>] [-date <YYYY-MM-DD>] -item product:qty:price [-item ...] [-no-pdf]

  Stages the given line items, commits the invoice atomically and
  renders its PDF unless -no-pdf is set.
`
}

func (c *invoiceCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.customer, "customer", "", "Customer name (required).")
	f.StringVar(&c.email, "email", "", "Customer email.")
	f.StringVar(&c.contact, "contact", "", "Customer contact.")
	f.StringVar(&c.date, "date", "", "Invoice date, defaults to today.")
	f.Var(&c.items, "item", "Line item as product:quantity:price; repeatable.")
	f.BoolVar(&c.noPDF, "no-pdf", false, "Skip PDF rendering after save.")
}

func (c *invoiceCreateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		builder := invoicing.NewBuilder()
		builder.Customer = c.customer
		builder.Email = c.email
		builder.Contact = c.contact

		if c.date != "" {
			date, err := time.ParseInLocation(shared.DateLayout, c.date, time.Local)
			if err != nil {
				return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
			}
			builder.SetInvoiceDate(date)
		}

		for _, spec := range c.items {
			item, err := parseItemSpec(spec)
			if err != nil {
				return err
			}
			if err := builder.AddItem(item.Product, item.Quantity, item.Price); err != nil {
				return err
			}
		}

		inv, err := s.invoices.Commit(ctx, builder.Draft())
		if err != nil {
			return err
		}
		fmt.Printf("Invoice %s saved (id %d, total %s).\n", inv.Number, inv.ID, inv.Total.StringFixed(2))

		if c.noPDF {
			return nil
		}
		path, err := s.renderer.Render(ctx, inv.ID)
		if err != nil {
			return err
		}
		fmt.Println("PDF written to", path)
		return nil
	})
}

type invoiceListCmd struct {
	number   string
	customer string
	total    string
	date     string
}

func (*invoiceListCmd) Name() string     { return "invoices" }
func (*invoiceListCmd) Synopsis() string { return "list live invoices, optionally filtered" }
func (*invoiceListCmd) Usage() string {
	return `invoicedesk invoices [-number <substr>] [-customer <substr>] [-total <amount>] [-date <substr>]

  Lists live (non-archived) invoices, newest first.
`
}

func (c *invoiceListCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.number, "number", "", "Filter by invoice number substring.")
	f.StringVar(&c.customer, "customer", "", "Filter by customer substring.")
	f.StringVar(&c.total, "total", "", "Filter by exact total.")
	f.StringVar(&c.date, "date", "", "Filter by creation timestamp substring.")
}

func (c *invoiceListCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		filter := invoicing.Filter{
			Number:   c.number,
			Customer: c.customer,
			Date:     c.date,
		}
		if c.total != "" {
			total, err := decimal.NewFromString(c.total)
			if err != nil {
				return fmt.Errorf("total must be a number: %w", err)
			}
			filter.Total = &total
		}

		invoices, err := s.invoices.List(ctx, filter)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNUMBER\tCUSTOMER\tTOTAL\tDATE")
		for _, inv := range invoices {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				inv.ID, inv.Number, inv.Customer, inv.Total.StringFixed(2), inv.InvoiceDate.Format(shared.DateLayout))
		}
		return w.Flush()
	})
}

type invoiceRenderCmd struct {
	id int64
}

func (*invoiceRenderCmd) Name() string     { return "render" }
func (*invoiceRenderCmd) Synopsis() string { return "regenerate the PDF for a saved invoice" }
func (*invoiceRenderCmd) Usage() string {
	return `invoicedesk render -id <invoice id>

  Renders the invoice PDF again, overwriting the previous artifact.
`
}

func (c *invoiceRenderCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Invoice identifier.")
}

func (c *invoiceRenderCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		path, err := s.renderer.Render(ctx, c.id)
		if err != nil {
			return err
		}
		fmt.Println("PDF written to", path)
		return nil
	})
}
