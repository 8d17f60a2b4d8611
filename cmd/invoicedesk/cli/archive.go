package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/invoicedesk/invoicedesk/internal/archive"
	"github.com/invoicedesk/invoicedesk/internal/shared"
)

type archiveRunCmd struct {
	period string
}

func (*archiveRunCmd) Name() string     { return "archive" }
func (*archiveRunCmd) Synopsis() string { return "move old invoices into the archive" }
func (*archiveRunCmd) Usage() string {
	return `invoicedesk archive -period <last_year|last_6_months|last_1_month|all>

  Moves live invoices at or before the cutoff into the archive as one
  batch. Line items move together with their headers.
`
}

func (c *archiveRunCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "", "Archive period.")
}

func (c *archiveRunCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		period, err := archive.ParsePeriod(c.period)
		if err != nil {
			return err
		}
		batch, moved, err := s.archive.Run(ctx, period, time.Time{})
		if err != nil {
			return err
		}
		s.logger.Info("archive run complete",
			"period", string(period), "moved", moved, "batch", batch.Timestamp.Format(shared.TimeLayout))
		fmt.Printf("Archived %d invoice(s) in batch %s.\n", moved, batch.Timestamp.Format(shared.TimeLayout))
		return nil
	})
}

type archiveBatchesCmd struct{}

func (*archiveBatchesCmd) Name() string     { return "batches" }
func (*archiveBatchesCmd) Synopsis() string { return "list archive batches, most recent first" }
func (*archiveBatchesCmd) Usage() string {
	return `invoicedesk batches
`
}

func (*archiveBatchesCmd) SetFlags(*flag.FlagSet) {}

func (*archiveBatchesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		batches, err := s.archive.Batches(ctx)
		if err != nil {
			return err
		}
		for _, b := range batches {
			fmt.Println(b.Timestamp.Format(shared.TimeLayout))
		}
		return nil
	})
}

type archiveShowCmd struct {
	batch string
}

func (*archiveShowCmd) Name() string     { return "archived" }
func (*archiveShowCmd) Synopsis() string { return "show the invoices of one archive batch" }
func (*archiveShowCmd) Usage() string {
	return `invoicedesk archived -batch "<timestamp>"

  Prints the invoice headers moved in the given batch; timestamps come
  from the batches command.
`
}

func (c *archiveShowCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.batch, "batch", "", "Batch timestamp.")
}

func (c *archiveShowCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		batch, err := time.ParseInLocation(shared.TimeLayout, c.batch, time.Local)
		if err != nil {
			return fmt.Errorf("batch must look like %q: %w", shared.TimeLayout, err)
		}

		invoices, err := s.archive.Archived(ctx, batch)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NUMBER\tCUSTOMER\tTOTAL\tDATE")
		for _, inv := range invoices {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				inv.Number, inv.Customer, inv.Total.StringFixed(2), inv.InvoiceDate.Format(shared.DateLayout))
		}
		return w.Flush()
	})
}
