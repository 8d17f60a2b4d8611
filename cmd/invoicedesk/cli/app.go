// Package cli implements the command-line application. It is the
// presentation layer: every verb calls into the service layer and
// never touches the store directly.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/invoicedesk/invoicedesk/internal/analytics"
	"github.com/invoicedesk/invoicedesk/internal/app"
	"github.com/invoicedesk/invoicedesk/internal/archive"
	"github.com/invoicedesk/invoicedesk/internal/invoicing"
	"github.com/invoicedesk/invoicedesk/internal/org"
	platformdb "github.com/invoicedesk/invoicedesk/internal/platform/db"
	"github.com/invoicedesk/invoicedesk/internal/render"
)

// Register wires every CLI verb into the commander.
func Register(c *subcommands.Commander) {
	c.Register(&orgShowCmd{}, "organization")
	c.Register(&orgSaveCmd{}, "organization")

	c.Register(&invoiceCreateCmd{}, "invoices")
	c.Register(&invoiceListCmd{}, "invoices")
	c.Register(&invoiceRenderCmd{}, "invoices")

	c.Register(&archiveRunCmd{}, "archive")
	c.Register(&archiveBatchesCmd{}, "archive")
	c.Register(&archiveShowCmd{}, "archive")

	c.Register(&reportCmd{}, "reports")
}

// services bundles the wired service layer for one command execution.
type services struct {
	cfg       *app.Config
	logger    *slog.Logger
	conn      *sql.DB
	org       *org.Service
	invoices  *invoicing.Service
	archive   *archive.Service
	analytics *analytics.Service
	renderer  *render.Renderer
}

func openServices(ctx context.Context) (*services, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := app.NewLogger(cfg)

	conn, err := platformdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := platformdb.EnsureSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, err
	}

	orgSvc := org.NewService(org.NewRepository(conn))
	invSvc := invoicing.NewService(invoicing.NewRepository(conn))

	return &services{
		cfg:       cfg,
		logger:    logger,
		conn:      conn,
		org:       orgSvc,
		invoices:  invSvc,
		archive:   archive.NewService(archive.NewRepository(conn)),
		analytics: analytics.NewService(analytics.NewRepository(conn)),
		renderer:  render.NewRenderer(invSvc, orgSvc, cfg.DataDir, logger),
	}, nil
}

func (s *services) Close() {
	_ = s.conn.Close()
}

// run opens the service layer, executes fn and maps its error to an
// exit status with the failure printed for the user.
func run(ctx context.Context, fn func(ctx context.Context, s *services) error) subcommands.ExitStatus {
	s, err := openServices(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if err := fn(ctx, s); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseItemSpec reads one "-item product:quantity:price" argument.
// The product may itself contain colons; quantity and price are the
// last two segments.
func parseItemSpec(spec string) (invoicing.PendingItem, error) {
	priceSep := strings.LastIndex(spec, ":")
	if priceSep < 0 {
		return invoicing.PendingItem{}, fmt.Errorf("item %q must be product:quantity:price", spec)
	}
	qtySep := strings.LastIndex(spec[:priceSep], ":")
	if qtySep < 0 {
		return invoicing.PendingItem{}, fmt.Errorf("item %q must be product:quantity:price", spec)
	}

	product := spec[:qtySep]
	quantity, err := strconv.Atoi(spec[qtySep+1 : priceSep])
	if err != nil {
		return invoicing.PendingItem{}, fmt.Errorf("item %q: quantity is not an integer", spec)
	}
	price, err := decimal.NewFromString(spec[priceSep+1:])
	if err != nil {
		return invoicing.PendingItem{}, fmt.Errorf("item %q: price is not a number", spec)
	}
	return invoicing.PendingItem{Product: product, Quantity: quantity, Price: price}, nil
}

// itemSpecs collects repeated -item flags.
type itemSpecs []string

func (i *itemSpecs) String() string { return strings.Join(*i, ", ") }

func (i *itemSpecs) Set(value string) error {
	*i = append(*i, value)
	return nil
}
