// Package render produces the per-invoice PDF artifact.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"github.com/jung-kurt/gofpdf"

	"github.com/invoicedesk/invoicedesk/internal/invoicing"
	"github.com/invoicedesk/invoicedesk/internal/org"
	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// InvoiceSource reads persisted invoices.
type InvoiceSource interface {
	Invoice(ctx context.Context, id int64) (*invoicing.Invoice, error)
	Items(ctx context.Context, id int64) ([]invoicing.LineItem, error)
}

// ProfileSource reads the organization profile in effect.
type ProfileSource interface {
	CurrentProfile(ctx context.Context) (*org.Profile, error)
}

// Renderer writes one PDF per invoice into the output directory,
// keyed by invoice number. Regenerating overwrites the previous file.
type Renderer struct {
	invoices InvoiceSource
	profiles ProfileSource
	dir      string
	logger   *slog.Logger
}

// NewRenderer constructs a renderer writing into dir.
func NewRenderer(invoices InvoiceSource, profiles ProfileSource, dir string, logger *slog.Logger) *Renderer {
	return &Renderer{invoices: invoices, profiles: profiles, dir: dir, logger: logger}
}

// Render reads the invoice, its items and the current profile, lays
// out the document and writes invoice_<number>.pdf. The file appears
// atomically: the document is written to a temp file and renamed.
func (r *Renderer) Render(ctx context.Context, invoiceID int64) (string, error) {
	inv, err := r.invoices.Invoice(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	items, err := r.invoices.Items(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	profile, err := r.profiles.CurrentProfile(ctx)
	if err != nil {
		var nf *shared.NotFoundError
		if !errors.As(err, &nf) {
			return "", err
		}
		profile = nil
	}

	pdf := r.layout(inv, items, profile)

	path := filepath.Join(r.dir, fmt.Sprintf("invoice_%s.pdf", inv.Number))
	if err := writeAtomic(pdf, r.dir, path); err != nil {
		return "", err
	}

	if r.logger != nil {
		r.logger.Info("invoice rendered", slog.String("number", inv.Number), slog.String("path", path))
	}
	return path, nil
}

func (r *Renderer) layout(inv *invoicing.Invoice, items []invoicing.LineItem, profile *org.Profile) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")

	if profile.HasLogo() {
		if kind, err := filetype.Match(profile.Logo); err == nil {
			imgType := "PNG"
			if kind.Extension == "jpg" {
				imgType = "JPG"
			}
			opts := gofpdf.ImageOptions{ImageType: imgType}
			pdf.RegisterImageOptionsReader("org-logo", opts, bytes.NewReader(profile.Logo))
			// Top-right corner of every page.
			pdf.SetHeaderFunc(func() {
				pdf.ImageOptions("org-logo", 162, 8, 38, 19, false, opts, 0, "")
			})
		}
	}

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "TAX/INVOICE", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if profile != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 5, profile.Name, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		if profile.GSTNumber != "" {
			pdf.CellFormat(0, 5, "GST Number: "+profile.GSTNumber, "", 1, "L", false, 0, "")
		}
		if profile.TINNumber != "" {
			pdf.CellFormat(0, 5, "TIN Number: "+profile.TINNumber, "", 1, "L", false, 0, "")
		}
		if profile.Address != "" {
			pdf.MultiCell(0, 5, "Address: "+profile.Address, "", "L", false)
		}
		if profile.Email != "" {
			pdf.CellFormat(0, 5, "Email: "+profile.Email, "", 1, "L", false, 0, "")
		}
		if profile.Contact != "" {
			pdf.CellFormat(0, 5, "Contact: "+profile.Contact, "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Invoice Number: "+inv.Number, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Customer: "+inv.Customer, "", 1, "L", false, 0, "")
	if inv.Email != "" {
		pdf.CellFormat(0, 5, "Email: "+inv.Email, "", 1, "L", false, 0, "")
	}
	if inv.Contact != "" {
		pdf.CellFormat(0, 5, "Contact: "+inv.Contact, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, "Date: "+inv.InvoiceDate.Format(shared.DateLayout), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	colWidths := [4]float64{95, 25, 35, 35}
	headers := [4]string{"Product", "Quantity", "Price", "Total"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(245, 245, 245)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, item := range items {
		pdf.CellFormat(colWidths[0], 8, item.Product, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, item.Price.StringFixed(2), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, item.Subtotal().StringFixed(2), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(colWidths[0]+colWidths[1]+colWidths[2], 8, "Total Amount:", "1", 0, "R", false, 0, "")
	pdf.CellFormat(colWidths[3], 8, inv.Total.StringFixed(2), "1", 1, "R", false, 0, "")

	return pdf
}

func writeAtomic(pdf *gofpdf.Fpdf, dir, path string) error {
	tmp, err := os.CreateTemp(dir, ".invoice-*.pdf")
	if err != nil {
		return shared.NewIO("create document file", err)
	}
	defer os.Remove(tmp.Name())

	if err := pdf.Output(tmp); err != nil {
		tmp.Close()
		return shared.NewIO("write document", err)
	}
	if err := tmp.Close(); err != nil {
		return shared.NewIO("close document file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return shared.NewIO("publish document", err)
	}
	return nil
}
