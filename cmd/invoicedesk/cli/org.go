package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/invoicedesk/invoicedesk/internal/org"
)

type orgShowCmd struct{}

func (*orgShowCmd) Name() string     { return "org" }
func (*orgShowCmd) Synopsis() string { return "show the organization profile in effect" }
func (*orgShowCmd) Usage() string {
	return `invoicedesk org

  Prints the organization profile currently used on rendered invoices.
`
}

func (*orgShowCmd) SetFlags(*flag.FlagSet) {}

func (*orgShowCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		profile, err := s.org.CurrentProfile(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Name:   ", profile.Name)
		if profile.GSTNumber != "" {
			fmt.Println("GST:    ", profile.GSTNumber)
		}
		if profile.TINNumber != "" {
			fmt.Println("TIN:    ", profile.TINNumber)
		}
		if profile.Address != "" {
			fmt.Println("Address:", profile.Address)
		}
		if profile.Email != "" {
			fmt.Println("Email:  ", profile.Email)
		}
		if profile.Contact != "" {
			fmt.Println("Contact:", profile.Contact)
		}
		if profile.HasLogo() {
			fmt.Printf("Logo:    %d bytes\n", len(profile.Logo))
		}
		return nil
	})
}

type orgSaveCmd struct {
	name    string
	gst     string
	tin     string
	address string
	email   string
	contact string
	logo    string
}

func (*orgSaveCmd) Name() string     { return "org-save" }
func (*orgSaveCmd) Synopsis() string { return "save a new organization profile version" }
func (*orgSaveCmd) Usage() string {
	return `invoicedesk org-save -name <name> [-gst <id>] [-tin <id>] [-address <text>] [-email <addr>] [-contact <phone>] [-logo <image file>]

  Appends a new profile row; the previous versions are kept as history.
`
}

func (c *orgSaveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Organization name (required).")
	f.StringVar(&c.gst, "gst", "", "GST number.")
	f.StringVar(&c.tin, "tin", "", "TIN number.")
	f.StringVar(&c.address, "address", "", "Postal address, \\n for line breaks.")
	f.StringVar(&c.email, "email", "", "Contact email.")
	f.StringVar(&c.contact, "contact", "", "Contact phone.")
	f.StringVar(&c.logo, "logo", "", "PNG or JPEG logo file, at most 2 MB.")
}

func (c *orgSaveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, s *services) error {
		draft := &org.Draft{
			Name:      c.name,
			GSTNumber: c.gst,
			TINNumber: c.tin,
			Address:   c.address,
			Email:     c.email,
			Contact:   c.contact,
		}
		if c.logo != "" {
			data, err := os.ReadFile(c.logo)
			if err != nil {
				return err
			}
			if err := draft.SetLogo(data); err != nil {
				return err
			}
		}

		profile, err := s.org.SaveProfile(ctx, draft)
		if err != nil {
			return err
		}
		fmt.Printf("Organization profile saved (version %d).\n", profile.ID)
		return nil
	})
}
