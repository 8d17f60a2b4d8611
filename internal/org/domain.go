package org

import (
	"time"

	"github.com/h2non/filetype"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// MaxLogoBytes caps the uploaded logo blob at 2 MB.
const MaxLogoBytes = 2_097_152

// Profile is one versioned organization identity record. Rows are
// append-only; the one with the latest CreatedAt is in effect.
type Profile struct {
	ID        int64
	Name      string
	GSTNumber string
	TINNumber string
	Address   string
	Email     string
	Contact   string
	Logo      []byte
	CreatedAt time.Time
}

// HasLogo reports whether the profile carries a logo blob.
func (p *Profile) HasLogo() bool { return p != nil && len(p.Logo) > 0 }

// Draft stages an organization profile edit, including the pending
// logo bytes, before SaveProfile persists it as a new row. The logo
// lives on the draft so upload and save share no hidden state.
type Draft struct {
	Name      string `validate:"required"`
	GSTNumber string
	TINNumber string
	Address   string
	Email     string
	Contact   string

	logo []byte
}

// SetLogo stages logo bytes on the draft. The blob must be at most
// MaxLogoBytes and sniff as a PNG or JPEG image.
func (d *Draft) SetLogo(data []byte) error {
	if len(data) > MaxLogoBytes {
		return shared.NewValidation("logo must be at most 2 MB (%d bytes)", MaxLogoBytes)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return shared.NewValidation("logo is not a readable image: %v", err)
	}
	if kind.Extension != "png" && kind.Extension != "jpg" {
		return shared.NewValidation("logo must be a PNG or JPEG image, got %q", kind.Extension)
	}
	d.logo = data
	return nil
}

// Logo returns the staged logo bytes, nil when none is staged.
func (d *Draft) Logo() []byte { return d.logo }

// ClearLogo drops any staged logo bytes.
func (d *Draft) ClearLogo() { d.logo = nil }
