package org

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// Repository provides SQLite backed persistence for organization profiles.
type Repository struct {
	conn *sql.DB
}

// NewRepository constructs a repository.
func NewRepository(conn *sql.DB) *Repository {
	return &Repository{conn: conn}
}

// Insert appends a new profile row. Prior rows are never touched.
func (r *Repository) Insert(ctx context.Context, p Profile) (*Profile, error) {
	query := `
		INSERT INTO organization_info (
			org_name, gst_number, tin_number, org_address, org_email, org_contact, org_logo_blob, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := r.conn.ExecContext(ctx, query,
		p.Name,
		nullString(p.GSTNumber),
		nullString(p.TINNumber),
		nullString(p.Address),
		nullString(p.Email),
		nullString(p.Contact),
		p.Logo,
		p.CreatedAt.Format(shared.TimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("org: insert profile: %w", err)
	}

	p.ID, err = res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("org: insert profile id: %w", err)
	}
	return &p, nil
}

// Current returns the profile with the latest timestamp.
func (r *Repository) Current(ctx context.Context) (*Profile, error) {
	query := `
		SELECT id, org_name, gst_number, tin_number, org_address, org_email, org_contact, org_logo_blob, created_at
		FROM organization_info
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var (
		p                                 Profile
		gst, tin, address, email, contact sql.NullString
		createdAt                         string
	)
	err := r.conn.QueryRowContext(ctx, query).Scan(
		&p.ID, &p.Name, &gst, &tin, &address, &email, &contact, &p.Logo, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.NewNotFound("organization profile")
	}
	if err != nil {
		return nil, fmt.Errorf("org: load current profile: %w", err)
	}

	p.GSTNumber = gst.String
	p.TINNumber = tin.String
	p.Address = address.String
	p.Email = email.String
	p.Contact = contact.String
	p.CreatedAt, err = time.ParseInLocation(shared.TimeLayout, createdAt, time.Local)
	if err != nil {
		return nil, fmt.Errorf("org: parse profile timestamp: %w", err)
	}
	return &p, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
