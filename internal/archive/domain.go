package archive

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// Period selects which live invoices an archive run moves.
type Period string

const (
	PeriodLastYear  Period = "last_year"
	PeriodLast6M    Period = "last_6_months"
	PeriodLastMonth Period = "last_1_month"
	PeriodAll       Period = "all"
)

// ParsePeriod validates a user-supplied period name.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodLastYear, PeriodLast6M, PeriodLastMonth, PeriodAll:
		return Period(s), nil
	}
	return "", shared.NewValidation("period must be one of last_year, last_6_months, last_1_month, all")
}

// Cutoff returns the inclusive invoice-date cutoff for the period.
// ok is false for PeriodAll, which archives without a cutoff.
func (p Period) Cutoff(asOf time.Time) (cutoff time.Time, ok bool, err error) {
	switch p {
	case PeriodLastYear:
		return asOf.AddDate(0, 0, -365), true, nil
	case PeriodLast6M:
		return asOf.AddDate(0, 0, -180), true, nil
	case PeriodLastMonth:
		return asOf.AddDate(0, 0, -30), true, nil
	case PeriodAll:
		return time.Time{}, false, nil
	}
	return time.Time{}, false, shared.NewValidation("period must be one of last_year, last_6_months, last_1_month, all")
}

// Batch is one archive run, identified by its shared timestamp.
type Batch struct {
	ID        int64
	Timestamp time.Time
}

// Invoice is an archived invoice header tagged with its batch timestamp.
type Invoice struct {
	ID          int64
	Customer    string
	Total       decimal.Decimal
	Number      string
	InvoiceDate time.Time
	Email       string
	Contact     string
	Batch       time.Time
}
