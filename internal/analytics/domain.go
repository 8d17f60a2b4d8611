package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceSample is the slice of an invoice header the aggregator needs.
type InvoiceSample struct {
	CreatedAt time.Time
	Total     decimal.Decimal
}

// ItemSample is one live line item for product-wise sums.
type ItemSample struct {
	Product  string
	Quantity int
	Price    decimal.Decimal
}

// PeriodSales is one point of a per-month or per-year series.
type PeriodSales struct {
	Period string
	Total  decimal.Decimal
}

// ProductSales sums quantity times price for one product.
type ProductSales struct {
	Product string
	Total   decimal.Decimal
}

// Extremes carries the highest and lowest single invoice totals.
type Extremes struct {
	Highest decimal.Decimal
	Lowest  decimal.Decimal
}
