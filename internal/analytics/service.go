package analytics

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

// RepositoryPort defines read access for the aggregator.
type RepositoryPort interface {
	LiveInvoices(ctx context.Context) ([]InvoiceSample, error)
	LiveItems(ctx context.Context) ([]ItemSample, error)
}

// Service aggregates sales over live (non-archived) invoices.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// MonthlySales groups header totals by the creation month (YYYY-MM),
// ordered chronologically.
func (s *Service) MonthlySales(ctx context.Context) ([]PeriodSales, error) {
	return s.salesByPeriod(ctx, "2006-01")
}

// YearlySales groups header totals by the creation year.
func (s *Service) YearlySales(ctx context.Context) ([]PeriodSales, error) {
	return s.salesByPeriod(ctx, "2006")
}

func (s *Service) salesByPeriod(ctx context.Context, layout string) ([]PeriodSales, error) {
	invoices, err := s.repo.LiveInvoices(ctx)
	if err != nil {
		return nil, err
	}

	groups := lo.GroupBy(invoices, func(inv InvoiceSample) string {
		return inv.CreatedAt.Format(layout)
	})
	periods := lo.Keys(groups)
	sort.Strings(periods)

	return lo.Map(periods, func(period string, _ int) PeriodSales {
		total := decimal.Zero
		for _, inv := range groups[period] {
			total = total.Add(inv.Total)
		}
		return PeriodSales{Period: period, Total: total}
	}), nil
}

// ProductSales sums quantity times price per product, largest first.
func (s *Service) ProductSales(ctx context.Context) ([]ProductSales, error) {
	items, err := s.repo.LiveItems(ctx)
	if err != nil {
		return nil, err
	}

	groups := lo.GroupBy(items, func(it ItemSample) string { return it.Product })
	out := lo.MapToSlice(groups, func(product string, items []ItemSample) ProductSales {
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		return ProductSales{Product: product, Total: total}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total.Equal(out[j].Total) {
			return out[i].Product < out[j].Product
		}
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out, nil
}

// Extremes returns the highest and lowest single invoice totals.
func (s *Service) Extremes(ctx context.Context) (*Extremes, error) {
	invoices, err := s.repo.LiveInvoices(ctx)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, shared.NewNotFound("live invoices")
	}

	ext := Extremes{Highest: invoices[0].Total, Lowest: invoices[0].Total}
	for _, inv := range invoices[1:] {
		if inv.Total.GreaterThan(ext.Highest) {
			ext.Highest = inv.Total
		}
		if inv.Total.LessThan(ext.Lowest) {
			ext.Lowest = inv.Total
		}
	}
	return &ext, nil
}

// MonthlyGrowth is the first difference of the chronological monthly
// series. The first period has no prior month to diff against, so its
// change is defined as zero.
func (s *Service) MonthlyGrowth(ctx context.Context) ([]PeriodSales, error) {
	monthly, err := s.MonthlySales(ctx)
	if err != nil {
		return nil, err
	}

	growth := make([]PeriodSales, len(monthly))
	for i, point := range monthly {
		change := decimal.Zero
		if i > 0 {
			change = point.Total.Sub(monthly[i-1].Total)
		}
		growth[i] = PeriodSales{Period: point.Period, Total: change}
	}
	return growth, nil
}
