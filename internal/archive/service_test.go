package archive

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/invoicedesk/invoicedesk/internal/shared"
)

type memoryArchiveRepo struct {
	live     []Invoice
	archived []Invoice
	batches  []Batch
	nextID   int64
}

func (r *memoryArchiveRepo) Archive(ctx context.Context, cutoff *time.Time, batch time.Time) (int64, error) {
	var moved int64
	var kept []Invoice
	for _, inv := range r.live {
		if cutoff == nil || !inv.InvoiceDate.After(*cutoff) {
			inv.Batch = batch
			r.archived = append(r.archived, inv)
			moved++
			continue
		}
		kept = append(kept, inv)
	}
	r.live = kept
	r.nextID++
	r.batches = append([]Batch{{ID: r.nextID, Timestamp: batch}}, r.batches...)
	return moved, nil
}

func (r *memoryArchiveRepo) Batches(ctx context.Context) ([]Batch, error) {
	return r.batches, nil
}

func (r *memoryArchiveRepo) Archived(ctx context.Context, batch time.Time) ([]Invoice, error) {
	var out []Invoice
	for _, inv := range r.archived {
		if inv.Batch.Equal(batch) {
			out = append(out, inv)
		}
	}
	return out, nil
}

func liveInvoice(number string, daysAgo int, asOf time.Time) Invoice {
	return Invoice{
		Customer:    "Customer " + number,
		Total:       decimal.NewFromInt(100),
		Number:      number,
		InvoiceDate: asOf.AddDate(0, 0, -daysAgo),
	}
}

func TestRunLastYearMovesNothingRecent(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	repo := &memoryArchiveRepo{live: []Invoice{
		liveInvoice("INV-1", 5, asOf),
		liveInvoice("INV-2", 29, asOf),
	}}
	svc := NewService(repo)

	batch, moved, err := svc.Run(context.Background(), PeriodLastYear, asOf)
	require.NoError(t, err)
	require.Zero(t, moved)
	require.Len(t, repo.live, 2)

	// The empty run still registers a batch with the run timestamp.
	batches, err := svc.Batches(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 1)
	require.True(t, batches[0].Timestamp.Equal(batch.Timestamp))
}

func TestRunAllEmptiesLiveTable(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	repo := &memoryArchiveRepo{live: []Invoice{
		liveInvoice("INV-1", 5, asOf),
		liveInvoice("INV-2", 400, asOf),
		liveInvoice("INV-3", 40, asOf),
	}}
	svc := NewService(repo)

	batch, moved, err := svc.Run(context.Background(), PeriodAll, asOf)
	require.NoError(t, err)
	require.EqualValues(t, 3, moved)
	require.Empty(t, repo.live)

	rows, err := svc.Archived(context.Background(), batch.Timestamp)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	numbers := []string{rows[0].Number, rows[1].Number, rows[2].Number}
	require.ElementsMatch(t, []string{"INV-1", "INV-2", "INV-3"}, numbers)
}

func TestRunCutoffBoundaries(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	repo := &memoryArchiveRepo{live: []Invoice{
		liveInvoice("OLD", 31, asOf),
		liveInvoice("EDGE", 30, asOf),
		liveInvoice("FRESH", 29, asOf),
	}}
	svc := NewService(repo)

	_, moved, err := svc.Run(context.Background(), PeriodLastMonth, asOf)
	require.NoError(t, err)
	require.EqualValues(t, 2, moved, "cutoff is inclusive")
	require.Len(t, repo.live, 1)
	require.Equal(t, "FRESH", repo.live[0].Number)
}

func TestRunRejectsUnknownPeriod(t *testing.T) {
	svc := NewService(&memoryArchiveRepo{})

	_, _, err := svc.Run(context.Background(), Period("last_week"), time.Time{})

	var ve *shared.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"last_year", "last_6_months", "last_1_month", "all"} {
		p, err := ParsePeriod(valid)
		require.NoError(t, err)
		require.EqualValues(t, valid, p)
	}

	var ve *shared.ValidationError
	_, err := ParsePeriod("everything")
	require.ErrorAs(t, err, &ve)
}

func TestBatchesMostRecentFirst(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	repo := &memoryArchiveRepo{}
	svc := NewService(repo)

	_, _, err := svc.Run(context.Background(), PeriodAll, asOf)
	require.NoError(t, err)
	_, _, err = svc.Run(context.Background(), PeriodAll, asOf.Add(time.Hour))
	require.NoError(t, err)

	batches, err := svc.Batches(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 2)
	require.True(t, batches[0].Timestamp.After(batches[1].Timestamp))
}
