package reports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matunda/internal/core/apperror"
	"matunda/internal/core/id"
	"matunda/internal/core/types"
	"matunda/internal/domain/batch"
	"matunda/internal/domain/ledger"
	"matunda/internal/domain/matching"
)

// memLedger serves canned ledger rows, honoring the date filter the way
// the real repository does.
type memLedger struct {
	sales     []ledger.SaleRecord
	purchases []ledger.Purchase
	expenses  []ledger.OtherExpense
	salaries  []ledger.Salary
	car       []ledger.CarExpense
}

func (m *memLedger) ListSales(_ context.Context, f ledger.Filter) ([]ledger.SaleRecord, error) {
	var out []ledger.SaleRecord
	for _, s := range m.sales {
		if f.Matches(s.Date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memLedger) ListPurchases(_ context.Context, f ledger.Filter) ([]ledger.Purchase, error) {
	var out []ledger.Purchase
	for _, p := range m.purchases {
		if f.Matches(p.Date) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memLedger) ListOtherExpenses(_ context.Context, f ledger.Filter) ([]ledger.OtherExpense, error) {
	return m.expenses, nil
}

func (m *memLedger) ListSalaries(_ context.Context, f ledger.Filter) ([]ledger.Salary, error) {
	return m.salaries, nil
}

func (m *memLedger) ListCarExpenses(_ context.Context, f ledger.Filter) ([]ledger.CarExpense, error) {
	return m.car, nil
}

// memBatches is a fixed batch snapshot.
type memBatches struct {
	batches []batch.StockBatch
}

func (m *memBatches) Create(context.Context, *batch.StockBatch) error { return nil }
func (m *memBatches) Update(context.Context, *batch.StockBatch) error { return nil }

func (m *memBatches) GetByID(_ context.Context, batchID id.ID) (*batch.StockBatch, error) {
	return nil, apperror.NewNotFound("batch", batchID.String())
}

func (m *memBatches) ListOpen(context.Context) ([]batch.StockBatch, error) {
	return m.batches, nil
}

func (m *memBatches) List(context.Context, batch.ListFilter) ([]batch.StockBatch, error) {
	return m.batches, nil
}

func closedBatch(stockName, fruitType, dateIn, dateOut string) batch.StockBatch {
	b := batch.NewStockBatch(batch.Intake{
		StockName:   stockName,
		FruitType:   fruitType,
		DateIn:      types.MustParseDate(dateIn),
		QuantityIn:  types.NewQuantityFromFloat64(100),
		AmountPerKg: types.MustMoney("50"),
	})
	if dateOut != "" {
		d := types.MustParseDate(dateOut)
		b.DateOut = &d
	}
	return *b
}

func TestService_MatchedSales(t *testing.T) {
	ledgers := &memLedger{
		sales: []ledger.SaleRecord{
			sale("mango", 90, 8000),
			sale("papaya", 10, 500),
		},
	}
	batches := &memBatches{batches: []batch.StockBatch{
		closedBatch("mango-1", "mango", "2025-02-01", "2025-02-08"),
	}}

	svc := NewService(ledgers, ledgers, ledgers, batches)
	matched, err := svc.MatchedSales(context.Background(), ledger.Filter{})
	require.NoError(t, err)
	require.Len(t, matched, 2)

	assert.Equal(t, "mango-1", matched[0].ResolvedStockName)
	assert.Equal(t, matching.UnknownStock, matched[1].ResolvedStockName)
}

func TestService_FruitProfitabilityUsesBatchFallback(t *testing.T) {
	ledgers := &memLedger{
		sales: []ledger.SaleRecord{sale("mango", 90, 8000)},
	}
	batches := &memBatches{batches: []batch.StockBatch{
		closedBatch("mango-1", "mango", "2025-02-01", ""),
	}}

	svc := NewService(ledgers, ledgers, ledgers, batches)
	report, err := svc.FruitProfitability(context.Background(), ledger.Filter{})
	require.NoError(t, err)

	assert.True(t, report.UsedBatchFallback)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "3000", report.Items[0].TotalProfit.String())
}

func TestService_FruitProfitabilityPrefersPurchaseLedger(t *testing.T) {
	ledgers := &memLedger{
		sales:     []ledger.SaleRecord{sale("mango", 90, 8000)},
		purchases: []ledger.Purchase{purchase("mango", 100, 4000)},
	}
	batches := &memBatches{batches: []batch.StockBatch{
		closedBatch("mango-1", "mango", "2025-02-01", ""),
	}}

	svc := NewService(ledgers, ledgers, ledgers, batches)
	report, err := svc.FruitProfitability(context.Background(), ledger.Filter{})
	require.NoError(t, err)

	assert.False(t, report.UsedBatchFallback)
	assert.Equal(t, "4000", report.Items[0].TotalProfit.String())
}

func TestService_PeriodSummaries(t *testing.T) {
	ledgers := &memLedger{
		sales:     []ledger.SaleRecord{sale("mango", 90, 8000)},
		purchases: []ledger.Purchase{purchase("mango", 100, 4000)},
		salaries:  []ledger.Salary{{Amount: types.NewMoney(1000), Date: types.MustParseDate("2025-02-25")}},
	}
	svc := NewService(ledgers, ledgers, ledgers, &memBatches{})

	report, err := svc.PeriodSummaries(context.Background(), ledger.Filter{}, BucketMonth)
	require.NoError(t, err)
	require.Len(t, report.Periods, 1)
	assert.Equal(t, "2025-02", report.Periods[0].PeriodKey)
	assert.Equal(t, "3000", report.Periods[0].ProfitLoss.String())
}

func TestService_PeriodSummariesRejectsUnknownBucket(t *testing.T) {
	ledgers := &memLedger{}
	svc := NewService(ledgers, ledgers, ledgers, &memBatches{})

	_, err := svc.PeriodSummaries(context.Background(), ledger.Filter{}, Bucketing("quarter"))
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestService_DateFilterNarrowsSales(t *testing.T) {
	ledgers := &memLedger{
		sales: []ledger.SaleRecord{
			{FruitType: "mango", Amount: types.NewMoney(100), Date: types.MustParseDate("2025-01-15")},
			{FruitType: "mango", Amount: types.NewMoney(200), Date: types.MustParseDate("2025-02-15")},
		},
	}
	svc := NewService(ledgers, ledgers, ledgers, &memBatches{})

	matched, err := svc.MatchedSales(context.Background(), ledger.Filter{
		FromDate: types.MustParseDate("2025-02-01"),
	})
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "200", matched[0].Amount.String())
}
