package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matunda/internal/core/types"
	"matunda/internal/domain/ledger"
)

func periodInputs() PeriodInputs {
	return PeriodInputs{
		Sales: []ledger.SaleRecord{
			{Amount: types.NewMoney(8000), Date: types.MustParseDate("2025-02-10")},
			{Amount: types.NewMoney(2000), Date: types.MustParseDate("2025-02-20")},
		},
		Purchases: []ledger.Purchase{
			{Amount: types.NewMoney(5000), Date: types.MustParseDate("2025-02-01")},
		},
		Expenses: []ledger.OtherExpense{
			{Amount: types.NewMoney(300), Date: types.MustParseDate("2025-02-05")},
		},
		Salaries: []ledger.Salary{
			{Amount: types.NewMoney(1000), Date: types.MustParseDate("2025-02-28")},
		},
		CarExpenses: []ledger.CarExpense{
			{Amount: types.NewMoney(200), Date: types.MustParseDate("2025-02-15")},
		},
	}
}

func TestBuildPeriodSummaries_Monthly(t *testing.T) {
	report := BuildPeriodSummaries(periodInputs(), BucketMonth)

	assert.Equal(t, BucketMonth, report.Bucketing)
	require.Len(t, report.Periods, 1)
	assert.Equal(t, 0, report.Unbucketed.Total())

	p := report.Periods[0]
	assert.Equal(t, "2025-02", p.PeriodKey)
	assert.Equal(t, "10000", p.SalesTotal.String())
	assert.Equal(t, "5000", p.PurchasesTotal.String())
	assert.Equal(t, "300", p.ExpensesTotal.String())
	assert.Equal(t, "1000", p.SalariesTotal.String())
	assert.Equal(t, "200", p.CarExpensesTotal.String())
	// 10000 - 5000 - 300 - 1000 - 200
	assert.Equal(t, "3500", p.ProfitLoss.String())
}

func TestBuildPeriodSummaries_Weekly(t *testing.T) {
	in := PeriodInputs{
		Sales: []ledger.SaleRecord{
			// Wed Jan 8 and Sun Jan 12 share the Monday Jan 6 bucket.
			{Amount: types.NewMoney(1000), Date: types.MustParseDate("2025-01-08")},
			{Amount: types.NewMoney(500), Date: types.MustParseDate("2025-01-12")},
			// Mon Jan 13 starts the next bucket.
			{Amount: types.NewMoney(700), Date: types.MustParseDate("2025-01-13")},
		},
	}

	report := BuildPeriodSummaries(in, BucketWeek)
	require.Len(t, report.Periods, 2)

	// Most recent bucket first.
	assert.Equal(t, "2025-01-13", report.Periods[0].PeriodKey)
	assert.Equal(t, "700", report.Periods[0].SalesTotal.String())
	assert.Equal(t, "2025-01-06", report.Periods[1].PeriodKey)
	assert.Equal(t, "1500", report.Periods[1].SalesTotal.String())
}

func TestBuildPeriodSummaries_MultipleMonthsSortedDesc(t *testing.T) {
	in := PeriodInputs{
		Sales: []ledger.SaleRecord{
			{Amount: types.NewMoney(100), Date: types.MustParseDate("2025-01-15")},
			{Amount: types.NewMoney(200), Date: types.MustParseDate("2025-03-15")},
			{Amount: types.NewMoney(300), Date: types.MustParseDate("2025-02-15")},
		},
	}

	report := BuildPeriodSummaries(in, BucketMonth)
	require.Len(t, report.Periods, 3)
	assert.Equal(t, "2025-03", report.Periods[0].PeriodKey)
	assert.Equal(t, "2025-02", report.Periods[1].PeriodKey)
	assert.Equal(t, "2025-01", report.Periods[2].PeriodKey)
}

func TestBuildPeriodSummaries_UnbucketedCounts(t *testing.T) {
	in := PeriodInputs{
		Sales: []ledger.SaleRecord{
			{Amount: types.NewMoney(1000), Date: types.MustParseDate("2025-02-10")},
			{Amount: types.NewMoney(500)}, // no date
		},
		Salaries: []ledger.Salary{
			{Amount: types.NewMoney(1000)}, // no date
		},
	}

	report := BuildPeriodSummaries(in, BucketMonth)
	require.Len(t, report.Periods, 1)

	assert.Equal(t, 1, report.Unbucketed.Sales)
	assert.Equal(t, 1, report.Unbucketed.Salaries)
	assert.Equal(t, 2, report.Unbucketed.Total())

	// The undated sale must not leak into any bucket.
	assert.Equal(t, "1000", report.Periods[0].SalesTotal.String())
}

func TestBuildPeriodSummaries_EmptyInputs(t *testing.T) {
	report := BuildPeriodSummaries(PeriodInputs{}, BucketMonth)
	assert.Empty(t, report.Periods)
	assert.Equal(t, 0, report.Unbucketed.Total())
}

func TestBuildPeriodSummaries_Idempotent(t *testing.T) {
	in := periodInputs()

	first := BuildPeriodSummaries(in, BucketMonth)
	second := BuildPeriodSummaries(in, BucketMonth)

	require.Equal(t, len(first.Periods), len(second.Periods))
	for i := range first.Periods {
		assert.Equal(t, first.Periods[i].PeriodKey, second.Periods[i].PeriodKey)
		assert.True(t, first.Periods[i].ProfitLoss.Equal(second.Periods[i].ProfitLoss))
	}
}
