package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matunda/internal/core/types"
	"matunda/internal/domain/batch"
	"matunda/internal/domain/ledger"
)

func sale(fruitType string, qty, amount float64) ledger.SaleRecord {
	return ledger.SaleRecord{
		FruitType: fruitType,
		Quantity:  types.NewQuantityFromFloat64(qty),
		Amount:    types.NewMoney(amount),
		Date:      types.MustParseDate("2025-02-10"),
	}
}

func purchase(fruitType string, qty, amount float64) ledger.Purchase {
	return ledger.Purchase{
		FruitType: fruitType,
		Quantity:  types.NewQuantityFromFloat64(qty),
		Amount:    types.NewMoney(amount),
		Date:      types.MustParseDate("2025-02-01"),
	}
}

func TestComputeFruitProfitability(t *testing.T) {
	sales := []ledger.SaleRecord{
		sale("mango", 90, 8000),
		sale("banana", 50, 2000),
	}
	purchases := []ledger.Purchase{
		purchase("mango", 100, 5000),
		purchase("banana", 60, 1800),
	}

	report := ComputeFruitProfitability(sales, purchases, nil)
	require.Len(t, report.Items, 2)
	assert.False(t, report.UsedBatchFallback)
	assert.Empty(t, report.Warnings)

	// Sorted by profit desc: mango 3000, banana 200.
	mango := report.Items[0]
	assert.Equal(t, "mango", mango.FruitType)
	assert.Equal(t, "3000", mango.TotalProfit.String())
	assert.Equal(t, "37.5", mango.ProfitMargin.String())
	assert.Equal(t, 1, mango.SalesCount)
	assert.Equal(t, 1, mango.PurchaseCount)

	banana := report.Items[1]
	assert.Equal(t, "banana", banana.FruitType)
	assert.Equal(t, "200", banana.TotalProfit.String())
}

func TestComputeFruitProfitability_CaseInsensitiveGrouping(t *testing.T) {
	sales := []ledger.SaleRecord{
		sale("Mango", 40, 3000),
		sale("mango", 50, 5000),
		sale("MANGO", 10, 500),
	}
	purchases := []ledger.Purchase{
		purchase("mango", 100, 5000),
	}

	report := ComputeFruitProfitability(sales, purchases, nil)
	require.Len(t, report.Items, 1)

	// First spelling seen is kept for display.
	item := report.Items[0]
	assert.Equal(t, "Mango", item.FruitType)
	assert.Equal(t, "100.0000", item.SoldQuantity.String())
	assert.Equal(t, "8500", item.SoldAmount.String())
	assert.Equal(t, 3, item.SalesCount)
	assert.Equal(t, "3500", item.TotalProfit.String())
}

func TestComputeFruitProfitability_BatchFallback(t *testing.T) {
	sales := []ledger.SaleRecord{
		sale("mango", 90, 8000),
	}
	batches := []batch.StockBatch{
		*batch.NewStockBatch(batch.Intake{
			StockName:   "mango-1",
			FruitType:   "mango",
			DateIn:      types.MustParseDate("2025-02-01"),
			QuantityIn:  types.NewQuantityFromFloat64(100),
			AmountPerKg: types.MustMoney("50"),
		}),
	}

	report := ComputeFruitProfitability(sales, nil, batches)
	assert.True(t, report.UsedBatchFallback)
	require.Len(t, report.Items, 1)

	item := report.Items[0]
	assert.Equal(t, "5000", item.PurchasedAmount.String())
	assert.Equal(t, "100.0000", item.PurchasedQuantity.String())
	assert.Equal(t, "3000", item.TotalProfit.String())
}

func TestComputeFruitProfitability_ZeroSoldMargin(t *testing.T) {
	purchases := []ledger.Purchase{
		purchase("papaya", 30, 900),
	}

	report := ComputeFruitProfitability(nil, purchases, nil)
	require.Len(t, report.Items, 1)

	item := report.Items[0]
	assert.Equal(t, "-900", item.TotalProfit.String())
	// No division by zero: margin reported as 0.
	assert.True(t, item.ProfitMargin.IsZero())
}

func TestComputeFruitProfitability_MissingFruitTypeWarns(t *testing.T) {
	sales := []ledger.SaleRecord{
		sale("", 10, 500),
		sale("mango", 90, 8000),
	}

	report := ComputeFruitProfitability(sales, nil, nil)
	require.Len(t, report.Items, 1)
	assert.Equal(t, "mango", report.Items[0].FruitType)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "DATA_QUALITY", report.Warnings[0].Code)
}

func TestComputeFruitProfitability_SortStability(t *testing.T) {
	sales := []ledger.SaleRecord{
		sale("banana", 10, 1000),
		sale("apple", 10, 1000),
		sale("mango", 10, 2000),
	}

	report := ComputeFruitProfitability(sales, nil, nil)
	require.Len(t, report.Items, 3)

	// mango leads on profit; apple and banana tie and order alphabetically.
	assert.Equal(t, "mango", report.Items[0].FruitType)
	assert.Equal(t, "apple", report.Items[1].FruitType)
	assert.Equal(t, "banana", report.Items[2].FruitType)
}

func TestComputeFruitProfitability_Idempotent(t *testing.T) {
	sales := []ledger.SaleRecord{
		sale("mango", 90, 8000),
		sale("banana", 50, 2000),
	}
	purchases := []ledger.Purchase{
		purchase("mango", 100, 5000),
	}

	first := ComputeFruitProfitability(sales, purchases, nil)
	second := ComputeFruitProfitability(sales, purchases, nil)
	require.Equal(t, len(first.Items), len(second.Items))
	for i := range first.Items {
		assert.Equal(t, first.Items[i].FruitType, second.Items[i].FruitType)
		assert.True(t, first.Items[i].TotalProfit.Equal(second.Items[i].TotalProfit))
	}
}
