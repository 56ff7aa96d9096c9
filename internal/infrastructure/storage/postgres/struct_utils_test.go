package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"matunda/internal/core/id"
	"matunda/internal/core/types"
	"matunda/internal/domain/batch"
)

func TestExtractDBColumns_StockBatch(t *testing.T) {
	cols := ExtractDBColumns[batch.StockBatch]()

	expectedCols := []string{
		"id", "stock_name", "fruit_type", "date_in", "quantity_in",
		"amount_per_kg", "total_amount", "other_charges",
		"gradient_used", "gradient_amount_used", "gradient_cost_per_unit",
		"total_gradient_cost", "date_out", "quantity_out", "duration",
		"spoilage", "total_stock_cost", "version", "created_at", "updated_at",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap_StockBatch(t *testing.T) {
	b := batch.StockBatch{
		ID:          id.New(),
		StockName:   "mango-jan-1",
		FruitType:   "mango",
		DateIn:      types.MustParseDate("2025-01-01"),
		QuantityIn:  types.NewQuantityFromFloat64(100),
		AmountPerKg: types.MustMoney("50"),
		TotalAmount: types.MustMoney("5000"),
		Version:     1,
	}

	m := StructToMap(b)

	assert.Equal(t, b.ID, m["id"])
	assert.Equal(t, "mango-jan-1", m["stock_name"])
	assert.Equal(t, "mango", m["fruit_type"])
	assert.Equal(t, b.DateIn, m["date_in"])
	assert.Equal(t, b.QuantityIn, m["quantity_in"])
	assert.Equal(t, 1, m["version"])

	// Open batch: close fields map to typed nils.
	assert.Contains(t, m, "date_out")
	assert.Nil(t, m["date_out"].(*types.Date))
}
