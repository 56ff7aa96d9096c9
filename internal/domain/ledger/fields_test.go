package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matunda/internal/core/types"
)

func mustDate(t *testing.T, s string) types.Date {
	t.Helper()
	d, err := types.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestNormalizeSale_AliasResolution(t *testing.T) {
	tests := []struct {
		name string
		rec  map[string]any
	}{
		{
			name: "seller entry form spelling",
			rec: map[string]any{
				"fruitType": "mango",
				"quantity":  90.0,
				"amount":    4500.0,
				"unitPrice": 50.0,
				"date":      "2025-01-10",
				"stockName": "mango-1",
			},
		},
		{
			name: "snake case spelling",
			rec: map[string]any{
				"fruit_name": "mango",
				"qty":        90.0,
				"amount":     4500.0,
				"unit_price": 50.0,
				"sale_date":  "2025-01-10",
				"stock_name": "mango-1",
			},
		},
		{
			name: "legacy aliases",
			rec: map[string]any{
				"fruit":        "mango",
				"quantitySold": 90.0,
				"revenue":      4500.0,
				"unitPrice":    50.0,
				"date":         "2025-01-10",
				"stockName":    "mango-1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sale, warnings := NormalizeSale(tt.rec)
			assert.Empty(t, warnings)
			assert.Equal(t, "mango", sale.FruitType)
			assert.Equal(t, "90.0000", sale.Quantity.String())
			assert.Equal(t, "4500", sale.Amount.String())
			assert.Equal(t, "50", sale.UnitPrice.String())
			assert.Equal(t, "2025-01-10", sale.Date.String())
			assert.Equal(t, "mango-1", sale.StockNameRef)
		})
	}
}

func TestNormalizeSale_FirstAliasWins(t *testing.T) {
	sale, _ := NormalizeSale(map[string]any{
		"fruitType":  "mango",
		"fruit_name": "banana",
		"quantity":   1.0,
		"amount":     50.0,
	})
	assert.Equal(t, "mango", sale.FruitType)
}

func TestNormalizeSale_MissingNumericDefaultsToZero(t *testing.T) {
	sale, warnings := NormalizeSale(map[string]any{
		"fruitType": "mango",
		"date":      "2025-01-10",
	})

	assert.True(t, sale.Quantity.IsZero())
	assert.True(t, sale.Amount.IsZero())
	// One warning each for quantity and amount.
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, "DATA_QUALITY", w.Code)
	}
}

func TestNormalizeSale_NonNumericValue(t *testing.T) {
	sale, warnings := NormalizeSale(map[string]any{
		"fruitType": "mango",
		"quantity":  "ninety",
		"amount":    4500.0,
	})

	assert.True(t, sale.Quantity.IsZero())
	require.NotEmpty(t, warnings)
	assert.Equal(t, "quantity", warnings[0].Details["field"])
}

func TestNormalizeSale_NumericStringsAccepted(t *testing.T) {
	sale, warnings := NormalizeSale(map[string]any{
		"fruitType": "mango",
		"quantity":  "90.5",
		"amount":    "4525",
	})

	assert.Empty(t, warnings)
	assert.Equal(t, "90.5000", sale.Quantity.String())
	assert.Equal(t, "4525", sale.Amount.String())
}

func TestNormalizeSale_UnparsableDate(t *testing.T) {
	sale, warnings := NormalizeSale(map[string]any{
		"fruitType": "mango",
		"quantity":  90.0,
		"amount":    4500.0,
		"date":      "10/01/2025",
	})

	assert.True(t, sale.Date.IsZero())
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0].Message, "date")
}

func TestNormalizeSale_AmountMismatchWarns(t *testing.T) {
	sale, warnings := NormalizeSale(map[string]any{
		"fruitType": "mango",
		"quantity":  90.0,
		"unitPrice": 50.0,
		"amount":    4000.0, // 90 x 50 = 4500
	})

	// Recorded amount stays authoritative.
	assert.Equal(t, "4000", sale.Amount.String())
	require.NotEmpty(t, warnings)
	assert.Equal(t, "4000", warnings[0].Details["amount"])
	assert.Equal(t, "4500", warnings[0].Details["computed"])
}

func TestNormalizeSales_AccumulatesWarnings(t *testing.T) {
	sales, warnings := NormalizeSales([]map[string]any{
		{"fruitType": "mango", "quantity": 90.0, "amount": 4500.0},
		{"fruitType": "banana"},
	})

	require.Len(t, sales, 2)
	assert.NotEmpty(t, warnings)
	assert.Equal(t, "mango", sales[0].FruitType)
	assert.Equal(t, "banana", sales[1].FruitType)
}

func TestFilter_Matches(t *testing.T) {
	filter := Filter{}
	assert.True(t, filter.Matches(mustDate(t, "2025-01-10")))

	filter.FromDate = mustDate(t, "2025-01-05")
	filter.ToDate = mustDate(t, "2025-01-15")
	assert.True(t, filter.Matches(mustDate(t, "2025-01-05")))
	assert.True(t, filter.Matches(mustDate(t, "2025-01-15")))
	assert.False(t, filter.Matches(mustDate(t, "2025-01-04")))
	assert.False(t, filter.Matches(mustDate(t, "2025-01-16")))
}
