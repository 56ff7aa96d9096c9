package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matunda/internal/core/apperror"
	"matunda/internal/core/id"
	"matunda/internal/core/types"
)

func validIntake() Intake {
	return Intake{
		StockName:    "mango-jan-1",
		FruitType:    "mango",
		DateIn:       types.MustParseDate("2025-01-01"),
		QuantityIn:   types.NewQuantityFromFloat64(100),
		AmountPerKg:  types.MustMoney("50"),
		OtherCharges: types.MustMoney("200"),
	}
}

func TestNewStockBatch(t *testing.T) {
	b := NewStockBatch(validIntake())

	assert.False(t, id.IsNil(b.ID))
	assert.Equal(t, "100", b.QuantityIn.Decimal().String())
	assert.Equal(t, "5000", b.TotalAmount.String())
	assert.Equal(t, 1, b.Version)
	assert.False(t, b.IsClosed())
	assert.Nil(t, b.DateOut)
	assert.Nil(t, b.Duration)
}

func TestIntake_Validate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*Intake)
		field  string
	}{
		{"missing stock name", func(in *Intake) { in.StockName = "" }, "stockName"},
		{"missing fruit type", func(in *Intake) { in.FruitType = "" }, "fruitType"},
		{"missing date in", func(in *Intake) { in.DateIn = types.Date{} }, "dateIn"},
		{"zero quantity", func(in *Intake) { in.QuantityIn = 0 }, "quantityIn"},
		{"negative quantity", func(in *Intake) { in.QuantityIn = types.NewQuantityFromFloat64(-1) }, "quantityIn"},
		{"zero price", func(in *Intake) { in.AmountPerKg = types.Zero() }, "amountPerKg"},
		{"negative charges", func(in *Intake) { in.OtherCharges = types.MustMoney("-1") }, "otherCharges"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validIntake()
			tt.mutate(&in)

			err := in.Validate(ctx)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, appErr.Details["field"])
		})
	}

	assert.NoError(t, validIntake().Validate(ctx))
}

func TestOutflow_ValidateAgainst(t *testing.T) {
	b := NewStockBatch(validIntake())

	valid := Outflow{
		DateOut:     types.MustParseDate("2025-01-08"),
		QuantityOut: types.NewQuantityFromFloat64(90),
	}
	assert.NoError(t, valid.ValidateAgainst(b))

	tests := []struct {
		name   string
		mutate func(*Outflow)
	}{
		{"missing date out", func(o *Outflow) { o.DateOut = types.Date{} }},
		{"date out before date in", func(o *Outflow) { o.DateOut = types.MustParseDate("2024-12-31") }},
		{"negative quantity out", func(o *Outflow) { o.QuantityOut = types.NewQuantityFromFloat64(-5) }},
		{"quantity out exceeds quantity in", func(o *Outflow) { o.QuantityOut = types.NewQuantityFromFloat64(101) }},
		{"negative gradient amount", func(o *Outflow) { o.GradientAmountUsed = types.MustMoney("-1") }},
		{"negative gradient cost", func(o *Outflow) { o.GradientCostPerUnit = types.MustMoney("-1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := valid
			tt.mutate(&out)

			err := out.ValidateAgainst(b)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}

	// Same-day close and full sell-through are legal.
	sameDay := Outflow{DateOut: b.DateIn, QuantityOut: b.QuantityIn}
	assert.NoError(t, sameDay.ValidateAgainst(b))
}

func TestGradientCost(t *testing.T) {
	assert.True(t, GradientCost(types.Zero(), types.MustMoney("10")).IsZero())
	assert.True(t, GradientCost(types.MustMoney("5"), types.Zero()).IsZero())
	assert.Equal(t, "50", GradientCost(types.MustMoney("5"), types.MustMoney("10")).String())
}

func TestStockBatch_Close(t *testing.T) {
	b := NewStockBatch(validIntake())

	b.close(Outflow{
		DateOut:             types.MustParseDate("2025-01-08"),
		QuantityOut:         types.NewQuantityFromFloat64(90),
		GradientUsed:        "calcium carbide",
		GradientAmountUsed:  types.MustMoney("5"),
		GradientCostPerUnit: types.MustMoney("10"),
	})

	require.True(t, b.IsClosed())
	assert.Equal(t, 7, *b.Duration)
	assert.Equal(t, "10.0000", b.Spoilage.String())
	assert.Equal(t, "50", b.TotalGradientCost.String())
	// 5000 purchase + 200 other charges + 50 gradient
	assert.Equal(t, "5250", b.TotalStockCost.String())
	assert.Equal(t, "4500", b.EstimatedRevenue().String())
}

func TestStockBatch_CloseFullSellThrough(t *testing.T) {
	b := NewStockBatch(validIntake())

	b.close(Outflow{
		DateOut:     types.MustParseDate("2025-01-01"),
		QuantityOut: types.NewQuantityFromFloat64(100),
	})

	assert.Equal(t, 0, *b.Duration)
	assert.True(t, b.Spoilage.IsZero())
	assert.True(t, b.TotalGradientCost.IsZero())
	assert.Equal(t, "5200", b.TotalStockCost.String())
}

func TestStockBatch_EstimatedRevenueOpen(t *testing.T) {
	b := NewStockBatch(validIntake())
	assert.True(t, b.EstimatedRevenue().IsZero())
}
