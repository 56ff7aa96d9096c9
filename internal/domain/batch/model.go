// Package batch provides the stock batch lifecycle: one purchased lot of a
// single fruit type, tracked from intake to disposal.
package batch

import (
	"context"
	"time"

	"matunda/internal/core/apperror"
	"matunda/internal/core/id"
	"matunda/internal/core/types"
)

// StockBatch is one purchased lot. It is Open between intake and outflow
// and Closed afterwards; once closed it is only ever read.
type StockBatch struct {
	ID id.ID `db:"id" json:"id"`

	// Intake fields, immutable after creation.
	StockName   string         `db:"stock_name" json:"stockName"`
	FruitType   string         `db:"fruit_type" json:"fruitType"`
	DateIn      types.Date     `db:"date_in" json:"dateIn"`
	QuantityIn  types.Quantity `db:"quantity_in" json:"quantityIn"`
	AmountPerKg types.Money    `db:"amount_per_kg" json:"amountPerKg"`

	// TotalAmount = QuantityIn * AmountPerKg, computed at creation.
	TotalAmount  types.Money `db:"total_amount" json:"totalAmount"`
	OtherCharges types.Money `db:"other_charges" json:"otherCharges"`

	// Gradient (ripening treatment) fields. All optional; cost derives
	// from amount used and cost per unit.
	GradientUsed        string      `db:"gradient_used" json:"gradientUsed,omitempty"`
	GradientAmountUsed  types.Money `db:"gradient_amount_used" json:"gradientAmountUsed"`
	GradientCostPerUnit types.Money `db:"gradient_cost_per_unit" json:"gradientCostPerUnit"`
	TotalGradientCost   types.Money `db:"total_gradient_cost" json:"totalGradientCost"`

	// Close fields, absent while the batch is open.
	DateOut     *types.Date     `db:"date_out" json:"dateOut,omitempty"`
	QuantityOut *types.Quantity `db:"quantity_out" json:"quantityOut,omitempty"`
	Duration    *int            `db:"duration" json:"duration,omitempty"`
	Spoilage    *types.Quantity `db:"spoilage" json:"spoilage,omitempty"`

	// TotalStockCost = TotalAmount + OtherCharges + TotalGradientCost,
	// computed at close.
	TotalStockCost types.Money `db:"total_stock_cost" json:"totalStockCost"`

	// Version for optimistic locking (incremented on each update).
	Version   int       `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Intake carries the fields required to open a batch.
type Intake struct {
	StockName    string         `json:"stockName"`
	FruitType    string         `json:"fruitType"`
	DateIn       types.Date     `json:"dateIn"`
	QuantityIn   types.Quantity `json:"quantityIn"`
	AmountPerKg  types.Money    `json:"amountPerKg"`
	OtherCharges types.Money    `json:"otherCharges"`
}

// Outflow carries the fields recorded when a batch is closed.
type Outflow struct {
	DateOut     types.Date     `json:"dateOut"`
	QuantityOut types.Quantity `json:"quantityOut"`

	GradientUsed        string      `json:"gradientUsed"`
	GradientAmountUsed  types.Money `json:"gradientAmountUsed"`
	GradientCostPerUnit types.Money `json:"gradientCostPerUnit"`
}

// NewStockBatch creates an Open batch from validated intake data.
func NewStockBatch(in Intake) *StockBatch {
	now := time.Now().UTC()
	return &StockBatch{
		ID:           id.New(),
		StockName:    in.StockName,
		FruitType:    in.FruitType,
		DateIn:       in.DateIn,
		QuantityIn:   in.QuantityIn,
		AmountPerKg:  in.AmountPerKg,
		TotalAmount:  in.AmountPerKg.Mul(in.QuantityIn.Decimal()),
		OtherCharges: in.OtherCharges,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsClosed reports whether outflow has been recorded.
func (b *StockBatch) IsClosed() bool {
	return b.DateOut != nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (b *StockBatch) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.Version++
}

// Validate checks intake invariants.
func (in Intake) Validate(ctx context.Context) error {
	if in.StockName == "" {
		return apperror.NewValidation("stock name is required").
			WithDetail("field", "stockName")
	}
	if in.FruitType == "" {
		return apperror.NewValidation("fruit type is required").
			WithDetail("field", "fruitType")
	}
	if in.DateIn.IsZero() {
		return apperror.NewValidation("date in is required").
			WithDetail("field", "dateIn")
	}
	if !in.QuantityIn.IsPositive() {
		return apperror.NewValidation("quantity in must be positive").
			WithDetail("field", "quantityIn")
	}
	if !in.AmountPerKg.IsPositive() {
		return apperror.NewValidation("amount per kg must be positive").
			WithDetail("field", "amountPerKg")
	}
	if in.OtherCharges.IsNegative() {
		return apperror.NewValidation("other charges cannot be negative").
			WithDetail("field", "otherCharges")
	}
	return nil
}

// ValidateAgainst checks outflow invariants against the batch being closed.
// A dateOut before dateIn and a quantityOut exceeding quantityIn are data
// entry errors, never silently clamped or accepted.
func (out Outflow) ValidateAgainst(b *StockBatch) error {
	if out.DateOut.IsZero() {
		return apperror.NewValidation("date out is required").
			WithDetail("field", "dateOut")
	}
	if out.DateOut.Before(b.DateIn) {
		return apperror.NewValidation("date out cannot be before date in").
			WithDetail("field", "dateOut").
			WithDetail("dateIn", b.DateIn.String()).
			WithDetail("dateOut", out.DateOut.String())
	}
	if out.QuantityOut.IsNegative() {
		return apperror.NewValidation("quantity out cannot be negative").
			WithDetail("field", "quantityOut")
	}
	if out.QuantityOut > b.QuantityIn {
		return apperror.NewValidation("quantity out cannot exceed quantity in").
			WithDetail("field", "quantityOut").
			WithDetail("quantityIn", b.QuantityIn.String()).
			WithDetail("quantityOut", out.QuantityOut.String())
	}
	if out.GradientAmountUsed.IsNegative() || out.GradientCostPerUnit.IsNegative() {
		return apperror.NewValidation("gradient fields cannot be negative").
			WithDetail("field", "gradient")
	}
	return nil
}

// GradientCost computes the treatment cost: amount * costPerUnit.
// Gradient treatment is optional, so a missing operand means zero cost,
// never an error.
func GradientCost(amountUsed, costPerUnit types.Money) types.Money {
	if amountUsed.IsZero() || costPerUnit.IsZero() {
		return types.Zero()
	}
	return amountUsed.Mul(costPerUnit)
}

// close applies validated outflow data and computes the derived close
// fields. Callers must have validated the outflow first.
func (b *StockBatch) close(out Outflow) {
	dateOut := out.DateOut
	quantityOut := out.QuantityOut
	duration := dateOut.DaysSince(b.DateIn)
	spoilage := b.QuantityIn.Sub(quantityOut)

	b.DateOut = &dateOut
	b.QuantityOut = &quantityOut
	b.Duration = &duration
	b.Spoilage = &spoilage

	b.GradientUsed = out.GradientUsed
	b.GradientAmountUsed = out.GradientAmountUsed
	b.GradientCostPerUnit = out.GradientCostPerUnit
	b.TotalGradientCost = GradientCost(out.GradientAmountUsed, out.GradientCostPerUnit)

	// Purchase cost stays in the total so the closed batch carries its
	// full balance-sheet cost.
	b.TotalStockCost = b.TotalAmount.
		Add(b.OtherCharges).
		Add(b.TotalGradientCost)
}

// EstimatedRevenue returns quantityOut * amountPerKg for a closed batch,
// zero while open. Used by the per-batch economics view.
func (b *StockBatch) EstimatedRevenue() types.Money {
	if b.QuantityOut == nil {
		return types.Zero()
	}
	return b.AmountPerKg.Mul(b.QuantityOut.Decimal())
}
