package ledger

import (
	"context"

	"matunda/internal/core/types"
)

// Filter narrows ledger listings to a date range. Zero bounds are open.
type Filter struct {
	FromDate types.Date
	ToDate   types.Date
}

// Matches reports whether a record date falls within the filter.
func (f Filter) Matches(d types.Date) bool {
	if !f.FromDate.IsZero() && d.Before(f.FromDate) {
		return false
	}
	if !f.ToDate.IsZero() && d.After(f.ToDate) {
		return false
	}
	return true
}

// SalesLedger provides read-only access to recorded sales.
type SalesLedger interface {
	ListSales(ctx context.Context, filter Filter) ([]SaleRecord, error)
}

// PurchaseLedger provides read-only access to recorded purchases.
type PurchaseLedger interface {
	ListPurchases(ctx context.Context, filter Filter) ([]Purchase, error)
}

// ExpenseLedger provides read-only access to the expense ledgers.
type ExpenseLedger interface {
	ListOtherExpenses(ctx context.Context, filter Filter) ([]OtherExpense, error)
	ListSalaries(ctx context.Context, filter Filter) ([]Salary, error)
	ListCarExpenses(ctx context.Context, filter Filter) ([]CarExpense, error)
}
