// Package reports provides the profitability and period reporting engines.
// Both are pure transformations over immutable input snapshots: they hold
// no state between calls, never mutate their inputs, and accumulate data
// quality warnings instead of failing on malformed rows.
package reports

import (
	"matunda/internal/core/types"
	"matunda/internal/domain/ledger"
)

// FruitProfitability is one row of the per-fruit profitability report.
type FruitProfitability struct {
	// FruitType keeps the original casing of the first record seen;
	// grouping is case-insensitive.
	FruitType string `json:"fruitType"`

	PurchasedQuantity types.Quantity `json:"purchasedQuantity"`
	PurchasedAmount   types.Money    `json:"purchasedAmount"`
	SoldQuantity      types.Quantity `json:"soldQuantity"`
	SoldAmount        types.Money    `json:"soldAmount"`

	// TotalProfit = SoldAmount - PurchasedAmount.
	TotalProfit types.Money `json:"totalProfit"`

	// ProfitMargin = TotalProfit / SoldAmount * 100, zero when nothing
	// was sold (never NaN).
	ProfitMargin types.Money `json:"profitMargin"`

	SalesCount    int `json:"salesCount"`
	PurchaseCount int `json:"purchaseCount"`
}

// ProfitabilityReport is the full per-fruit profitability result.
type ProfitabilityReport struct {
	Items []FruitProfitability `json:"items"`

	// UsedBatchFallback is set when no purchase rows were available and
	// purchased totals were derived from batch intake records instead.
	UsedBatchFallback bool `json:"usedBatchFallback"`

	Warnings []ledger.Warning `json:"warnings,omitempty"`
}

// Bucketing selects the period report window size.
type Bucketing string

const (
	BucketWeek  Bucketing = "week"
	BucketMonth Bucketing = "month"
)

// PeriodSummary is one calendar bucket of the period report.
type PeriodSummary struct {
	// PeriodKey is YYYY-MM for monthly buckets and the ISO week's Monday
	// (YYYY-MM-DD) for weekly buckets.
	PeriodKey string `json:"periodKey"`

	SalesTotal       types.Money `json:"salesTotal"`
	PurchasesTotal   types.Money `json:"purchasesTotal"`
	ExpensesTotal    types.Money `json:"expensesTotal"`
	SalariesTotal    types.Money `json:"salariesTotal"`
	CarExpensesTotal types.Money `json:"carExpensesTotal"`

	// ProfitLoss = sales - purchases - expenses - salaries - car expenses.
	ProfitLoss types.Money `json:"profitLoss"`
}

// UnbucketedCounts records inputs excluded from bucketing for missing or
// unparsable dates. Surfaced to the caller, never silently dropped.
type UnbucketedCounts struct {
	Sales       int `json:"sales"`
	Purchases   int `json:"purchases"`
	Expenses    int `json:"expenses"`
	Salaries    int `json:"salaries"`
	CarExpenses int `json:"carExpenses"`
}

// Total returns the number of excluded records across all categories.
func (u UnbucketedCounts) Total() int {
	return u.Sales + u.Purchases + u.Expenses + u.Salaries + u.CarExpenses
}

// PeriodReport is the full period summary result, most recent bucket first.
type PeriodReport struct {
	Bucketing  Bucketing        `json:"bucketing"`
	Periods    []PeriodSummary  `json:"periods"`
	Unbucketed UnbucketedCounts `json:"unbucketed"`
}

// PeriodInputs is the snapshot the period engine operates on.
type PeriodInputs struct {
	Sales       []ledger.SaleRecord
	Purchases   []ledger.Purchase
	Expenses    []ledger.OtherExpense
	Salaries    []ledger.Salary
	CarExpenses []ledger.CarExpense
}
