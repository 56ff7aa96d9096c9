// Package ledger defines the externally-owned records this core consumes
// read-only: sales, purchases, other expenses, salaries, car expenses.
// Records arrive from several producers with inconsistent field spellings;
// normalization lives in fields.go.
package ledger

import (
	"matunda/internal/core/types"
)

// SaleRecord is a sale as recorded in the sales ledger.
// Most entry paths do not carry a hard link to the stock batch that
// supplied the sale; StockNameRef is set only when the seller picked the
// batch explicitly.
type SaleRecord struct {
	FruitType    string         `db:"fruit_name" json:"fruitType"`
	Quantity     types.Quantity `db:"qty" json:"quantity"`
	UnitPrice    types.Money    `db:"unit_price" json:"unitPrice"`
	Amount       types.Money    `db:"amount" json:"amount"`
	Date         types.Date     `db:"date" json:"date"`
	CustomerName string         `db:"customer_name" json:"customerName,omitempty"`
	SellerID     string         `db:"seller_id" json:"sellerIdentity,omitempty"`

	// StockNameRef, when present, bypasses batch matching entirely.
	StockNameRef string `db:"stock_name" json:"stockNameRef,omitempty"`
}

// Purchase is a purchase ledger row (what was bought, per fruit type).
type Purchase struct {
	FruitType string         `db:"fruit_type" json:"fruitType"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	Amount    types.Money    `db:"amount" json:"amount"`
	Date      types.Date     `db:"date" json:"date"`
}

// OtherExpense is a miscellaneous business expense.
type OtherExpense struct {
	Category string      `db:"category" json:"category,omitempty"`
	Amount   types.Money `db:"amount" json:"amount"`
	Date     types.Date  `db:"date" json:"date"`
}

// Salary is a salary payment row.
type Salary struct {
	EmployeeName string      `db:"employee_name" json:"employeeName,omitempty"`
	Amount       types.Money `db:"amount" json:"amount"`
	Date         types.Date  `db:"date" json:"date"`
}

// CarExpense is a vehicle running cost row.
type CarExpense struct {
	Description string      `db:"description" json:"description,omitempty"`
	Amount      types.Money `db:"amount" json:"amount"`
	Date        types.Date  `db:"date" json:"date"`
}

// Warning is a non-fatal data quality finding. Aggregations accumulate
// warnings alongside their results so a single malformed row cannot blank
// an entire report.
type Warning struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// NewWarning creates a data quality warning.
func NewWarning(message string) Warning {
	return Warning{Code: "DATA_QUALITY", Message: message}
}

// WithDetail adds a key-value pair to the warning details.
func (w Warning) WithDetail(key string, value any) Warning {
	if w.Details == nil {
		w.Details = make(map[string]any)
	}
	w.Details[key] = value
	return w
}
