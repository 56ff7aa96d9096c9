// Package ledger_repo provides read-only PostgreSQL access to the ledger
// tables owned by the bookkeeping side of the business: sales, purchases,
// other expenses, salaries and car expenses. This package never writes.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"matunda/internal/domain/ledger"
	"matunda/internal/infrastructure/storage/postgres"
)

// Compile-time checks that LedgerRepo implements the ledger interfaces.
var (
	_ ledger.SalesLedger    = (*LedgerRepo)(nil)
	_ ledger.PurchaseLedger = (*LedgerRepo)(nil)
	_ ledger.ExpenseLedger  = (*LedgerRepo)(nil)
)

// LedgerRepo reads the bookkeeping tables.
type LedgerRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

// NewLedgerRepo creates a new ledger repository.
func NewLedgerRepo(txManager *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListSales returns sales in the date range, oldest first.
func (r *LedgerRepo) ListSales(ctx context.Context, filter ledger.Filter) ([]ledger.SaleRecord, error) {
	q := r.builder.
		Select(postgres.ExtractDBColumns[ledger.SaleRecord]()...).
		From("sales")
	q = applyDateFilter(q, filter, "date")
	q = q.OrderBy("date ASC")

	var items []ledger.SaleRecord
	if err := r.selectAll(ctx, q, &items); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return items, nil
}

// ListPurchases returns purchases in the date range, oldest first.
func (r *LedgerRepo) ListPurchases(ctx context.Context, filter ledger.Filter) ([]ledger.Purchase, error) {
	q := r.builder.
		Select(postgres.ExtractDBColumns[ledger.Purchase]()...).
		From("purchases")
	q = applyDateFilter(q, filter, "date")
	q = q.OrderBy("date ASC")

	var items []ledger.Purchase
	if err := r.selectAll(ctx, q, &items); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return items, nil
}

// ListOtherExpenses returns miscellaneous expenses in the date range.
func (r *LedgerRepo) ListOtherExpenses(ctx context.Context, filter ledger.Filter) ([]ledger.OtherExpense, error) {
	q := r.builder.
		Select(postgres.ExtractDBColumns[ledger.OtherExpense]()...).
		From("other_expenses")
	q = applyDateFilter(q, filter, "date")
	q = q.OrderBy("date ASC")

	var items []ledger.OtherExpense
	if err := r.selectAll(ctx, q, &items); err != nil {
		return nil, fmt.Errorf("list other expenses: %w", err)
	}
	return items, nil
}

// ListSalaries returns salary payments in the date range.
func (r *LedgerRepo) ListSalaries(ctx context.Context, filter ledger.Filter) ([]ledger.Salary, error) {
	q := r.builder.
		Select(postgres.ExtractDBColumns[ledger.Salary]()...).
		From("salaries")
	q = applyDateFilter(q, filter, "date")
	q = q.OrderBy("date ASC")

	var items []ledger.Salary
	if err := r.selectAll(ctx, q, &items); err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	return items, nil
}

// ListCarExpenses returns vehicle expenses in the date range.
func (r *LedgerRepo) ListCarExpenses(ctx context.Context, filter ledger.Filter) ([]ledger.CarExpense, error) {
	q := r.builder.
		Select(postgres.ExtractDBColumns[ledger.CarExpense]()...).
		From("car_expenses")
	q = applyDateFilter(q, filter, "date")
	q = q.OrderBy("date ASC")

	var items []ledger.CarExpense
	if err := r.selectAll(ctx, q, &items); err != nil {
		return nil, fmt.Errorf("list car expenses: %w", err)
	}
	return items, nil
}

func (r *LedgerRepo) selectAll(ctx context.Context, q squirrel.SelectBuilder, dest any) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, dest, sql, args...); err != nil {
		return err
	}
	return nil
}

func applyDateFilter(q squirrel.SelectBuilder, filter ledger.Filter, col string) squirrel.SelectBuilder {
	if !filter.FromDate.IsZero() {
		q = q.Where(squirrel.GtOrEq{col: filter.FromDate})
	}
	if !filter.ToDate.IsZero() {
		q = q.Where(squirrel.LtOrEq{col: filter.ToDate})
	}
	return q
}
