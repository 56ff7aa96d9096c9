package reports

import (
	"context"
	"fmt"

	"matunda/internal/core/apperror"
	"matunda/internal/domain/batch"
	"matunda/internal/domain/ledger"
	"matunda/internal/domain/matching"
	"matunda/pkg/logger"
)

// Service assembles report snapshots from the ledgers and the batch store
// and runs the pure aggregation engines over them. It never writes.
type Service struct {
	sales     ledger.SalesLedger
	purchases ledger.PurchaseLedger
	expenses  ledger.ExpenseLedger
	batches   batch.Repository
}

// NewService creates a new reporting service.
func NewService(sales ledger.SalesLedger, purchases ledger.PurchaseLedger, expenses ledger.ExpenseLedger, batches batch.Repository) *Service {
	return &Service{
		sales:     sales,
		purchases: purchases,
		expenses:  expenses,
		batches:   batches,
	}
}

// MatchedSales returns every sale in the range enriched with the batch
// that most plausibly supplied it.
func (s *Service) MatchedSales(ctx context.Context, filter ledger.Filter) ([]matching.MatchedSale, error) {
	sales, err := s.sales.ListSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	batches, err := s.batches.List(ctx, batch.ListFilter{Limit: 1000})
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	matched := matching.ResolveAll(sales, batches)

	unresolved := 0
	for _, m := range matched {
		if m.Confidence == matching.ConfidenceNone {
			unresolved++
		}
	}
	if unresolved > 0 {
		logger.Warn(ctx, "sales with no candidate batch",
			"unresolved", unresolved,
			"total", len(matched),
		)
	}

	return matched, nil
}

// FruitProfitability aggregates profitability per fruit type over the
// given range.
func (s *Service) FruitProfitability(ctx context.Context, filter ledger.Filter) (*ProfitabilityReport, error) {
	sales, err := s.sales.ListSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	purchases, err := s.purchases.ListPurchases(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}

	var batches []batch.StockBatch
	if len(purchases) == 0 {
		batches, err = s.batches.List(ctx, batch.ListFilter{
			FromDate: filter.FromDate,
			ToDate:   filter.ToDate,
			Limit:    1000,
		})
		if err != nil {
			return nil, fmt.Errorf("list batches: %w", err)
		}
	}

	report := ComputeFruitProfitability(sales, purchases, batches)
	if len(report.Warnings) > 0 {
		logger.Warn(ctx, "profitability report has data quality warnings",
			"warnings", len(report.Warnings),
		)
	}

	return &report, nil
}

// PeriodSummaries buckets all financial activity in the range by week or
// month. An unknown bucketing value is a validation error.
func (s *Service) PeriodSummaries(ctx context.Context, filter ledger.Filter, bucketing Bucketing) (*PeriodReport, error) {
	switch bucketing {
	case BucketWeek, BucketMonth:
	default:
		return nil, apperror.NewValidation("bucket must be 'week' or 'month'").
			WithDetail("bucket", string(bucketing))
	}

	sales, err := s.sales.ListSales(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	purchases, err := s.purchases.ListPurchases(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	expenses, err := s.expenses.ListOtherExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list other expenses: %w", err)
	}
	salaries, err := s.expenses.ListSalaries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list salaries: %w", err)
	}
	carExpenses, err := s.expenses.ListCarExpenses(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list car expenses: %w", err)
	}

	report := BuildPeriodSummaries(PeriodInputs{
		Sales:       sales,
		Purchases:   purchases,
		Expenses:    expenses,
		Salaries:    salaries,
		CarExpenses: carExpenses,
	}, bucketing)

	if report.Unbucketed.Total() > 0 {
		logger.Warn(ctx, "records excluded from period report for missing dates",
			"excluded", report.Unbucketed.Total(),
		)
	}

	return &report, nil
}
