// Package batch_repo provides the PostgreSQL implementation of the batch
// repository.
package batch_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"matunda/internal/core/apperror"
	"matunda/internal/core/id"
	"matunda/internal/domain/batch"
	"matunda/internal/infrastructure/storage/postgres"
)

const tableName = "stock_batches"

// Compile-time check that BatchRepo implements batch.Repository.
var _ batch.Repository = (*BatchRepo)(nil)

// BatchRepo stores stock batches in the stock_batches table.
type BatchRepo struct {
	txManager  *postgres.TxManager
	builder    squirrel.StatementBuilderType
	selectCols []string
}

// NewBatchRepo creates a new batch repository.
func NewBatchRepo(txManager *postgres.TxManager) *BatchRepo {
	return &BatchRepo{
		txManager:  txManager,
		builder:    squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		selectCols: postgres.ExtractDBColumns[batch.StockBatch](),
	}
}

// Create inserts a new batch.
func (r *BatchRepo) Create(ctx context.Context, b *batch.StockBatch) error {
	data := postgres.StructToMap(b)
	if len(data) == 0 {
		return fmt.Errorf("no db tags found in batch")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.
		Insert(tableName).
		SetMap(filteredData)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", tableName, err)
	}

	return nil
}

// GetByID retrieves a batch by id.
func (r *BatchRepo) GetByID(ctx context.Context, batchID id.ID) (*batch.StockBatch, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": batchID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var b batch.StockBatch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, &b, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("batch", batchID.String())
		}
		return nil, fmt.Errorf("get batch by id: %w", err)
	}

	return &b, nil
}

// Update persists a modified batch with optimistic locking. The version in
// the WHERE clause is the pre-Touch value: the loser of a concurrent
// double-close matches zero rows and gets a conflict, never a lost update.
func (r *BatchRepo) Update(ctx context.Context, b *batch.StockBatch) error {
	data := postgres.StructToMap(b)

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "created_at" || col == "version" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	q := r.builder.
		Update(tableName).
		SetMap(filteredData).
		Set("version", b.Version).
		Where(squirrel.Eq{"id": b.ID}).
		Where(squirrel.Eq{"version": b.Version - 1})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", tableName, err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification("batch", b.ID)
	}

	return nil
}

// ListOpen returns all batches with no recorded outflow, oldest intake
// first.
func (r *BatchRepo) ListOpen(ctx context.Context) ([]batch.StockBatch, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"date_out": nil}).
		OrderBy("date_in ASC", "created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []batch.StockBatch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list open batches: %w", err)
	}

	return items, nil
}

// List retrieves batches matching the filter, oldest intake first so the
// matching engine sees candidates in chronological order.
func (r *BatchRepo) List(ctx context.Context, filter batch.ListFilter) ([]batch.StockBatch, error) {
	q := r.baseSelect()

	if filter.FruitType != "" {
		q = q.Where(squirrel.Eq{"fruit_type": filter.FruitType})
	}
	if filter.OpenOnly {
		q = q.Where(squirrel.Eq{"date_out": nil})
	}
	if !filter.FromDate.IsZero() {
		q = q.Where(squirrel.GtOrEq{"date_in": filter.FromDate})
	}
	if !filter.ToDate.IsZero() {
		q = q.Where(squirrel.LtOrEq{"date_in": filter.ToDate})
	}

	q = q.OrderBy("date_in ASC", "created_at ASC")

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []batch.StockBatch
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}

	return items, nil
}

func (r *BatchRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder.
		Select(r.selectCols...).
		From(tableName)
}
