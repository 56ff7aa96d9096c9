package batch

import (
	"context"
	"fmt"

	"matunda/internal/core/apperror"
	"matunda/internal/core/id"
	"matunda/pkg/logger"
)

// Service provides business operations for the batch lifecycle. It owns
// batch mutation exclusively; every other component reads batches through
// snapshots.
type Service struct {
	repo Repository
}

// NewService creates a new batch lifecycle service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Open validates intake data, creates an Open batch and returns its id.
// The operation either fully succeeds or leaves the store untouched.
func (s *Service) Open(ctx context.Context, in Intake) (id.ID, error) {
	if err := in.Validate(ctx); err != nil {
		return id.Nil(), err
	}

	b := NewStockBatch(in)
	if err := s.repo.Create(ctx, b); err != nil {
		return id.Nil(), fmt.Errorf("create batch: %w", err)
	}

	logger.Info(ctx, "batch opened",
		"id", b.ID,
		"stock_name", b.StockName,
		"fruit_type", b.FruitType,
		"quantity_in", b.QuantityIn,
	)

	return b.ID, nil
}

// Close records outflow on an Open batch and computes duration, spoilage,
// gradient cost and total stock cost. Closing is not idempotent: a second
// close fails with BATCH_ALREADY_CLOSED rather than silently overwriting
// recorded spoilage. The repository's version check turns a concurrent
// double-close into a conflict for the loser.
func (s *Service) Close(ctx context.Context, batchID id.ID, out Outflow) (*StockBatch, error) {
	b, err := s.repo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	if b.IsClosed() {
		return nil, apperror.NewBatchClosed(batchID)
	}

	if err := out.ValidateAgainst(b); err != nil {
		return nil, err
	}

	b.close(out)
	b.Touch()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	logger.Info(ctx, "batch closed",
		"id", b.ID,
		"stock_name", b.StockName,
		"duration_days", *b.Duration,
		"spoilage", b.Spoilage.String(),
	)

	return b, nil
}

// GetByID retrieves a single batch.
func (s *Service) GetByID(ctx context.Context, batchID id.ID) (*StockBatch, error) {
	return s.repo.GetByID(ctx, batchID)
}

// ListOpen returns all batches still awaiting outflow (the "unmoved
// stock" view).
func (s *Service) ListOpen(ctx context.Context) ([]StockBatch, error) {
	return s.repo.ListOpen(ctx)
}

// List retrieves batches with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]StockBatch, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}
	return s.repo.List(ctx, filter)
}
