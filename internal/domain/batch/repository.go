package batch

import (
	"context"

	"matunda/internal/core/id"
	"matunda/internal/core/types"
)

// ListFilter narrows batch listings.
type ListFilter struct {
	FruitType string
	OpenOnly  bool

	// Date range applies to DateIn.
	FromDate types.Date
	ToDate   types.Date

	Limit  int
	Offset int
}

// Repository is the durable batch store. Update must enforce optimistic
// locking on Version so two concurrent close attempts cannot both succeed.
type Repository interface {
	Create(ctx context.Context, b *StockBatch) error
	GetByID(ctx context.Context, batchID id.ID) (*StockBatch, error)
	Update(ctx context.Context, b *StockBatch) error
	ListOpen(ctx context.Context) ([]StockBatch, error)
	List(ctx context.Context, filter ListFilter) ([]StockBatch, error)
}
