// Package snapshot_repo persists periodic report snapshots. Snapshots are
// written wholesale on a schedule, so inserts go through the COPY protocol
// instead of row-by-row INSERTs.
package snapshot_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"matunda/internal/domain/reports"
	"matunda/internal/infrastructure/storage/postgres"
)

const tableName = "report_snapshots"

var copyColumns = []string{
	"bucketing",
	"period_key",
	"sales_total",
	"purchases_total",
	"expenses_total",
	"salaries_total",
	"car_expenses_total",
	"profit_loss",
	"generated_at",
}

// SnapshotRepo stores generated period reports.
type SnapshotRepo struct {
	txManager *postgres.TxManager
}

// NewSnapshotRepo creates a new snapshot repository.
func NewSnapshotRepo(txManager *postgres.TxManager) *SnapshotRepo {
	return &SnapshotRepo{txManager: txManager}
}

// SavePeriodReport replaces the stored snapshot for the report's bucketing.
// The delete and the COPY run in one transaction so readers never observe a
// half-written snapshot.
func (r *SnapshotRepo) SavePeriodReport(ctx context.Context, report *reports.PeriodReport) (int64, error) {
	generatedAt := time.Now().UTC()

	rows := make([][]any, 0, len(report.Periods))
	for _, p := range report.Periods {
		rows = append(rows, []any{
			string(report.Bucketing),
			p.PeriodKey,
			p.SalesTotal,
			p.PurchasesTotal,
			p.ExpensesTotal,
			p.SalariesTotal,
			p.CarExpensesTotal,
			p.ProfitLoss,
			generatedAt,
		})
	}

	var inserted int64
	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		tx := r.txManager.GetTx(ctx)
		if tx == nil {
			return fmt.Errorf("no transaction in context")
		}

		if _, err := tx.Exec(ctx,
			"DELETE FROM "+tableName+" WHERE bucketing = $1",
			string(report.Bucketing),
		); err != nil {
			return fmt.Errorf("clear previous snapshot: %w", err)
		}

		n, err := tx.CopyFrom(ctx, pgx.Identifier{tableName}, copyColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copy snapshot rows: %w", err)
		}
		inserted = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save period report snapshot: %w", err)
	}

	return inserted, nil
}
