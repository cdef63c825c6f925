// Package register_repo provides PostgreSQL implementations for register repositories.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"quipu/internal/core/id"
	"quipu/internal/domain/kardex"
	"quipu/internal/infrastructure/storage/postgres"
)

const kardexTable = "reg_kardex"

var kardexColumns = []string{
	"id", "product_id", "date", "type",
	"quantity", "unit_cost",
	"stock_before", "stock_after", "value_movement",
	"reason_code", "document_reference",
	"recorder_id", "recorder_type", "created_at",
}

// KardexRepo implements kardex.Repository over the reg_kardex table.
// The table is append-only; rows are never updated or deleted.
type KardexRepo struct {
	txManager *postgres.TxManager
	builder   squirrel.StatementBuilderType
}

var _ kardex.Repository = (*KardexRepo)(nil)

// NewKardexRepo creates a new kardex register repository.
func NewKardexRepo(txManager *postgres.TxManager) *KardexRepo {
	return &KardexRepo{
		txManager: txManager,
		builder:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create appends movements.
func (r *KardexRepo) Create(ctx context.Context, movements []*kardex.Movement) error {
	if len(movements) == 0 {
		return nil
	}

	// Fast path: COPY when inside a transaction.
	if tx := r.txManager.GetTx(ctx); tx != nil {
		inserter := postgres.NewBatchInserter(r.txManager)
		rows := make([][]any, 0, len(movements))
		for _, m := range movements {
			rows = append(rows, movementRow(m))
		}
		if _, err := inserter.CopyFromSlice(ctx, kardexTable, kardexColumns, rows); err != nil {
			return fmt.Errorf("copy movements: %w", err)
		}
		return nil
	}

	// Fallback: non-transactional insert. Prefer calling Create within tx.
	q := r.builder.Insert(kardexTable).Columns(kardexColumns...)
	for _, m := range movements {
		q = q.Values(movementRow(m)...)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movements: %w", err)
	}

	return nil
}

// ListByProduct returns movements ordered by date, then ID.
// The UUIDv7 ID preserves insertion order for same-date movements.
func (r *KardexRepo) ListByProduct(ctx context.Context, productID id.ID, period kardex.Period) ([]*kardex.Movement, error) {
	q := r.builder.Select(kardexColumns...).
		From(kardexTable).
		Where(squirrel.Eq{"product_id": productID})

	if period.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": *period.From})
	}
	if period.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": *period.To})
	}

	q = q.OrderBy("date", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []*kardex.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

// ListByRecorder returns the movements produced by one document.
func (r *KardexRepo) ListByRecorder(ctx context.Context, recorderID id.ID) ([]*kardex.Movement, error) {
	q := r.builder.Select(kardexColumns...).
		From(kardexTable).
		Where(squirrel.Eq{"recorder_id": recorderID}).
		OrderBy("date", "id")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var movements []*kardex.Movement
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}

	return movements, nil
}

func movementRow(m *kardex.Movement) []any {
	return []any{
		m.ID, m.ProductID, m.Date, m.Type,
		m.Quantity, m.UnitCost,
		m.StockBefore, m.StockAfter, m.ValueMovement,
		m.ReasonCode, m.DocumentReference,
		m.RecorderID, m.RecorderType, m.CreatedAt,
	}
}
