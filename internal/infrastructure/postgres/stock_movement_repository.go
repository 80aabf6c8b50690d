package postgres

import (
	"context"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL
// (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create guarda un registro en stock_movements.
func (r *StockMovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, sku_id, movement_type, quantity, total_after, reserved_after, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.SkuID, mov.Type, mov.Quantity, mov.TotalAfter, mov.ReservedAfter, mov.OrderID, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// FindByFilter consulta el historial por SKU y periodo, más reciente primero.
func (r *StockMovementRepo) FindByFilter(ctx context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, sku_id, movement_type, quantity, total_after, reserved_after, COALESCE(order_id, ''), created_at
		FROM stock_movements
		WHERE ($1 = '' OR sku_id = $1)
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`

	var from, to any
	if !f.From.IsZero() {
		from = f.From
	}
	if !f.To.IsZero() {
		to = f.To
	}

	rows, err := r.q.Query(ctx, query, f.SkuID, from, to, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("find stock movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.SkuID, &m.Type, &m.Quantity, &m.TotalAfter, &m.ReservedAfter, &m.OrderID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stock movements: %w", err)
	}
	return out, nil
}
