package repository

import (
	"context"
	"time"

	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
)

// StockMovementFilter criterios para consultar el historial de movimientos.
type StockMovementFilter struct {
	SkuID  string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// StockMovementRepository persistencia del historial de transiciones de stock.
type StockMovementRepository interface {
	Create(ctx context.Context, mov *entity.StockMovement) error

	// FindByFilter devuelve movimientos ordenados por fecha descendente.
	FindByFilter(ctx context.Context, f StockMovementFilter) ([]*entity.StockMovement, error)
}
