package stock

import (
	"context"

	"github.com/koosco-commerce/inventory-service/internal/application/dto"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// GetStockMovementsUseCase consulta administrativa del historial de cambios de stock.
type GetStockMovementsUseCase struct {
	movRepo repository.StockMovementRepository
}

// NewGetStockMovementsUseCase construye el caso de uso con un repositorio atado al pool.
func NewGetStockMovementsUseCase(movRepo repository.StockMovementRepository) *GetStockMovementsUseCase {
	return &GetStockMovementsUseCase{movRepo: movRepo}
}

// GetByFilter devuelve el historial filtrado por SKU y periodo, paginado.
func (uc *GetStockMovementsUseCase) GetByFilter(ctx context.Context, f repository.StockMovementFilter) ([]dto.StockMovementDTO, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}
	movs, err := uc.movRepo.FindByFilter(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementDTO, len(movs))
	for i, m := range movs {
		out[i] = dto.StockMovementDTO{
			ID:            m.ID,
			SkuID:         m.SkuID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			TotalAfter:    m.TotalAfter,
			ReservedAfter: m.ReservedAfter,
			OrderID:       m.OrderID,
			CreatedAt:     m.CreatedAt,
		}
	}
	return out, nil
}
