package stock

import (
	"context"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/dto"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// GetInventoryUseCase consultas de solo lectura, sin efectos.
type GetInventoryUseCase struct {
	invRepo repository.InventoryRepository
}

// NewGetInventoryUseCase construye el caso de uso con un repositorio atado al pool.
func NewGetInventoryUseCase(invRepo repository.InventoryRepository) *GetInventoryUseCase {
	return &GetInventoryUseCase{invRepo: invRepo}
}

// GetBySkuID devuelve el stock de un SKU; domain.ErrNotFound si no existe.
func (uc *GetInventoryUseCase) GetBySkuID(ctx context.Context, cmd command.GetInventoryCommand) (*dto.InventoryDTO, error) {
	inv, err := uc.invRepo.FindBySkuID(ctx, cmd.SkuID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("%w: SKU %s", domain.ErrNotFound, cmd.SkuID)
	}
	d := toDTO(inv)
	return &d, nil
}

// GetBySkuIDs consulta masiva. Los SKUs desconocidos se omiten del resultado
// en lugar de fallar la consulta completa.
func (uc *GetInventoryUseCase) GetBySkuIDs(ctx context.Context, cmd command.GetInventoriesCommand) ([]dto.InventoryDTO, error) {
	invs, err := uc.invRepo.FindAllBySkuID(ctx, cmd.SkuIDs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryDTO, len(invs))
	for i, inv := range invs {
		out[i] = toDTO(inv)
	}
	return out, nil
}

func toDTO(inv *entity.Inventory) dto.InventoryDTO {
	return dto.InventoryDTO{
		SkuID:          inv.SkuID(),
		TotalStock:     inv.Stock().Total(),
		ReservedStock:  inv.Stock().Reserved(),
		AvailableStock: inv.Stock().Available(),
	}
}
