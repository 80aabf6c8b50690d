package stock

import (
	"context"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// AdjustStockUseCase fija el total de uno o varios SKUs en valores absolutos
// (operación administrativa, sin semántica de reservas). El lote se valida
// completo antes de aplicar: un SKU inexistente aborta todo el lote.
type AdjustStockUseCase struct {
	txRunner TxRunner
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner}
}

// AdjustSingle ajusta un solo SKU (lote de uno).
func (uc *AdjustStockUseCase) AdjustSingle(ctx context.Context, cmd command.AdjustStockCommand) error {
	return uc.AdjustBulk(ctx, []command.AdjustStockCommand{cmd})
}

// AdjustBulk ajusta varios SKUs, todo o nada.
func (uc *AdjustStockUseCase) AdjustBulk(ctx context.Context, cmds []command.AdjustStockCommand) error {
	if len(cmds) == 0 {
		return fmt.Errorf("%w: el lote de ajustes está vacío", domain.ErrInvalidQuantity)
	}

	skuIDs := make([]string, len(cmds))
	for i, c := range cmds {
		skuIDs[i] = c.SkuID
	}

	return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		invs, err := invRepo.FindAllBySkuID(ctx, skuIDs)
		if err != nil {
			return err
		}
		bySku := make(map[string]*entity.Inventory, len(invs))
		for _, inv := range invs {
			bySku[inv.SkuID()] = inv
		}

		if missing := missingSkuIDs(skuIDs, bySku); len(missing) > 0 {
			return fmt.Errorf("%w: SKUs sin inventario: %v", domain.ErrNotFound, missing)
		}

		for _, c := range cmds {
			inv := bySku[c.SkuID]
			if err := inv.Adjust(c.Quantity); err != nil {
				return err
			}
			if err := invRepo.Save(ctx, inv); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, newMovement(inv, entity.MovementTypeADJUST, c.Quantity, "")); err != nil {
				return err
			}
			inv.PullEvents()
		}
		return nil
	})
}

// missingSkuIDs devuelve, en el orden pedido, los SKUs sin inventario.
func missingSkuIDs(skuIDs []string, bySku map[string]*entity.Inventory) []string {
	var missing []string
	for _, id := range skuIDs {
		if _, ok := bySku[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
