package stock

import (
	"context"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// ReduceStockUseCase resta stock de uno o varios SKUs sin tocar lo reservado.
// Mismo patrón de lote que el ajuste: validación completa antes de aplicar.
type ReduceStockUseCase struct {
	txRunner TxRunner
}

// NewReduceStockUseCase construye el caso de uso.
func NewReduceStockUseCase(txRunner TxRunner) *ReduceStockUseCase {
	return &ReduceStockUseCase{txRunner: txRunner}
}

// ReduceSingle reduce un solo SKU (lote de uno).
func (uc *ReduceStockUseCase) ReduceSingle(ctx context.Context, cmd command.ReduceStockCommand) error {
	return uc.ReduceBulk(ctx, []command.ReduceStockCommand{cmd})
}

// ReduceBulk reduce varios SKUs, todo o nada.
func (uc *ReduceStockUseCase) ReduceBulk(ctx context.Context, cmds []command.ReduceStockCommand) error {
	if len(cmds) == 0 {
		return fmt.Errorf("%w: el lote de reducciones está vacío", domain.ErrInvalidQuantity)
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
			if err := inv.Decrease(c.ReducingQuantity); err != nil {
				return err
			}
			if err := invRepo.Save(ctx, inv); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, newMovement(inv, entity.MovementTypeREDUCE, c.ReducingQuantity, "")); err != nil {
				return err
			}
			inv.PullEvents()
		}
		return nil
	})
}
