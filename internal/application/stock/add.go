package stock

import (
	"context"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// AddStockUseCase suma stock a uno o varios SKUs. Mismo patrón de lote que el
// ajuste: validación completa antes de aplicar.
type AddStockUseCase struct {
	txRunner TxRunner
}

// NewAddStockUseCase construye el caso de uso.
func NewAddStockUseCase(txRunner TxRunner) *AddStockUseCase {
	return &AddStockUseCase{txRunner: txRunner}
}

// AddSingle añade stock a un solo SKU (lote de uno).
func (uc *AddStockUseCase) AddSingle(ctx context.Context, cmd command.AddStockCommand) error {
	return uc.AddBulk(ctx, []command.AddStockCommand{cmd})
}

// AddBulk añade stock a varios SKUs, todo o nada.
func (uc *AddStockUseCase) AddBulk(ctx context.Context, cmds []command.AddStockCommand) error {
	if len(cmds) == 0 {
		return fmt.Errorf("%w: el lote de adiciones está vacío", domain.ErrInvalidQuantity)
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
			if err := inv.Increase(c.AddingQuantity); err != nil {
				return err
			}
			if err := invRepo.Save(ctx, inv); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, newMovement(inv, entity.MovementTypeADD, c.AddingQuantity, "")); err != nil {
				return err
			}
			inv.PullEvents()
		}
		return nil
	})
}
