package stock

import (
	"context"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// InitializeStockUseCase crea el inventario de un SKU recién dado de alta.
// Primera escritura gana: si el SKU ya tiene registro devuelve
// domain.ErrAlreadyInitialized sin tocar el registro existente. Con una fuente
// de mensajes at-least-once ese error es un resultado esperado, no un fallo.
type InitializeStockUseCase struct {
	txRunner TxRunner
}

// NewInitializeStockUseCase construye el caso de uso.
func NewInitializeStockUseCase(txRunner TxRunner) *InitializeStockUseCase {
	return &InitializeStockUseCase{txRunner: txRunner}
}

// Execute inicializa el stock del SKU con todo disponible (reservado = 0).
func (uc *InitializeStockUseCase) Execute(ctx context.Context, cmd command.InitStockCommand) error {
	return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		exists, err := invRepo.ExistsBySkuID(ctx, cmd.SkuID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: ya existe inventario para el SKU %s", domain.ErrAlreadyInitialized, cmd.SkuID)
		}

		inv, err := entity.NewInventory(cmd.SkuID, cmd.Quantity)
		if err != nil {
			return err
		}
		// El adaptador traduce la violación de unicidad a ErrAlreadyInitialized,
		// cubriendo la carrera entre el Exists y el Create.
		if err := invRepo.Create(ctx, inv); err != nil {
			return err
		}
		inv.PullEvents()
		return movRepo.Create(ctx, newMovement(inv, entity.MovementTypeINIT, cmd.Quantity, ""))
	})
}
