package stock

import (
	"context"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// ReleaseStockUseCase devuelve las reservas de una orden al stock disponible
// (pago fallido o cancelación). Idempotente por diseño: un SKU sin registro se
// trata como ya liberado y se omite sin error. No publica eventos de fallo.
type ReleaseStockUseCase struct {
	txRunner TxRunner
}

// NewReleaseStockUseCase construye el caso de uso.
func NewReleaseStockUseCase(txRunner TxRunner) *ReleaseStockUseCase {
	return &ReleaseStockUseCase{txRunner: txRunner}
}

// Execute libera las líneas de la orden, todo o nada sobre los SKUs existentes.
func (uc *ReleaseStockUseCase) Execute(ctx context.Context, cmd command.CancelStockCommand, _ integration.MessageContext) error {
	if len(cmd.Items) == 0 {
		return nil
	}

	items := sortedItems(cmd.Items)
	skuIDs := skuIDsOf(items)

	return uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		// Fase 1: locks en orden ascendente de SKU. Los SKUs sin registro no
		// aparecen y se omiten: ya no hay nada que liberar.
		invs, err := invRepo.FindAllBySkuIDForUpdate(ctx, skuIDs)
		if err != nil {
			return err
		}
		bySku := make(map[string]*entity.Inventory, len(invs))
		for _, inv := range invs {
			bySku[inv.SkuID()] = inv
		}

		// Reservado suficiente en las líneas presentes, sin mutar.
		for _, it := range items {
			inv, ok := bySku[it.SkuID]
			if !ok {
				continue
			}
			if r := inv.Stock().Reserved(); r < it.Quantity {
				return fmt.Errorf("%w: no se puede liberar %d de %s (reservado: %d)", domain.ErrInsufficientStock, it.Quantity, it.SkuID, r)
			}
		}

		// Fase 2: aplicar y persistir.
		for _, it := range items {
			inv, ok := bySku[it.SkuID]
			if !ok {
				continue
			}
			if err := inv.CancelReservation(it.Quantity); err != nil {
				return err
			}
			if err := invRepo.Save(ctx, inv); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, newMovement(inv, entity.MovementTypeRELEASE, it.Quantity, cmd.OrderID)); err != nil {
				return err
			}
			inv.PullEvents()
		}
		return nil
	})
}
