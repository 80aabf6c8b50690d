package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/event"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// ReserveStockUseCase aparta stock para todas las líneas de una orden con el
// protocolo en dos fases: adquirir locks y validar sin mutar, y solo si todas
// las líneas pasan, aplicar y persistir. Una orden se reserva completa o no se
// reserva nada.
type ReserveStockUseCase struct {
	txRunner  TxRunner
	publisher IntegrationEventPublisher
}

// NewReserveStockUseCase construye el caso de uso.
func NewReserveStockUseCase(txRunner TxRunner, publisher IntegrationEventPublisher) *ReserveStockUseCase {
	return &ReserveStockUseCase{txRunner: txRunner, publisher: publisher}
}

// Execute reserva las líneas de la orden. En fallo de validación publica un
// único evento de fallo enumerando cada línea fallida y devuelve el error de
// dominio; en éxito publica StockReservedEvent. La publicación ocurre siempre
// después del Commit/Rollback.
func (uc *ReserveStockUseCase) Execute(ctx context.Context, cmd command.ReserveStockCommand, mctx integration.MessageContext) error {
	if len(cmd.Items) == 0 {
		return fmt.Errorf("%w: la orden %s no tiene líneas", domain.ErrInvalidQuantity, cmd.OrderID)
	}

	items := sortedItems(cmd.Items)
	skuIDs := skuIDsOf(items)

	var (
		failure  integration.Event
		reserved []integration.Item
	)

	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		// Fase 1: locks exclusivos sobre todas las filas, en orden ascendente de SKU.
		invs, err := invRepo.FindAllBySkuIDForUpdate(ctx, skuIDs)
		if err != nil {
			return err
		}
		bySku := make(map[string]*entity.Inventory, len(invs))
		for _, inv := range invs {
			bySku[inv.SkuID()] = inv
		}

		// SKUs sin registro de inventario: aborta la orden completa.
		var notFound []string
		var failedItems []integration.FailedItem
		for _, it := range items {
			if _, ok := bySku[it.SkuID]; !ok {
				notFound = append(notFound, it.SkuID)
				failedItems = append(failedItems, integration.FailedItem{
					SkuID:             it.SkuID,
					RequestedQuantity: it.Quantity,
				})
			}
		}
		if len(notFound) > 0 {
			failure = integration.StockReservationFailedEvent{
				OrderID:       cmd.OrderID,
				Reason:        integration.ReasonInventoryNotFound,
				FailedItems:   failedItems,
				CorrelationID: mctx.CorrelationID,
				CausationID:   mctx.CausationID,
			}
			return fmt.Errorf("%w: SKUs sin inventario: %v", domain.ErrNotFound, notFound)
		}

		// Disponibilidad de cada línea, sin mutar nada todavía.
		for _, it := range items {
			inv := bySku[it.SkuID]
			if avail := inv.Stock().Available(); avail < it.Quantity {
				a := avail
				failedItems = append(failedItems, integration.FailedItem{
					SkuID:             it.SkuID,
					RequestedQuantity: it.Quantity,
					AvailableQuantity: &a,
				})
			}
		}
		if len(failedItems) > 0 {
			skus := make([]string, len(failedItems))
			for i, fi := range failedItems {
				skus[i] = fi.SkuID
			}
			failure = integration.StockReservationFailedEvent{
				OrderID:       cmd.OrderID,
				Reason:        integration.ReasonNotEnoughStock,
				FailedItems:   failedItems,
				CorrelationID: mctx.CorrelationID,
				CausationID:   mctx.CausationID,
			}
			return fmt.Errorf("%w: la reserva falló para %d línea(s): %v", domain.ErrInsufficientStock, len(failedItems), skus)
		}

		// Fase 2: todas las líneas validaron; aplicar y persistir.
		for _, it := range items {
			inv := bySku[it.SkuID]
			if err := inv.Reserve(it.Quantity); err != nil {
				return err
			}
			if err := invRepo.Save(ctx, inv); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, newMovement(inv, entity.MovementTypeRESERVE, it.Quantity, cmd.OrderID)); err != nil {
				return err
			}
		}

		// Drenar eventos de dominio dentro de la transacción.
		for _, inv := range invs {
			for _, ev := range inv.PullEvents() {
				if r, ok := ev.(event.StockReserved); ok {
					reserved = append(reserved, integration.Item{SkuID: r.SkuID, Quantity: r.Quantity})
				}
			}
		}
		return nil
	})

	if err != nil {
		if failure != nil {
			if pubErr := uc.publisher.Publish(ctx, failure); pubErr != nil {
				return errors.Join(err, pubErr)
			}
		}
		return err
	}

	return uc.publisher.Publish(ctx, integration.StockReservedEvent{
		OrderID:       cmd.OrderID,
		Items:         reserved,
		CorrelationID: mctx.CorrelationID,
		CausationID:   mctx.CausationID,
	})
}
