package stock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// ConfirmStockUseCase confirma las reservas de una orden tras el pago: el
// stock confirmado sale del sistema. Mismo protocolo en dos fases que la
// reserva; la condición de suficiencia es sobre lo reservado.
type ConfirmStockUseCase struct {
	txRunner  TxRunner
	publisher IntegrationEventPublisher
}

// NewConfirmStockUseCase construye el caso de uso.
func NewConfirmStockUseCase(txRunner TxRunner, publisher IntegrationEventPublisher) *ConfirmStockUseCase {
	return &ConfirmStockUseCase{txRunner: txRunner, publisher: publisher}
}

// Execute confirma las líneas de la orden, todo o nada.
func (uc *ConfirmStockUseCase) Execute(ctx context.Context, cmd command.ConfirmStockCommand, mctx integration.MessageContext) error {
	if len(cmd.Items) == 0 {
		return fmt.Errorf("%w: la orden %s no tiene líneas", domain.ErrInvalidQuantity, cmd.OrderID)
	}

	items := sortedItems(cmd.Items)
	skuIDs := skuIDsOf(items)

	var failure integration.Event

	err := uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, movRepo repository.StockMovementRepository) error {
		// Fase 1: locks en orden ascendente de SKU.
		invs, err := invRepo.FindAllBySkuIDForUpdate(ctx, skuIDs)
		if err != nil {
			return err
		}
		bySku := make(map[string]*entity.Inventory, len(invs))
		for _, inv := range invs {
			bySku[inv.SkuID()] = inv
		}

		var notFound []string
		for _, it := range items {
			if _, ok := bySku[it.SkuID]; !ok {
				notFound = append(notFound, it.SkuID)
			}
		}
		if len(notFound) > 0 {
			failure = integration.StockConfirmFailedEvent{
				OrderID:       cmd.OrderID,
				ReservationID: cmd.ReservationID,
				Reason:        fmt.Sprintf("%s: %v", integration.ReasonInventoryNotFound, notFound),
				CorrelationID: mctx.CorrelationID,
				CausationID:   mctx.CausationID,
			}
			return fmt.Errorf("%w: SKUs sin inventario: %v", domain.ErrNotFound, notFound)
		}

		// Reservado suficiente en cada línea, sin mutar.
		var insufficient []string
		for _, it := range items {
			inv := bySku[it.SkuID]
			if r := inv.Stock().Reserved(); r < it.Quantity {
				insufficient = append(insufficient, fmt.Sprintf("%s(solicitado=%d, reservado=%d)", it.SkuID, it.Quantity, r))
			}
		}
		if len(insufficient) > 0 {
			failure = integration.StockConfirmFailedEvent{
				OrderID:       cmd.OrderID,
				ReservationID: cmd.ReservationID,
				Reason:        fmt.Sprintf("%s: %s", integration.ReasonNotEnoughReserved, strings.Join(insufficient, ", ")),
				CorrelationID: mctx.CorrelationID,
				CausationID:   mctx.CausationID,
			}
			return fmt.Errorf("%w: reservado insuficiente: %v", domain.ErrInsufficientStock, insufficient)
		}

		// Fase 2: aplicar y persistir.
		for _, it := range items {
			inv := bySku[it.SkuID]
			if err := inv.Confirm(it.Quantity); err != nil {
				return err
			}
			if err := invRepo.Save(ctx, inv); err != nil {
				return err
			}
			if err := movRepo.Create(ctx, newMovement(inv, entity.MovementTypeCONFIRM, it.Quantity, cmd.OrderID)); err != nil {
				return err
			}
			inv.PullEvents()
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

	confirmed := make([]integration.Item, len(items))
	for i, it := range items {
		confirmed[i] = integration.Item{SkuID: it.SkuID, Quantity: it.Quantity}
	}
	return uc.publisher.Publish(ctx, integration.StockConfirmedEvent{
		OrderID:       cmd.OrderID,
		ReservationID: cmd.ReservationID,
		Items:         confirmed,
		CorrelationID: mctx.CorrelationID,
		CausationID:   mctx.CausationID,
	})
}
