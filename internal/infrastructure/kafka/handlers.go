package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
	"github.com/koosco-commerce/inventory-service/internal/domain"
)

// IdempotencyGuard decide si un mensaje ya fue procesado para una operación
// y un pedido dados. Una implementación degradada puede responder siempre
// true (sin deduplicación) cuando el backend no está disponible.
type IdempotencyGuard interface {
	FirstDelivery(ctx context.Context, operation, orderID string) (bool, error)
}

// messageContext arma el contexto de correlación de un evento entrante:
// el correlationId del payload manda; si falta, se hereda el de la
// envoltura y en último caso el id del propio mensaje.
func messageContext(ce CloudEvent, payloadCorrelationID string) integration.MessageContext {
	correlationID := payloadCorrelationID
	if correlationID == "" {
		correlationID = ce.CorrelationID
	}
	if correlationID == "" {
		correlationID = ce.ID
	}
	return integration.MessageContext{
		CorrelationID: correlationID,
		CausationID:   ce.ID,
	}
}

func toOrderItems(items []OrderItemMessage) []command.OrderItem {
	out := make([]command.OrderItem, len(items))
	for i, it := range items {
		out[i] = command.OrderItem{SkuID: it.SkuID, Quantity: it.Quantity}
	}
	return out
}

// OrderPlacedHandler reserva stock cuando orders publica un pedido nuevo.
type OrderPlacedHandler struct {
	reserve *stock.ReserveStockUseCase
	guard   IdempotencyGuard
	log     zerolog.Logger
}

func NewOrderPlacedHandler(reserve *stock.ReserveStockUseCase, guard IdempotencyGuard, log zerolog.Logger) *OrderPlacedHandler {
	return &OrderPlacedHandler{reserve: reserve, guard: guard, log: log}
}

func (h *OrderPlacedHandler) Handle(ctx context.Context, ce CloudEvent) error {
	var msg OrderPlacedMessage
	if err := json.Unmarshal(ce.Data, &msg); err != nil {
		return fmt.Errorf("%w: payload de pedido ilegible: %v", errMensajeInvalido, err)
	}
	if msg.OrderID == "" {
		return fmt.Errorf("%w: el pedido no trae orderId", errMensajeInvalido)
	}

	first, err := h.guard.FirstDelivery(ctx, "reserve", msg.OrderID)
	if err != nil {
		h.log.Warn().Err(err).Str("order_id", msg.OrderID).
			Msg("guardia de idempotencia no disponible, se procesa igual")
	} else if !first {
		h.log.Info().Str("order_id", msg.OrderID).Msg("reserva ya procesada, entrega duplicada")
		return nil
	}

	cmd := command.ReserveStockCommand{
		OrderID: msg.OrderID,
		Items:   toOrderItems(msg.Items),
	}
	return h.reserve.Execute(ctx, cmd, messageContext(ce, msg.CorrelationID))
}

// OrderConfirmedHandler consolida reservas cuando el pedido se paga.
type OrderConfirmedHandler struct {
	confirm *stock.ConfirmStockUseCase
	guard   IdempotencyGuard
	log     zerolog.Logger
}

func NewOrderConfirmedHandler(confirm *stock.ConfirmStockUseCase, guard IdempotencyGuard, log zerolog.Logger) *OrderConfirmedHandler {
	return &OrderConfirmedHandler{confirm: confirm, guard: guard, log: log}
}

func (h *OrderConfirmedHandler) Handle(ctx context.Context, ce CloudEvent) error {
	var msg OrderConfirmedMessage
	if err := json.Unmarshal(ce.Data, &msg); err != nil {
		return fmt.Errorf("%w: payload de confirmación ilegible: %v", errMensajeInvalido, err)
	}
	if msg.OrderID == "" {
		return fmt.Errorf("%w: la confirmación no trae orderId", errMensajeInvalido)
	}

	first, err := h.guard.FirstDelivery(ctx, "confirm", msg.OrderID)
	if err != nil {
		h.log.Warn().Err(err).Str("order_id", msg.OrderID).
			Msg("guardia de idempotencia no disponible, se procesa igual")
	} else if !first {
		h.log.Info().Str("order_id", msg.OrderID).Msg("confirmación ya procesada, entrega duplicada")
		return nil
	}

	cmd := command.ConfirmStockCommand{
		OrderID:       msg.OrderID,
		ReservationID: msg.ReservationID,
		Items:         toOrderItems(msg.Items),
	}
	return h.confirm.Execute(ctx, cmd, messageContext(ce, msg.CorrelationID))
}

// OrderCancelledHandler libera las reservas de pedidos cancelados.
type OrderCancelledHandler struct {
	release *stock.ReleaseStockUseCase
	guard   IdempotencyGuard
	log     zerolog.Logger
}

func NewOrderCancelledHandler(release *stock.ReleaseStockUseCase, guard IdempotencyGuard, log zerolog.Logger) *OrderCancelledHandler {
	return &OrderCancelledHandler{release: release, guard: guard, log: log}
}

func (h *OrderCancelledHandler) Handle(ctx context.Context, ce CloudEvent) error {
	var msg OrderCancelledMessage
	if err := json.Unmarshal(ce.Data, &msg); err != nil {
		return fmt.Errorf("%w: payload de cancelación ilegible: %v", errMensajeInvalido, err)
	}
	if msg.OrderID == "" {
		return fmt.Errorf("%w: la cancelación no trae orderId", errMensajeInvalido)
	}

	first, err := h.guard.FirstDelivery(ctx, "release", msg.OrderID)
	if err != nil {
		h.log.Warn().Err(err).Str("order_id", msg.OrderID).
			Msg("guardia de idempotencia no disponible, se procesa igual")
	} else if !first {
		h.log.Info().Str("order_id", msg.OrderID).Msg("liberación ya procesada, entrega duplicada")
		return nil
	}

	cmd := command.CancelStockCommand{
		OrderID: msg.OrderID,
		Items:   toOrderItems(msg.Items),
		Reason:  msg.Reason,
	}
	return h.release.Execute(ctx, cmd, messageContext(ce, msg.CorrelationID))
}

// ProductSkuCreatedHandler inicializa inventario para SKUs nuevos de catálogo.
// No usa guardia: el alta ya es idempotente por la restricción de unicidad.
type ProductSkuCreatedHandler struct {
	initialize *stock.InitializeStockUseCase
	log        zerolog.Logger
}

func NewProductSkuCreatedHandler(initialize *stock.InitializeStockUseCase, log zerolog.Logger) *ProductSkuCreatedHandler {
	return &ProductSkuCreatedHandler{initialize: initialize, log: log}
}

func (h *ProductSkuCreatedHandler) Handle(ctx context.Context, ce CloudEvent) error {
	var msg ProductSkuCreatedMessage
	if err := json.Unmarshal(ce.Data, &msg); err != nil {
		return fmt.Errorf("%w: payload de alta de SKU ilegible: %v", errMensajeInvalido, err)
	}
	if msg.SkuID == "" {
		return fmt.Errorf("%w: el alta no trae skuId", errMensajeInvalido)
	}

	cmd := command.InitStockCommand{
		SkuID:    msg.SkuID,
		Quantity: msg.InitialQuantity,
	}
	err := h.initialize.Execute(ctx, cmd)
	if errors.Is(err, domain.ErrAlreadyInitialized) {
		h.log.Info().Str("sku_id", msg.SkuID).Msg("SKU ya inicializado, entrega duplicada")
		return nil
	}
	return err
}
