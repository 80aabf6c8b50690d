package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs: el runner cuenta transacciones sin ejecutarlas y el publicador captura
// los eventos; alcanza para verificar el enrutado de los handlers.
// ──────────────────────────────────────────────────────────────────────────────

type stubTxRunner struct {
	calls int
}

func (s *stubTxRunner) Run(_ context.Context, _ func(repository.InventoryRepository, repository.StockMovementRepository) error) error {
	s.calls++
	return nil
}

type stubPublisher struct {
	events []integration.Event
}

func (s *stubPublisher) Publish(_ context.Context, ev integration.Event) error {
	s.events = append(s.events, ev)
	return nil
}

type stubGuard struct {
	first bool
	err   error
	calls int
}

func (s *stubGuard) FirstDelivery(_ context.Context, _, _ string) (bool, error) {
	s.calls++
	return s.first, s.err
}

func envelopeWith(t *testing.T, eventType string, payload any) CloudEvent {
	t.Helper()
	ce, err := NewCloudEvent("orders", eventType, "", "", payload)
	require.NoError(t, err)
	return ce
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderPlacedHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderPlacedHandler_PrimeraEntrega_EjecutaLaReserva(t *testing.T) {
	tx := &stubTxRunner{}
	pub := &stubPublisher{}
	guard := &stubGuard{first: true}
	h := NewOrderPlacedHandler(stock.NewReserveStockUseCase(tx, pub), guard, zerolog.Nop())

	ce := envelopeWith(t, "order.placed", OrderPlacedMessage{
		OrderID:       "order-1",
		Items:         []OrderItemMessage{{SkuID: "SKU-A", Quantity: 2}},
		CorrelationID: "corr-1",
	})

	require.NoError(t, h.Handle(context.Background(), ce))

	assert.Equal(t, 1, tx.calls, "la primera entrega debe llegar al caso de uso")
	require.Len(t, pub.events, 1)
	reserved, ok := pub.events[0].(integration.StockReservedEvent)
	require.True(t, ok)
	assert.Equal(t, "corr-1", reserved.CorrelationID,
		"el correlationId del payload debe propagarse al evento emitido")
	assert.Equal(t, ce.ID, reserved.CausationID,
		"el causationId debe ser el id del mensaje entrante")
}

func TestOrderPlacedHandler_EntregaDuplicada_NoEjecutaNada(t *testing.T) {
	tx := &stubTxRunner{}
	guard := &stubGuard{first: false}
	h := NewOrderPlacedHandler(stock.NewReserveStockUseCase(tx, &stubPublisher{}), guard, zerolog.Nop())

	ce := envelopeWith(t, "order.placed", OrderPlacedMessage{
		OrderID: "order-1",
		Items:   []OrderItemMessage{{SkuID: "SKU-A", Quantity: 2}},
	})

	require.NoError(t, h.Handle(context.Background(), ce))
	assert.Equal(t, 0, tx.calls, "el duplicado se confirma sin reprocesar")
}

func TestOrderPlacedHandler_GuardiaCaida_ProcesaIgual(t *testing.T) {
	tx := &stubTxRunner{}
	guard := &stubGuard{err: assert.AnError}
	h := NewOrderPlacedHandler(stock.NewReserveStockUseCase(tx, &stubPublisher{}), guard, zerolog.Nop())

	ce := envelopeWith(t, "order.placed", OrderPlacedMessage{
		OrderID: "order-1",
		Items:   []OrderItemMessage{{SkuID: "SKU-A", Quantity: 2}},
	})

	require.NoError(t, h.Handle(context.Background(), ce))
	assert.Equal(t, 1, tx.calls, "sin guardia disponible se procesa de todos modos")
}

func TestOrderPlacedHandler_SinOrderID_EsTerminal(t *testing.T) {
	guard := &stubGuard{first: true}
	h := NewOrderPlacedHandler(stock.NewReserveStockUseCase(&stubTxRunner{}, &stubPublisher{}), guard, zerolog.Nop())

	ce := envelopeWith(t, "order.placed", OrderPlacedMessage{})

	err := h.Handle(context.Background(), ce)
	require.ErrorIs(t, err, errMensajeInvalido)
	assert.True(t, isTerminal(err), "un payload sin orderId no debe reintentarse")
	assert.Equal(t, 0, guard.calls)
}

func TestOrderPlacedHandler_PayloadIlegible_EsTerminal(t *testing.T) {
	h := NewOrderPlacedHandler(stock.NewReserveStockUseCase(&stubTxRunner{}, &stubPublisher{}), &stubGuard{first: true}, zerolog.Nop())

	ce := CloudEvent{ID: "msg-1", Type: "order.placed", Data: json.RawMessage(`{no es json`)}

	err := h.Handle(context.Background(), ce)
	require.ErrorIs(t, err, errMensajeInvalido)
	assert.True(t, isTerminal(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// Contexto de correlación
// ──────────────────────────────────────────────────────────────────────────────

func TestMessageContext_PrioridadDeCorrelacion(t *testing.T) {
	ce := CloudEvent{ID: "msg-1", CorrelationID: "corr-envoltura"}

	mctx := messageContext(ce, "corr-payload")
	assert.Equal(t, "corr-payload", mctx.CorrelationID, "el payload manda")

	mctx = messageContext(ce, "")
	assert.Equal(t, "corr-envoltura", mctx.CorrelationID, "sin payload se hereda la envoltura")

	mctx = messageContext(CloudEvent{ID: "msg-1"}, "")
	assert.Equal(t, "msg-1", mctx.CorrelationID, "en último caso el id del mensaje")

	assert.Equal(t, "msg-1", mctx.CausationID)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductSkuCreatedHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestProductSkuCreatedHandler_EjecutaLaInicializacion(t *testing.T) {
	tx := &stubTxRunner{}
	h := NewProductSkuCreatedHandler(stock.NewInitializeStockUseCase(tx), zerolog.Nop())

	ce := envelopeWith(t, "product.sku.created", ProductSkuCreatedMessage{
		SkuID:           "SKU-A",
		InitialQuantity: 100,
	})

	require.NoError(t, h.Handle(context.Background(), ce))
	assert.Equal(t, 1, tx.calls)
}

func TestProductSkuCreatedHandler_SinSkuID_EsTerminal(t *testing.T) {
	h := NewProductSkuCreatedHandler(stock.NewInitializeStockUseCase(&stubTxRunner{}), zerolog.Nop())

	ce := envelopeWith(t, "product.sku.created", ProductSkuCreatedMessage{InitialQuantity: 100})

	err := h.Handle(context.Background(), ce)
	require.ErrorIs(t, err, errMensajeInvalido)
	assert.True(t, isTerminal(err))
}
