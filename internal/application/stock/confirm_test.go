package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
)

func newConfirmFixture() (*memStore, *memPublisher, *stock.ConfirmStockUseCase) {
	store := newMemStore()
	pub := &memPublisher{}
	uc := stock.NewConfirmStockUseCase(&memTxRunner{store: store}, pub)
	return store, pub, uc
}

func TestConfirm_DescuentaReservadoYTotal(t *testing.T) {
	store, pub, uc := newConfirmFixture()
	store.seed("SKU-A", 10, 4)
	store.seed("SKU-B", 8, 2)

	err := uc.Execute(context.Background(), command.ConfirmStockCommand{
		OrderID:       "order-1",
		ReservationID: "res-1",
		Items: []command.OrderItem{
			{SkuID: "SKU-A", Quantity: 4},
			{SkuID: "SKU-B", Quantity: 2},
		},
	}, integration.MessageContext{CorrelationID: "corr-1"})
	require.NoError(t, err)

	a, _ := store.get("SKU-A")
	b, _ := store.get("SKU-B")
	assert.Equal(t, row{total: 6, reserved: 0}, a)
	assert.Equal(t, row{total: 6, reserved: 0}, b)

	evs := pub.published()
	require.Len(t, evs, 1)
	confirmed, ok := evs[0].(integration.StockConfirmedEvent)
	require.True(t, ok)
	assert.Equal(t, "order-1", confirmed.OrderID)
	assert.Equal(t, "res-1", confirmed.ReservationID)
	assert.Equal(t, "corr-1", confirmed.CorrelationID)
	assert.Len(t, confirmed.Items, 2)

	movs := store.movementsOf("SKU-A")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeCONFIRM, movs[0].Type)
	assert.Equal(t, "order-1", movs[0].OrderID)
}

func TestConfirm_ReservadoInsuficiente_TodoONada(t *testing.T) {
	store, pub, uc := newConfirmFixture()
	store.seed("SKU-A", 10, 4)
	store.seed("SKU-B", 8, 1) // reservado 1 < solicitado 2

	err := uc.Execute(context.Background(), command.ConfirmStockCommand{
		OrderID: "order-2",
		Items: []command.OrderItem{
			{SkuID: "SKU-A", Quantity: 4},
			{SkuID: "SKU-B", Quantity: 2},
		},
	}, integration.MessageContext{})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	a, _ := store.get("SKU-A")
	assert.Equal(t, row{total: 10, reserved: 4}, a, "ninguna línea debe confirmarse")

	evs := pub.published()
	require.Len(t, evs, 1)
	failed, ok := evs[0].(integration.StockConfirmFailedEvent)
	require.True(t, ok)
	assert.Contains(t, failed.Reason, integration.ReasonNotEnoughReserved)
	assert.Contains(t, failed.Reason, "SKU-B", "el motivo debe identificar la línea fallida")
}

func TestConfirm_SkuInexistente_PublicaFallo(t *testing.T) {
	store, pub, uc := newConfirmFixture()
	store.seed("SKU-A", 10, 4)

	err := uc.Execute(context.Background(), command.ConfirmStockCommand{
		OrderID: "order-3",
		Items:   []command.OrderItem{{SkuID: "SKU-X", Quantity: 1}},
	}, integration.MessageContext{})
	require.ErrorIs(t, err, domain.ErrNotFound)

	evs := pub.published()
	require.Len(t, evs, 1)
	failed, ok := evs[0].(integration.StockConfirmFailedEvent)
	require.True(t, ok)
	assert.Contains(t, failed.Reason, integration.ReasonInventoryNotFound)
}

func TestConfirm_SinLineas_RetornaError(t *testing.T) {
	_, pub, uc := newConfirmFixture()

	err := uc.Execute(context.Background(), command.ConfirmStockCommand{OrderID: "order-4"}, integration.MessageContext{})

	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, pub.published())
}
