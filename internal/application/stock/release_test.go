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

func newReleaseFixture() (*memStore, *stock.ReleaseStockUseCase) {
	store := newMemStore()
	uc := stock.NewReleaseStockUseCase(&memTxRunner{store: store})
	return store, uc
}

func TestRelease_DevuelveReservasAlDisponible(t *testing.T) {
	store, uc := newReleaseFixture()
	store.seed("SKU-A", 10, 4)
	store.seed("SKU-B", 8, 2)

	err := uc.Execute(context.Background(), command.CancelStockCommand{
		OrderID: "order-1",
		Items: []command.OrderItem{
			{SkuID: "SKU-A", Quantity: 4},
			{SkuID: "SKU-B", Quantity: 2},
		},
		Reason: "pago rechazado",
	}, integration.MessageContext{})
	require.NoError(t, err)

	a, _ := store.get("SKU-A")
	b, _ := store.get("SKU-B")
	assert.Equal(t, row{total: 10, reserved: 0}, a, "liberar no toca el total")
	assert.Equal(t, row{total: 8, reserved: 0}, b)

	movs := store.movementsOf("SKU-A")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeRELEASE, movs[0].Type)
}

// Un SKU sin registro se omite sin error: ya no hay nada que liberar. Las
// demás líneas se liberan con normalidad.
func TestRelease_SkuInexistente_SeOmiteSinError(t *testing.T) {
	store, uc := newReleaseFixture()
	store.seed("SKU-A", 10, 3)

	err := uc.Execute(context.Background(), command.CancelStockCommand{
		OrderID: "order-2",
		Items: []command.OrderItem{
			{SkuID: "SKU-A", Quantity: 3},
			{SkuID: "SKU-X", Quantity: 5},
		},
	}, integration.MessageContext{})
	require.NoError(t, err, "la línea inexistente no debe fallar la liberación")

	a, _ := store.get("SKU-A")
	assert.Equal(t, 0, a.reserved)
	assert.Empty(t, store.movementsOf("SKU-X"), "el SKU omitido no deja movimiento")
}

func TestRelease_ReservadoInsuficiente_TodoONada(t *testing.T) {
	store, uc := newReleaseFixture()
	store.seed("SKU-A", 10, 3)
	store.seed("SKU-B", 8, 1)

	err := uc.Execute(context.Background(), command.CancelStockCommand{
		OrderID: "order-3",
		Items: []command.OrderItem{
			{SkuID: "SKU-A", Quantity: 3},
			{SkuID: "SKU-B", Quantity: 2}, // reservado 1 < 2
		},
	}, integration.MessageContext{})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	a, _ := store.get("SKU-A")
	assert.Equal(t, 3, a.reserved, "ninguna línea debe liberarse")
}

func TestRelease_SinLineas_NoHaceNada(t *testing.T) {
	store, uc := newReleaseFixture()
	store.seed("SKU-A", 10, 3)

	err := uc.Execute(context.Background(), command.CancelStockCommand{OrderID: "order-4"}, integration.MessageContext{})

	require.NoError(t, err)
	a, _ := store.get("SKU-A")
	assert.Equal(t, 3, a.reserved)
}

// Reservar y luego liberar la orden deja el stock como al principio.
func TestRelease_DeshaceUnaReservaPrevia(t *testing.T) {
	store := newMemStore()
	pub := &memPublisher{}
	reserve := stock.NewReserveStockUseCase(&memTxRunner{store: store}, pub)
	release := stock.NewReleaseStockUseCase(&memTxRunner{store: store})
	store.seed("SKU-A", 10, 0)

	items := []command.OrderItem{{SkuID: "SKU-A", Quantity: 4}}
	require.NoError(t, reserve.Execute(context.Background(),
		command.ReserveStockCommand{OrderID: "order-5", Items: items}, integration.MessageContext{}))
	require.NoError(t, release.Execute(context.Background(),
		command.CancelStockCommand{OrderID: "order-5", Items: items}, integration.MessageContext{}))

	a, _ := store.get("SKU-A")
	assert.Equal(t, row{total: 10, reserved: 0}, a)
}
