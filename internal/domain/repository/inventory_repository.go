package repository

import (
	"context"

	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
)

// InventoryRepository contrato de búsqueda y persistencia del agregado Inventory.
type InventoryRepository interface {
	// FindBySkuID devuelve el inventario del SKU, o nil si no existe.
	FindBySkuID(ctx context.Context, skuID string) (*entity.Inventory, error)

	// FindAllBySkuID devuelve los inventarios existentes entre los SKUs pedidos.
	// Los SKUs desconocidos simplemente no aparecen en el resultado.
	FindAllBySkuID(ctx context.Context, skuIDs []string) ([]*entity.Inventory, error)

	// FindAllBySkuIDForUpdate como FindAllBySkuID pero bloqueando las filas en
	// exclusiva. Los SKUs deben llegar ordenados ascendentemente: ese orden
	// global de adquisición es lo que evita deadlocks entre peticiones
	// concurrentes con SKUs solapados.
	FindAllBySkuIDForUpdate(ctx context.Context, skuIDs []string) ([]*entity.Inventory, error)

	// Create inserta un inventario nuevo. Devuelve domain.ErrAlreadyInitialized
	// si el SKU ya tiene registro (primera escritura gana).
	Create(ctx context.Context, inv *entity.Inventory) error

	// Save persiste el estado actual del agregado.
	Save(ctx context.Context, inv *entity.Inventory) error

	// ExistsBySkuID indica si el SKU ya tiene inventario.
	ExistsBySkuID(ctx context.Context, skuID string) (bool, error)
}
