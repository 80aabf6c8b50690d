package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL
// (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

// FindBySkuID obtiene el inventario de un SKU, o nil si no existe.
func (r *InventoryRepo) FindBySkuID(ctx context.Context, skuID string) (*entity.Inventory, error) {
	query := `
		SELECT sku_id, total_stock, reserved_stock
		FROM inventories WHERE sku_id = $1`
	var (
		id              string
		total, reserved int
	)
	err := r.q.QueryRow(ctx, query, skuID).Scan(&id, &total, &reserved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find inventory: %w", err)
	}
	return entity.RestoreInventory(id, total, reserved)
}

// FindAllBySkuID obtiene los inventarios existentes entre los SKUs pedidos.
func (r *InventoryRepo) FindAllBySkuID(ctx context.Context, skuIDs []string) ([]*entity.Inventory, error) {
	query := `
		SELECT sku_id, total_stock, reserved_stock
		FROM inventories WHERE sku_id = ANY($1)
		ORDER BY sku_id`
	return r.queryInventories(ctx, query, skuIDs)
}

// FindAllBySkuIDForUpdate obtiene y bloquea las filas (SELECT FOR UPDATE).
// El ORDER BY sku_id mantiene el orden global de adquisición de locks que
// evita deadlocks entre transacciones concurrentes con SKUs solapados.
func (r *InventoryRepo) FindAllBySkuIDForUpdate(ctx context.Context, skuIDs []string) ([]*entity.Inventory, error) {
	query := `
		SELECT sku_id, total_stock, reserved_stock
		FROM inventories WHERE sku_id = ANY($1)
		ORDER BY sku_id
		FOR UPDATE`
	return r.queryInventories(ctx, query, skuIDs)
}

func (r *InventoryRepo) queryInventories(ctx context.Context, query string, skuIDs []string) ([]*entity.Inventory, error) {
	rows, err := r.q.Query(ctx, query, skuIDs)
	if err != nil {
		return nil, fmt.Errorf("find inventories: %w", err)
	}
	defer rows.Close()

	var out []*entity.Inventory
	for rows.Next() {
		var (
			id              string
			total, reserved int
		)
		if err := rows.Scan(&id, &total, &reserved); err != nil {
			return nil, fmt.Errorf("scan inventory: %w", err)
		}
		inv, err := entity.RestoreInventory(id, total, reserved)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventories: %w", err)
	}
	return out, nil
}

// Create inserta un inventario nuevo. La violación de unicidad del PK se
// traduce a domain.ErrAlreadyInitialized (primera escritura gana).
func (r *InventoryRepo) Create(ctx context.Context, inv *entity.Inventory) error {
	query := `
		INSERT INTO inventories (sku_id, total_stock, reserved_stock, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())`
	_, err := r.q.Exec(ctx, query, inv.SkuID(), inv.Stock().Total(), inv.Stock().Reserved())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: SKU %s", domain.ErrAlreadyInitialized, inv.SkuID())
		}
		return fmt.Errorf("create inventory: %w", err)
	}
	return nil
}

// Save persiste el estado actual del agregado.
func (r *InventoryRepo) Save(ctx context.Context, inv *entity.Inventory) error {
	query := `
		UPDATE inventories
		SET total_stock = $2, reserved_stock = $3, updated_at = now()
		WHERE sku_id = $1`
	tag, err := r.q.Exec(ctx, query, inv.SkuID(), inv.Stock().Total(), inv.Stock().Reserved())
	if err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, inv.SkuID())
	}
	return nil
}

// ExistsBySkuID indica si el SKU ya tiene inventario.
func (r *InventoryRepo) ExistsBySkuID(ctx context.Context, skuID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventories WHERE sku_id = $1)`, skuID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists inventory: %w", err)
	}
	return exists, nil
}
