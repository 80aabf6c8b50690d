package stock

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/koosco-commerce/inventory-service/internal/application/command"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
)

// sortedItems copia y ordena las líneas por SKU ascendente. El orden global de
// adquisición de locks es el mecanismo anti-deadlock: dos peticiones
// concurrentes con SKUs solapados siempre los piden en el mismo orden relativo.
func sortedItems(items []command.OrderItem) []command.OrderItem {
	out := make([]command.OrderItem, len(items))
	copy(out, items)
	sort.Slice(out, func(i, j int) bool { return out[i].SkuID < out[j].SkuID })
	return out
}

func skuIDsOf(items []command.OrderItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.SkuID
	}
	return ids
}

// newMovement arma el registro de auditoría de una transición ya aplicada.
func newMovement(inv *entity.Inventory, movType string, quantity int, orderID string) *entity.StockMovement {
	return &entity.StockMovement{
		ID:            uuid.New().String(),
		SkuID:         inv.SkuID(),
		Type:          movType,
		Quantity:      quantity,
		TotalAfter:    inv.Stock().Total(),
		ReservedAfter: inv.Stock().Reserved(),
		OrderID:       orderID,
		CreatedAt:     time.Now().UTC(),
	}
}
