package dto

import "time"

// InventoryDTO vista de lectura del stock de un SKU.
type InventoryDTO struct {
	SkuID          string `json:"sku_id"`
	TotalStock     int    `json:"total_stock"`
	ReservedStock  int    `json:"reserved_stock"`
	AvailableStock int    `json:"available_stock"`
}

// StockMovementDTO entrada del historial de cambios de stock.
type StockMovementDTO struct {
	ID            string    `json:"id"`
	SkuID         string    `json:"sku_id"`
	Type          string    `json:"type"`
	Quantity      int       `json:"quantity"`
	TotalAfter    int       `json:"total_after"`
	ReservedAfter int       `json:"reserved_after"`
	OrderID       string    `json:"order_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// AdjustStockRequest cuerpo para ajustar el total de un SKU.
type AdjustStockRequest struct {
	Quantity int `json:"quantity"`
}

// AddStockRequest cuerpo para añadir stock a un SKU.
type AddStockRequest struct {
	AddingQuantity int `json:"adding_quantity"`
}

// ReduceStockRequest cuerpo para reducir stock de un SKU.
type ReduceStockRequest struct {
	ReducingQuantity int `json:"reducing_quantity"`
}

// BulkStockItem línea de una operación masiva.
type BulkStockItem struct {
	SkuID    string `json:"sku_id"`
	Quantity int    `json:"quantity"`
}

// BulkAdjustStockRequest ajuste masivo (todo o nada).
type BulkAdjustStockRequest struct {
	Adjustments []BulkStockItem `json:"adjustments"`
}

// BulkAddStockRequest adición masiva (todo o nada).
type BulkAddStockRequest struct {
	Items []BulkStockItem `json:"items"`
}

// BulkReduceStockRequest reducción masiva (todo o nada).
type BulkReduceStockRequest struct {
	Items []BulkStockItem `json:"items"`
}

// GetInventoriesRequest consulta masiva por SKU.
type GetInventoriesRequest struct {
	SkuIDs []string `json:"sku_ids"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
