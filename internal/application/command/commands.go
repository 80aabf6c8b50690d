package command

// OrderItem línea de una orden: SKU y cantidad solicitada.
type OrderItem struct {
	SkuID    string
	Quantity int
}

// InitStockCommand crea el inventario de un SKU nuevo.
type InitStockCommand struct {
	SkuID    string
	Quantity int
}

// ReserveStockCommand aparta stock para todas las líneas de una orden.
type ReserveStockCommand struct {
	OrderID string
	Items   []OrderItem
}

// ConfirmStockCommand confirma las reservas de una orden (pago exitoso).
type ConfirmStockCommand struct {
	OrderID       string
	ReservationID string
	Items         []OrderItem
}

// CancelStockCommand libera las reservas de una orden (pago fallido / cancelación).
type CancelStockCommand struct {
	OrderID string
	Items   []OrderItem
	Reason  string
}

// AdjustStockCommand fija el total de un SKU en un valor absoluto.
type AdjustStockCommand struct {
	SkuID    string
	Quantity int
}

// AddStockCommand suma stock a un SKU.
type AddStockCommand struct {
	SkuID          string
	AddingQuantity int
}

// ReduceStockCommand resta stock de un SKU.
type ReduceStockCommand struct {
	SkuID            string
	ReducingQuantity int
}

// GetInventoryCommand consulta de un SKU.
type GetInventoryCommand struct {
	SkuID string
}

// GetInventoriesCommand consulta masiva de SKUs.
type GetInventoriesCommand struct {
	SkuIDs []string
}
