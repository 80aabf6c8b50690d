package event

// DomainEvent registro interno de una transición de stock. Los agregados lo
// acumulan y el caso de uso lo drena una sola vez por transacción.
type DomainEvent interface {
	EventName() string
}

// StockInitialized el inventario de un SKU fue creado.
type StockInitialized struct {
	SkuID    string
	Quantity int
}

func (StockInitialized) EventName() string { return "stock.initialized" }

// StockReserved se apartó stock disponible para una orden.
type StockReserved struct {
	SkuID    string
	Quantity int
}

func (StockReserved) EventName() string { return "stock.reserved" }

// StockConfirmed una reserva se convirtió en salida definitiva (envío).
type StockConfirmed struct {
	SkuID    string
	Quantity int
}

func (StockConfirmed) EventName() string { return "stock.confirmed" }

// StockReservationCancelled una reserva volvió al stock disponible.
type StockReservationCancelled struct {
	SkuID    string
	Quantity int
}

func (StockReservationCancelled) EventName() string { return "stock.reservation.cancelled" }

// StockAdjusted el total se fijó en un valor absoluto (operación administrativa).
type StockAdjusted struct {
	SkuID    string
	NewTotal int
}

func (StockAdjusted) EventName() string { return "stock.adjusted" }

// StockAdded entrada de stock.
type StockAdded struct {
	SkuID    string
	Quantity int
}

func (StockAdded) EventName() string { return "stock.added" }

// StockReduced salida de stock sin reserva de por medio.
type StockReduced struct {
	SkuID    string
	Quantity int
}

func (StockReduced) EventName() string { return "stock.reduced" }
