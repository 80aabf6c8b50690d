package integration

// Event evento de integración publicado al bus para notificar resultados a
// otros servicios (órdenes, pagos).
type Event interface {
	// EventType tipo CloudEvent, ej. "stock.reserve.failed".
	EventType() string

	// PartitionKey clave de partición del bus (agrupa por orden).
	PartitionKey() string

	// Subject sujeto CloudEvent, ej. "order/123".
	Subject() string
}

// MessageContext identificadores de trazabilidad propagados desde el mensaje
// entrante hasta los eventos de integración emitidos.
type MessageContext struct {
	CorrelationID string
	CausationID   string
}

// Motivos de fallo publicados en los eventos de fallo.
const (
	ReasonInventoryNotFound = "INVENTORY_NOT_FOUND"
	ReasonNotEnoughStock    = "NOT_ENOUGH_STOCK"
	ReasonNotEnoughReserved = "NOT_ENOUGH_RESERVED"
)

// Item línea confirmada o reservada dentro de un evento de éxito.
type Item struct {
	SkuID    string `json:"skuId"`
	Quantity int    `json:"quantity"`
}

// FailedItem línea que impidió la operación. AvailableQuantity es nil cuando el
// SKU no existe (no hay cantidad que reportar).
type FailedItem struct {
	SkuID             string `json:"skuId"`
	RequestedQuantity int    `json:"requestedQuantity"`
	AvailableQuantity *int   `json:"availableQuantity"`
}

// StockReservedEvent todas las líneas de la orden quedaron reservadas.
type StockReservedEvent struct {
	OrderID       string `json:"orderId"`
	Items         []Item `json:"items"`
	CorrelationID string `json:"correlationId"`
	CausationID   string `json:"causationId"`
}

func (e StockReservedEvent) EventType() string    { return "stock.reserved" }
func (e StockReservedEvent) PartitionKey() string { return e.OrderID }
func (e StockReservedEvent) Subject() string      { return "order/" + e.OrderID }

// StockReservationFailedEvent la reserva falló; enumera todas las líneas fallidas.
type StockReservationFailedEvent struct {
	OrderID       string       `json:"orderId"`
	Reason        string       `json:"reason"`
	FailedItems   []FailedItem `json:"failedItems"`
	CorrelationID string       `json:"correlationId"`
	CausationID   string       `json:"causationId"`
}

func (e StockReservationFailedEvent) EventType() string    { return "stock.reserve.failed" }
func (e StockReservationFailedEvent) PartitionKey() string { return e.OrderID }
func (e StockReservationFailedEvent) Subject() string      { return "order/" + e.OrderID }

// StockConfirmedEvent todas las reservas de la orden quedaron confirmadas.
type StockConfirmedEvent struct {
	OrderID       string `json:"orderId"`
	ReservationID string `json:"reservationId,omitempty"`
	Items         []Item `json:"items"`
	CorrelationID string `json:"correlationId"`
	CausationID   string `json:"causationId"`
}

func (e StockConfirmedEvent) EventType() string    { return "stock.confirmed" }
func (e StockConfirmedEvent) PartitionKey() string { return e.OrderID }
func (e StockConfirmedEvent) Subject() string      { return "order/" + e.OrderID }

// StockConfirmFailedEvent la confirmación falló.
type StockConfirmFailedEvent struct {
	OrderID       string `json:"orderId"`
	ReservationID string `json:"reservationId,omitempty"`
	Reason        string `json:"reason"`
	CorrelationID string `json:"correlationId"`
	CausationID   string `json:"causationId"`
}

func (e StockConfirmFailedEvent) EventType() string    { return "stock.confirm.failed" }
func (e StockConfirmFailedEvent) PartitionKey() string { return e.OrderID }
func (e StockConfirmFailedEvent) Subject() string      { return "order/" + e.OrderID }
