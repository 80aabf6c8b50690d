package kafka

// Mensajes entrantes publicados por otros servicios (orders, catalog).
// El contrato usa camelCase en el payload, igual que los eventos salientes.

// OrderItemMessage es una línea de pedido dentro de un mensaje de orders.
type OrderItemMessage struct {
	SkuID    string `json:"skuId"`
	Quantity int    `json:"quantity"`
}

// OrderPlacedMessage solicita la reserva de stock para un pedido nuevo.
type OrderPlacedMessage struct {
	OrderID       string             `json:"orderId"`
	Items         []OrderItemMessage `json:"items"`
	CorrelationID string             `json:"correlationId,omitempty"`
}

// OrderConfirmedMessage confirma una reserva previa tras el pago.
type OrderConfirmedMessage struct {
	OrderID       string             `json:"orderId"`
	ReservationID string             `json:"reservationId,omitempty"`
	Items         []OrderItemMessage `json:"items"`
	CorrelationID string             `json:"correlationId,omitempty"`
}

// OrderCancelledMessage libera las reservas de un pedido cancelado.
type OrderCancelledMessage struct {
	OrderID       string             `json:"orderId"`
	Items         []OrderItemMessage `json:"items"`
	Reason        string             `json:"reason,omitempty"`
	CorrelationID string             `json:"correlationId,omitempty"`
}

// ProductSkuCreatedMessage avisa que catálogo dio de alta un SKU nuevo.
type ProductSkuCreatedMessage struct {
	SkuID           string `json:"skuId"`
	ProductID       string `json:"productId,omitempty"`
	InitialQuantity int    `json:"initialQuantity"`
}
