package entity

import "time"

// Tipos de movimiento registrados en stock_movements.
const (
	MovementTypeINIT    = "INIT"
	MovementTypeRESERVE = "RESERVE"
	MovementTypeCONFIRM = "CONFIRM"
	MovementTypeRELEASE = "RELEASE"
	MovementTypeADJUST  = "ADJUST"
	MovementTypeADD     = "ADD"
	MovementTypeREDUCE  = "REDUCE"
)

// StockMovement registro de auditoría de una transición de stock. TotalAfter y
// ReservedAfter capturan el estado resultante para poder reconstruir el historial.
type StockMovement struct {
	ID            string
	SkuID         string
	Type          string
	Quantity      int
	TotalAfter    int
	ReservedAfter int
	OrderID       string
	CreatedAt     time.Time
}
