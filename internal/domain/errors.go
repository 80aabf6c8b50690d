package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidQuantity    = errors.New("cantidad inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrNotFound           = errors.New("inventario no encontrado")
	ErrAlreadyInitialized = errors.New("inventario ya inicializado")
	ErrAdjustNotAllowed   = errors.New("ajuste de stock no permitido")
)
