package entity

import (
	"fmt"

	"github.com/koosco-commerce/inventory-service/internal/domain"
)

// Stock valor inmutable con el total y lo reservado de un SKU.
// Invariante: 0 <= reserved <= total. Toda operación devuelve un Stock nuevo
// o un error; nunca muta en sitio.
type Stock struct {
	total    int
	reserved int
}

// NewStock construye un Stock validando el invariante.
func NewStock(total, reserved int) (Stock, error) {
	if total < 0 {
		return Stock{}, fmt.Errorf("%w: el total no puede ser negativo (actual: %d)", domain.ErrInvalidQuantity, total)
	}
	if reserved < 0 {
		return Stock{}, fmt.Errorf("%w: lo reservado no puede ser negativo (actual: %d)", domain.ErrInvalidQuantity, reserved)
	}
	if reserved > total {
		return Stock{}, fmt.Errorf("%w: lo reservado (%d) no puede superar el total (%d)", domain.ErrAdjustNotAllowed, reserved, total)
	}
	return Stock{total: total, reserved: reserved}, nil
}

// Total stock total registrado.
func (s Stock) Total() int { return s.total }

// Reserved stock apartado pendiente de confirmación.
func (s Stock) Reserved() int { return s.reserved }

// Available stock elegible para nuevas reservas (total - reservado). Derivado, nunca se persiste.
func (s Stock) Available() int { return s.total - s.reserved }

// Adjust fija el total en un valor absoluto. No puede quedar por debajo de lo reservado.
func (s Stock) Adjust(newTotal int) (Stock, error) {
	if newTotal < s.reserved {
		return Stock{}, fmt.Errorf("%w: el nuevo total (%d) es menor que lo reservado (%d)", domain.ErrAdjustNotAllowed, newTotal, s.reserved)
	}
	return Stock{total: newTotal, reserved: s.reserved}, nil
}

// Increase suma stock al total.
func (s Stock) Increase(q int) (Stock, error) {
	if q <= 0 {
		return Stock{}, fmt.Errorf("%w: la cantidad a aumentar debe ser positiva (actual: %d)", domain.ErrInvalidQuantity, q)
	}
	return Stock{total: s.total + q, reserved: s.reserved}, nil
}

// Decrease resta stock del total sin tocar lo reservado.
func (s Stock) Decrease(q int) (Stock, error) {
	if q <= 0 {
		return Stock{}, fmt.Errorf("%w: la cantidad a disminuir debe ser positiva (actual: %d)", domain.ErrInvalidQuantity, q)
	}
	newTotal := s.total - q
	if newTotal < s.reserved {
		return Stock{}, fmt.Errorf("%w: el total tras la disminución (%d) quedaría por debajo de lo reservado (%d)", domain.ErrInsufficientStock, newTotal, s.reserved)
	}
	return Stock{total: newTotal, reserved: s.reserved}, nil
}

// Reserve aparta stock disponible.
func (s Stock) Reserve(q int) (Stock, error) {
	if q <= 0 {
		return Stock{}, fmt.Errorf("%w: la cantidad a reservar debe ser positiva (actual: %d)", domain.ErrInvalidQuantity, q)
	}
	if s.Available() < q {
		return Stock{}, fmt.Errorf("%w: disponible insuficiente (solicitado: %d, disponible: %d)", domain.ErrInsufficientStock, q, s.Available())
	}
	return Stock{total: s.total, reserved: s.reserved + q}, nil
}

// Confirm convierte una reserva en salida definitiva: el stock confirmado sale del sistema.
func (s Stock) Confirm(q int) (Stock, error) {
	if q <= 0 {
		return Stock{}, fmt.Errorf("%w: la cantidad a confirmar debe ser positiva (actual: %d)", domain.ErrInvalidQuantity, q)
	}
	if s.reserved < q {
		return Stock{}, fmt.Errorf("%w: reservado insuficiente (solicitado: %d, reservado: %d)", domain.ErrInsufficientStock, q, s.reserved)
	}
	if s.total < q {
		return Stock{}, fmt.Errorf("%w: total insuficiente (solicitado: %d, total: %d)", domain.ErrInsufficientStock, q, s.total)
	}
	return Stock{total: s.total - q, reserved: s.reserved - q}, nil
}

// CancelReservation devuelve una reserva al stock disponible.
func (s Stock) CancelReservation(q int) (Stock, error) {
	if q <= 0 {
		return Stock{}, fmt.Errorf("%w: la cantidad a cancelar debe ser positiva (actual: %d)", domain.ErrInvalidQuantity, q)
	}
	if s.reserved < q {
		return Stock{}, fmt.Errorf("%w: reservado insuficiente (solicitado: %d, reservado: %d)", domain.ErrInsufficientStock, q, s.reserved)
	}
	return Stock{total: s.total, reserved: s.reserved - q}, nil
}
