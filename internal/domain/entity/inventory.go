package entity

import (
	"github.com/koosco-commerce/inventory-service/internal/domain/event"
)

// Inventory raíz de agregado: el stock de un SKU (identidad = SkuID) y los
// eventos de dominio pendientes de publicar. El stock solo se muta a través
// de las operaciones del propio agregado.
type Inventory struct {
	skuID  string
	stock  Stock
	events []event.DomainEvent
}

// NewInventory crea el inventario de un SKU nuevo con todo el stock disponible.
func NewInventory(skuID string, initialQuantity int) (*Inventory, error) {
	stock, err := NewStock(initialQuantity, 0)
	if err != nil {
		return nil, err
	}
	inv := &Inventory{skuID: skuID, stock: stock}
	inv.record(event.StockInitialized{SkuID: skuID, Quantity: initialQuantity})
	return inv, nil
}

// RestoreInventory reconstruye el agregado desde la persistencia, sin eventos pendientes.
func RestoreInventory(skuID string, total, reserved int) (*Inventory, error) {
	stock, err := NewStock(total, reserved)
	if err != nil {
		return nil, err
	}
	return &Inventory{skuID: skuID, stock: stock}, nil
}

// SkuID identidad del agregado.
func (i *Inventory) SkuID() string { return i.skuID }

// Stock estado actual del stock.
func (i *Inventory) Stock() Stock { return i.stock }

// Reserve aparta stock disponible para una orden.
func (i *Inventory) Reserve(q int) error {
	next, err := i.stock.Reserve(q)
	if err != nil {
		return err
	}
	i.stock = next
	i.record(event.StockReserved{SkuID: i.skuID, Quantity: q})
	return nil
}

// Confirm convierte una reserva en salida definitiva.
func (i *Inventory) Confirm(q int) error {
	next, err := i.stock.Confirm(q)
	if err != nil {
		return err
	}
	i.stock = next
	i.record(event.StockConfirmed{SkuID: i.skuID, Quantity: q})
	return nil
}

// CancelReservation devuelve una reserva al stock disponible.
func (i *Inventory) CancelReservation(q int) error {
	next, err := i.stock.CancelReservation(q)
	if err != nil {
		return err
	}
	i.stock = next
	i.record(event.StockReservationCancelled{SkuID: i.skuID, Quantity: q})
	return nil
}

// Adjust fija el total en un valor absoluto.
func (i *Inventory) Adjust(newTotal int) error {
	next, err := i.stock.Adjust(newTotal)
	if err != nil {
		return err
	}
	i.stock = next
	i.record(event.StockAdjusted{SkuID: i.skuID, NewTotal: newTotal})
	return nil
}

// Increase suma stock al total.
func (i *Inventory) Increase(q int) error {
	next, err := i.stock.Increase(q)
	if err != nil {
		return err
	}
	i.stock = next
	i.record(event.StockAdded{SkuID: i.skuID, Quantity: q})
	return nil
}

// Decrease resta stock del total.
func (i *Inventory) Decrease(q int) error {
	next, err := i.stock.Decrease(q)
	if err != nil {
		return err
	}
	i.stock = next
	i.record(event.StockReduced{SkuID: i.skuID, Quantity: q})
	return nil
}

// PullEvents devuelve los eventos pendientes y los limpia. Debe llamarse a lo
// sumo una vez por transacción exitosa para no publicar duplicados.
func (i *Inventory) PullEvents() []event.DomainEvent {
	evs := i.events
	i.events = nil
	return evs
}

func (i *Inventory) record(ev event.DomainEvent) {
	i.events = append(i.events, ev)
}
