package entity

import (
	"time"

	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/discount"
	"github.com/shopspring/decimal"
)

// Estados de un drop.
const (
	DropStatusScheduled = "scheduled"
	DropStatusOpen      = "open"
	DropStatusClosed    = "closed"
	DropStatusCancelled = "cancelled"
)

// Drop es un evento de compra grupal con ventana de tiempo, atado a una lista de
// proveedor y a un punto de retiro.
//
// CurrentValue es la suma de subtotales reservados (nunca decrece) y CurrentDiscount
// siempre es discount.Interpolate(CurrentValue, lista.Bounds()).
type Drop struct {
	ID              string
	SupplierListID  string
	PickupPointID   string
	Name            string
	Status          string
	StartsAt        time.Time
	EndsAt          time.Time
	CurrentValue    decimal.Decimal
	CurrentDiscount decimal.Decimal
	ClosedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AcceptsReservations indica si el drop puede recibir reservas en el instante now.
func (d *Drop) AcceptsReservations(now time.Time) bool {
	return d.Status == DropStatusOpen && !now.Before(d.StartsAt) && now.Before(d.EndsAt)
}

// AddReservation suma amount al valor acumulado y recalcula el descuento.
// Es el único punto donde se modifica el agregado; el llamador debe tener la fila bloqueada.
func (d *Drop) AddReservation(amount decimal.Decimal, bounds discount.Bounds) error {
	if !amount.IsPositive() {
		return domain.ErrInvalidInput
	}
	newValue := d.CurrentValue.Add(amount)
	pct, err := discount.Interpolate(newValue, bounds)
	if err != nil {
		return err
	}
	d.CurrentValue = newValue
	d.CurrentDiscount = pct
	return nil
}

// Close marca el drop como cerrado. Solo un drop abierto puede cerrarse.
func (d *Drop) Close(now time.Time) error {
	switch d.Status {
	case DropStatusOpen:
	case DropStatusClosed, DropStatusCancelled:
		return domain.ErrDropClosed
	default:
		return domain.ErrDropNotOpen
	}
	d.Status = DropStatusClosed
	d.ClosedAt = &now
	d.UpdatedAt = now
	return nil
}
