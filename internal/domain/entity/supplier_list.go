package entity

import (
	"time"

	"github.com/jhoicas/DropZone-api/internal/domain/discount"
	"github.com/shopspring/decimal"
)

// SupplierList es la lista de productos que un proveedor ofrece en drops, con su
// calibración de descuento. Los límites no cambian mientras exista un drop abierto sobre la lista.
type SupplierList struct {
	ID                  string
	SupplierID          string
	Name                string
	MinDiscount         decimal.Decimal // %
	MaxDiscount         decimal.Decimal // %
	MinReservationValue decimal.Decimal
	MaxReservationValue decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Bounds devuelve la calibración de la lista para discount.Interpolate.
func (l *SupplierList) Bounds() discount.Bounds {
	return discount.Bounds{
		MinDiscount:         l.MinDiscount,
		MaxDiscount:         l.MaxDiscount,
		MinReservationValue: l.MinReservationValue,
		MaxReservationValue: l.MaxReservationValue,
	}
}

// SupplierListItem es un producto dentro de una lista, con su precio base (sin descuento).
type SupplierListItem struct {
	ID        string
	ListID    string
	ProductID string
	UnitPrice decimal.Decimal
	CreatedAt time.Time
}
