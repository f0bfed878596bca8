package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva.
const (
	ReservationStatusAuthorized   = "authorized"    // retención de pago vigente
	ReservationStatusCharged      = "charged"       // cobro final capturado
	ReservationStatusChargeFailed = "charge_failed" // la captura falló al cierre
	ReservationStatusVoid         = "void"          // drop cancelado, retención liberada
)

// Reservation es la reserva de un usuario sobre un producto de un drop.
// Subtotal = UnitPrice * Quantity (sin descuento); el monto retenido se calcula con
// BookedDiscount y el cobro final con FinalDiscount, fijado al cerrar el drop.
type Reservation struct {
	ID             string
	DropID         string
	UserID         string
	ListItemID     string
	ProductID      string
	Quantity       int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	BookedDiscount decimal.Decimal
	HoldAmount     decimal.Decimal
	FinalDiscount  decimal.NullDecimal
	FinalAmount    decimal.NullDecimal
	HoldID         string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
