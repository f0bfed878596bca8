// Package discount contiene la regla de negocio central de Drop Zone: el descuento
// de un drop crece linealmente con el valor reservado acumulado, entre el mínimo y
// el máximo definidos por la lista del proveedor.
//
//	descuento
//	   max ┤                 ┌──────────
//	       │               ╱
//	       │             ╱
//	   min ┼───────────┘
//	       └───────────┬─────┬────────── valor acumulado
//	                 minRV  maxRV
package discount

import (
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Bounds son las cuatro constantes de calibración de una lista de proveedor.
// Descuentos en porcentaje (0..100); valores de reserva en moneda.
type Bounds struct {
	MinDiscount         decimal.Decimal
	MaxDiscount         decimal.Decimal
	MinReservationValue decimal.Decimal
	MaxReservationValue decimal.Decimal
}

// Validate rechaza calibraciones que harían la interpolación indefinida o absurda.
// El caso MinReservationValue == MaxReservationValue (división por cero) se rechaza aquí.
func (b Bounds) Validate() error {
	if b.MinDiscount.IsNegative() || b.MaxDiscount.GreaterThan(hundred) {
		return domain.ErrInvalidBounds
	}
	if b.MinDiscount.GreaterThan(b.MaxDiscount) {
		return domain.ErrInvalidBounds
	}
	if b.MinReservationValue.IsNegative() {
		return domain.ErrInvalidBounds
	}
	if !b.MaxReservationValue.GreaterThan(b.MinReservationValue) {
		return domain.ErrInvalidBounds
	}
	return nil
}

// Interpolate devuelve el porcentaje de descuento para un valor acumulado.
//
//	value <= minRV → MinDiscount
//	value >= maxRV → MaxDiscount
//	si no          → minD + (maxD - minD) * (value - minRV) / (maxRV - minRV)
//
// El resultado se redondea a dos decimales (mitad hacia arriba).
func Interpolate(value decimal.Decimal, b Bounds) (decimal.Decimal, error) {
	if err := b.Validate(); err != nil {
		return decimal.Zero, err
	}
	if value.LessThanOrEqual(b.MinReservationValue) {
		return b.MinDiscount.Round(2), nil
	}
	if value.GreaterThanOrEqual(b.MaxReservationValue) {
		return b.MaxDiscount.Round(2), nil
	}
	progress := value.Sub(b.MinReservationValue).Div(b.MaxReservationValue.Sub(b.MinReservationValue))
	d := b.MinDiscount.Add(b.MaxDiscount.Sub(b.MinDiscount).Mul(progress))
	return d.Round(2), nil
}

// Progress devuelve la fracción [0,1] recorrida entre minRV y maxRV.
// Con límites inválidos devuelve 0.
func Progress(value decimal.Decimal, b Bounds) decimal.Decimal {
	if b.Validate() != nil || value.LessThanOrEqual(b.MinReservationValue) {
		return decimal.Zero
	}
	if value.GreaterThanOrEqual(b.MaxReservationValue) {
		return one
	}
	return value.Sub(b.MinReservationValue).
		Div(b.MaxReservationValue.Sub(b.MinReservationValue)).
		Round(4)
}

// ApplyDiscount calcula el cobro final: subtotal * (100 - pct) / 100, redondeado al centavo.
func ApplyDiscount(subtotal, pct decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(hundred.Sub(pct)).Div(hundred).Round(2)
}

// ValueForDiscount es la inversa de Interpolate: el valor acumulado mínimo con el que se
// alcanza pct. Redondea al centavo hacia arriba para no quedar por debajo del nivel. Lo usa el payload de progreso para mostrar "faltan X para el siguiente nivel".
func ValueForDiscount(pct decimal.Decimal, b Bounds) (decimal.Decimal, error) {
	if err := b.Validate(); err != nil {
		return decimal.Zero, err
	}
	if pct.LessThanOrEqual(b.MinDiscount) {
		return b.MinReservationValue, nil
	}
	if pct.GreaterThanOrEqual(b.MaxDiscount) {
		return b.MaxReservationValue, nil
	}
	frac := pct.Sub(b.MinDiscount).Div(b.MaxDiscount.Sub(b.MinDiscount))
	return b.MinReservationValue.Add(b.MaxReservationValue.Sub(b.MinReservationValue).Mul(frac)).RoundCeil(2), nil
}
