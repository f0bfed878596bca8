package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentGateway es el contrato con la pasarela de pagos.
// Una reserva autoriza una retención (hold); al cerrar el drop se captura el monto final,
// que nunca supera el retenido. Si el drop se cancela, la retención se libera.
type PaymentGateway interface {
	// Authorize retiene amount en el medio de pago del usuario y devuelve el ID de la retención.
	// Retorna domain.ErrPaymentDeclined si la pasarela la rechaza.
	Authorize(ctx context.Context, userID string, amount decimal.Decimal, reference string) (holdID string, err error)
	// Capture cobra amount (<= monto retenido) sobre la retención holdID.
	Capture(ctx context.Context, holdID string, amount decimal.Decimal) error
	// Void libera la retención sin cobrar.
	Void(ctx context.Context, holdID string) error
}
