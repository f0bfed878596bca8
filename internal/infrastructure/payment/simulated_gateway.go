// Package payment implementa la pasarela de pagos usada por los drops.
package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/ports"
	"github.com/jhoicas/DropZone-api/internal/domain"
)

var _ ports.PaymentGateway = (*SimulatedGateway)(nil)

const (
	holdAuthorized = "authorized"
	holdCaptured   = "captured"
	holdVoided     = "voided"
)

// Hold retención registrada en la pasarela simulada.
type Hold struct {
	ID        string
	UserID    string
	Reference string
	Amount    decimal.Decimal
	Captured  decimal.Decimal
	State     string
}

// SimulatedGateway pasarela en memoria para desarrollo y pruebas de integración.
// Respeta el contrato de una pasarela real: solo se captura una vez, nunca más de lo retenido,
// y una retención liberada no se puede cobrar.
type SimulatedGateway struct {
	mu        sync.Mutex
	holds     map[string]*Hold
	maxAmount decimal.Decimal
	log       zerolog.Logger
}

// NewSimulatedGateway crea la pasarela. maxAmount > 0 rechaza autorizaciones mayores (simula cupo).
func NewSimulatedGateway(maxAmount decimal.Decimal, log zerolog.Logger) *SimulatedGateway {
	return &SimulatedGateway{
		holds:     make(map[string]*Hold),
		maxAmount: maxAmount,
		log:       log.With().Str("component", "payment").Logger(),
	}
}

func (g *SimulatedGateway) Authorize(ctx context.Context, userID string, amount decimal.Decimal, reference string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !amount.IsPositive() {
		return "", fmt.Errorf("payment: monto a retener inválido %s", amount)
	}
	if g.maxAmount.IsPositive() && amount.GreaterThan(g.maxAmount) {
		g.log.Warn().Str("user_id", userID).Str("amount", amount.String()).Msg("autorización rechazada: supera el cupo")
		return "", domain.ErrPaymentDeclined
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	h := &Hold{
		ID:        "hold_" + uuid.New().String(),
		UserID:    userID,
		Reference: reference,
		Amount:    amount,
		State:     holdAuthorized,
	}
	g.holds[h.ID] = h
	g.log.Debug().Str("hold_id", h.ID).Str("reference", reference).Str("amount", amount.String()).Msg("retención autorizada")
	return h.ID, nil
}

func (g *SimulatedGateway) Capture(ctx context.Context, holdID string, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	h, ok := g.holds[holdID]
	if !ok {
		return fmt.Errorf("payment: retención %s no existe", holdID)
	}
	switch h.State {
	case holdCaptured:
		// reintento idempotente del mismo monto
		if h.Captured.Equal(amount) {
			return nil
		}
		return fmt.Errorf("payment: retención %s ya fue capturada", holdID)
	case holdVoided:
		return fmt.Errorf("payment: retención %s fue liberada", holdID)
	}
	if amount.IsNegative() || amount.GreaterThan(h.Amount) {
		return fmt.Errorf("payment: captura %s supera lo retenido %s", amount, h.Amount)
	}
	h.Captured = amount
	h.State = holdCaptured
	g.log.Debug().Str("hold_id", holdID).Str("amount", amount.String()).Msg("retención capturada")
	return nil
}

func (g *SimulatedGateway) Void(ctx context.Context, holdID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	h, ok := g.holds[holdID]
	if !ok {
		return fmt.Errorf("payment: retención %s no existe", holdID)
	}
	if h.State == holdCaptured {
		return fmt.Errorf("payment: retención %s ya fue capturada", holdID)
	}
	h.State = holdVoided
	return nil
}

// Hold devuelve una copia de la retención (para inspección y tests).
func (g *SimulatedGateway) Hold(holdID string) (Hold, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	h, ok := g.holds[holdID]
	if !ok {
		return Hold{}, false
	}
	return *h, true
}
