package payment

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/ports"
	"github.com/jhoicas/DropZone-api/internal/domain"
)

var _ ports.PaymentGateway = (*RetryingGateway)(nil)

// RetryConfig backoff exponencial para Capture y Void.
type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultRetryConfig valores usados por el API.
func DefaultRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:      maxRetries,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
	}
}

// RetryingGateway reintenta Capture y Void ante fallas de la pasarela.
// Authorize no se reintenta: un reintento podría dejar dos retenciones para la misma reserva.
type RetryingGateway struct {
	next ports.PaymentGateway
	cfg  RetryConfig
	log  zerolog.Logger
}

// NewRetryingGateway envuelve next.
func NewRetryingGateway(next ports.PaymentGateway, cfg RetryConfig, log zerolog.Logger) *RetryingGateway {
	return &RetryingGateway{next: next, cfg: cfg, log: log.With().Str("component", "payment_retry").Logger()}
}

func (g *RetryingGateway) Authorize(ctx context.Context, userID string, amount decimal.Decimal, reference string) (string, error) {
	return g.next.Authorize(ctx, userID, amount, reference)
}

func (g *RetryingGateway) Capture(ctx context.Context, holdID string, amount decimal.Decimal) error {
	return g.retry(ctx, "capture", holdID, func() error {
		return g.next.Capture(ctx, holdID, amount)
	})
}

func (g *RetryingGateway) Void(ctx context.Context, holdID string) error {
	return g.retry(ctx, "void", holdID, func() error {
		return g.next.Void(ctx, holdID)
	})
}

func (g *RetryingGateway) retry(ctx context.Context, op, holdID string, fn func() error) error {
	if g.cfg.MaxRetries <= 0 {
		return fn()
	}
	attempt := 0
	operation := func() error {
		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if errors.Is(err, domain.ErrPaymentDeclined) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return backoff.Permanent(err)
		}
		g.log.Warn().Err(err).Str("op", op).Str("hold_id", holdID).Int("attempt", attempt).Msg("pasarela falló, reintentando")
		return err
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = g.cfg.InitialInterval
	exp.MaxInterval = g.cfg.MaxInterval
	exp.Multiplier = g.cfg.Multiplier
	exp.MaxElapsedTime = 0 // el tope lo pone MaxRetries

	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(exp, uint64(g.cfg.MaxRetries)), ctx))
}
