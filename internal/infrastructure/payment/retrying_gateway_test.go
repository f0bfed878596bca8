package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/DropZone-api/internal/domain"
)

// flakyGateway falla las primeras failures llamadas a Capture/Void.
type flakyGateway struct {
	failures  int
	calls     int
	authCalls int
	err       error
}

func (f *flakyGateway) Authorize(context.Context, string, decimal.Decimal, string) (string, error) {
	f.authCalls++
	return "", errors.New("timeout")
}

func (f *flakyGateway) Capture(context.Context, string, decimal.Decimal) error { return f.next() }
func (f *flakyGateway) Void(context.Context, string) error                      { return f.next() }

func (f *flakyGateway) next() error {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return f.err
		}
		return errors.New("503 pasarela no disponible")
	}
	return nil
}

func fastRetry(n int) RetryConfig {
	return RetryConfig{MaxRetries: n, InitialInterval: time.Millisecond, MaxInterval: 5 * time.Millisecond, Multiplier: 2}
}

func TestRetryingGateway_CapturaTrasFallasTransitorias(t *testing.T) {
	next := &flakyGateway{failures: 2}
	g := NewRetryingGateway(next, fastRetry(3), zerolog.Nop())

	require.NoError(t, g.Capture(context.Background(), "hold-1", decimal.NewFromInt(100)))
	assert.Equal(t, 3, next.calls)
}

func TestRetryingGateway_AgotaReintentos(t *testing.T) {
	next := &flakyGateway{failures: 10}
	g := NewRetryingGateway(next, fastRetry(2), zerolog.Nop())

	assert.Error(t, g.Void(context.Background(), "hold-1"))
	assert.Equal(t, 3, next.calls, "intento inicial + 2 reintentos")
}

func TestRetryingGateway_RechazoEsPermanente(t *testing.T) {
	next := &flakyGateway{failures: 10, err: domain.ErrPaymentDeclined}
	g := NewRetryingGateway(next, fastRetry(5), zerolog.Nop())

	err := g.Capture(context.Background(), "hold-1", decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Equal(t, 1, next.calls)
}

func TestRetryingGateway_AuthorizeSinReintento(t *testing.T) {
	next := &flakyGateway{}
	g := NewRetryingGateway(next, fastRetry(5), zerolog.Nop())

	_, err := g.Authorize(context.Background(), "u1", decimal.NewFromInt(100), "res-1")
	assert.Error(t, err)
	assert.Equal(t, 1, next.authCalls)
}

func TestRetryingGateway_SobreSimulado(t *testing.T) {
	sim := newGateway()
	g := NewRetryingGateway(sim, fastRetry(2), zerolog.Nop())
	ctx := context.Background()

	id, err := g.Authorize(ctx, "u1", decimal.NewFromInt(500), "res-1")
	require.NoError(t, err)
	require.NoError(t, g.Capture(ctx, id, decimal.NewFromInt(450)))
	h, _ := sim.Hold(id)
	assert.Equal(t, holdCaptured, h.State)
}
