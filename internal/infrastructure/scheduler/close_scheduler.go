// Package scheduler ejecuta tareas periódicas del API (cierre automático de drops vencidos).
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DropCloser cierra los drops abiertos cuya ventana ya terminó.
type DropCloser interface {
	CloseExpiredDrops(ctx context.Context) (int, error)
}

// CloseScheduler corre CloseExpiredDrops según una expresión cron.
// Si una ejecución sigue en curso la siguiente se omite.
type CloseScheduler struct {
	cron    *cron.Cron
	closer  DropCloser
	log     zerolog.Logger
	timeout time.Duration

	stopOnce sync.Once
}

// NewCloseScheduler valida la expresión (ej. "@every 1m", "*/5 * * * *") y registra el job.
func NewCloseScheduler(spec string, closer DropCloser, log zerolog.Logger) (*CloseScheduler, error) {
	s := &CloseScheduler{
		closer:  closer,
		log:     log.With().Str("component", "scheduler").Logger(),
		timeout: 2 * time.Minute,
	}
	s.cron = cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("scheduler: expresión inválida %q: %w", spec, err)
	}
	return s, nil
}

// Start arranca el cron en su propia goroutine.
func (s *CloseScheduler) Start() {
	s.log.Info().Msg("scheduler de cierre de drops iniciado")
	s.cron.Start()
}

// Stop detiene el cron y espera el job en curso hasta que ctx expire.
func (s *CloseScheduler) Stop(ctx context.Context) {
	s.stopOnce.Do(func() {
		done := s.cron.Stop()
		select {
		case <-done.Done():
			s.log.Info().Msg("scheduler detenido")
		case <-ctx.Done():
			s.log.Warn().Msg("scheduler detenido con un cierre en curso")
		}
	})
}

// RunOnce ejecuta un ciclo de cierre. Devuelve la cantidad de drops cerrados.
func (s *CloseScheduler) RunOnce(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.closer.CloseExpiredDrops(ctx)
	if err != nil {
		s.log.Error().Err(err).Int("closed", n).Msg("cierre automático con errores")
		return n
	}
	if n > 0 {
		s.log.Info().Int("closed", n).Dur("elapsed", time.Since(start)).Msg("drops vencidos cerrados")
	}
	return n
}
