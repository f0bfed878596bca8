package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/DropZone-api/internal/application/drop"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

var _ drop.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunDrop inicia una transacción, ejecuta fn con repos de drops y reservas atados a la tx
// y hace Commit o Rollback. Los bloqueos tomados con GetForUpdate se liberan al terminar.
func (r *TxRunner) RunDrop(ctx context.Context, fn func(
	dropRepo repository.DropRepository,
	reservationRepo repository.ReservationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	dropRepo := NewDropRepository(tx)
	reservationRepo := NewReservationRepository(tx)

	if err := fn(dropRepo, reservationRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
