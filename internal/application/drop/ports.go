package drop

import (
	"context"

	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Reserva y actualización del agregado del drop se confirman juntas o no se confirman.
type TxRunner interface {
	RunDrop(ctx context.Context, fn func(
		dropRepo repository.DropRepository,
		reservationRepo repository.ReservationRepository,
	) error) error
}
