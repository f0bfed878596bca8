package repository

import (
	"context"
	"time"

	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// DropRepository define el puerto de persistencia para Drop.
// Usado dentro de transacciones para mantener consistente el agregado (valor, descuento).
type DropRepository interface {
	Create(ctx context.Context, drop *entity.Drop) error
	GetByID(ctx context.Context, id string) (*entity.Drop, error)
	// GetForUpdate bloquea la fila del drop (SELECT FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Drop, error)
	Update(ctx context.Context, drop *entity.Drop) error
	List(ctx context.Context, status string, limit, offset int) ([]*entity.Drop, error)
	// ListExpiredOpen devuelve los IDs de drops abiertos cuya ventana terminó antes de now.
	ListExpiredOpen(ctx context.Context, now time.Time) ([]string, error)
}
