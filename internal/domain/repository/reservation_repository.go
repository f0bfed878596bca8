package repository

import (
	"context"

	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia para Reservation.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id string) (*entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
	ListByDrop(ctx context.Context, dropID string) ([]*entity.Reservation, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Reservation, error)
}
