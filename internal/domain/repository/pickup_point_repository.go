package repository

import (
	"context"

	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// PickupPointRepository define el puerto de persistencia para puntos de retiro.
type PickupPointRepository interface {
	Create(ctx context.Context, point *entity.PickupPoint) error
	GetByID(ctx context.Context, id string) (*entity.PickupPoint, error)
	Update(ctx context.Context, point *entity.PickupPoint) error
	List(ctx context.Context, onlyActive bool) ([]*entity.PickupPoint, error)
}
