package repository

import (
	"context"

	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySupplierAndSKU(ctx context.Context, supplierID, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListBySupplier(ctx context.Context, supplierID string, limit, offset int) ([]*entity.Product, error)
}
