package repository

import (
	"context"

	"github.com/jhoicas/DropZone-api/internal/domain/entity"
)

// SupplierListRepository define el puerto de persistencia para listas de proveedor y sus ítems.
type SupplierListRepository interface {
	Create(ctx context.Context, list *entity.SupplierList) error
	GetByID(ctx context.Context, id string) (*entity.SupplierList, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.SupplierList, error)
	AddItem(ctx context.Context, item *entity.SupplierListItem) error
	GetItem(ctx context.Context, itemID string) (*entity.SupplierListItem, error)
	ListItems(ctx context.Context, listID string) ([]*entity.SupplierListItem, error)
}
