package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// SupplierListUseCase listas de proveedor: calibración de descuento y productos con precio base.
type SupplierListUseCase struct {
	repo         repository.SupplierListRepository
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
}

// NewSupplierListUseCase construye el caso de uso.
func NewSupplierListUseCase(
	repo repository.SupplierListRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
) *SupplierListUseCase {
	return &SupplierListUseCase{repo: repo, supplierRepo: supplierRepo, productRepo: productRepo}
}

// Create crea la lista. Los límites se validan aquí para que ningún drop herede una
// calibración indefinida (p. ej. MinReservationValue == MaxReservationValue).
func (uc *SupplierListUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateSupplierListRequest) (*dto.SupplierListResponse, error) {
	supplierID, err := supplierScope(actor, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.Active {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	list := &entity.SupplierList{
		ID:                  uuid.New().String(),
		SupplierID:          supplierID,
		Name:                in.Name,
		MinDiscount:         in.MinDiscount,
		MaxDiscount:         in.MaxDiscount,
		MinReservationValue: in.MinReservationValue,
		MaxReservationValue: in.MaxReservationValue,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := list.Bounds().Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	return toSupplierListResponse(list, nil), nil
}

// Get devuelve la lista con sus ítems. Retorna (nil, nil) si no existe.
func (uc *SupplierListUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, nil
	}
	if _, err := supplierScope(actor, list.SupplierID); err != nil {
		return nil, err
	}
	items, err := uc.repo.ListItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	out := toSupplierListResponse(list, nil)
	out.Items = make([]dto.SupplierListItemResponse, 0, len(items))
	for _, it := range items {
		item := toListItemResponse(it)
		if p, err := uc.productRepo.GetByID(ctx, it.ProductID); err == nil && p != nil {
			item.ProductName = p.Name
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

// ListBySupplier lista las listas del proveedor (sin ítems).
func (uc *SupplierListUseCase) ListBySupplier(ctx context.Context, actor dto.Actor, supplierID string) ([]dto.SupplierListResponse, error) {
	supplierID, err := supplierScope(actor, supplierID)
	if err != nil {
		return nil, err
	}
	lists, err := uc.repo.ListBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierListResponse, 0, len(lists))
	for _, l := range lists {
		out = append(out, *toSupplierListResponse(l, nil))
	}
	return out, nil
}

// AddItem agrega un producto del mismo proveedor a la lista con su precio base.
func (uc *SupplierListUseCase) AddItem(ctx context.Context, actor dto.Actor, listID string, in dto.AddListItemRequest) (*dto.SupplierListItemResponse, error) {
	if in.ProductID == "" || !in.UnitPrice.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := supplierScope(actor, list.SupplierID); err != nil {
		return nil, err
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.SupplierID != list.SupplierID {
		return nil, domain.ErrNotFound
	}
	item := &entity.SupplierListItem{
		ID:        uuid.New().String(),
		ListID:    list.ID,
		ProductID: product.ID,
		UnitPrice: in.UnitPrice.Round(2),
		CreatedAt: time.Now(),
	}
	if err := uc.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}
	out := toListItemResponse(item)
	out.ProductName = product.Name
	return &out, nil
}

func toSupplierListResponse(l *entity.SupplierList, items []dto.SupplierListItemResponse) *dto.SupplierListResponse {
	return &dto.SupplierListResponse{
		ID:                  l.ID,
		SupplierID:          l.SupplierID,
		Name:                l.Name,
		MinDiscount:         l.MinDiscount,
		MaxDiscount:         l.MaxDiscount,
		MinReservationValue: l.MinReservationValue,
		MaxReservationValue: l.MaxReservationValue,
		Items:               items,
		CreatedAt:           l.CreatedAt,
	}
}

func toListItemResponse(it *entity.SupplierListItem) dto.SupplierListItemResponse {
	return dto.SupplierListItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		UnitPrice: it.UnitPrice,
	}
}
