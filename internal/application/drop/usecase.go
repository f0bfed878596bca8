package drop

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/discount"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// DropUseCase alta, apertura, consulta y listado de drops.
type DropUseCase struct {
	txRunner        TxRunner
	dropRepo        repository.DropRepository
	listRepo        repository.SupplierListRepository
	pointRepo       repository.PickupPointRepository
	productRepo     repository.ProductRepository
	reservationRepo repository.ReservationRepository
	now             func() time.Time
}

// NewDropUseCase construye el caso de uso.
func NewDropUseCase(
	txRunner TxRunner,
	dropRepo repository.DropRepository,
	listRepo repository.SupplierListRepository,
	pointRepo repository.PickupPointRepository,
	productRepo repository.ProductRepository,
	reservationRepo repository.ReservationRepository,
) *DropUseCase {
	return &DropUseCase{
		txRunner:        txRunner,
		dropRepo:        dropRepo,
		listRepo:        listRepo,
		pointRepo:       pointRepo,
		productRepo:     productRepo,
		reservationRepo: reservationRepo,
		now:             time.Now,
	}
}

// Create crea un drop en estado scheduled (u open si OpenNow). El descuento inicial es el
// que corresponde a valor acumulado cero, es decir el mínimo de la lista.
func (uc *DropUseCase) Create(ctx context.Context, actor dto.Actor, in dto.CreateDropRequest) (*dto.DropResponse, error) {
	if in.SupplierListID == "" || in.PickupPointID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.EndsAt.After(in.StartsAt) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.listRepo.GetByID(ctx, in.SupplierListID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}
	if !canManage(actor, list.SupplierID) {
		return nil, domain.ErrForbidden
	}
	point, err := uc.pointRepo.GetByID(ctx, in.PickupPointID)
	if err != nil {
		return nil, err
	}
	if point == nil || !point.Active {
		return nil, domain.ErrNotFound
	}
	initial, err := discount.Interpolate(decimal.Zero, list.Bounds())
	if err != nil {
		return nil, err
	}

	now := uc.now()
	status := entity.DropStatusScheduled
	if in.OpenNow {
		if !in.EndsAt.After(now) {
			return nil, domain.ErrInvalidInput
		}
		status = entity.DropStatusOpen
	}
	d := &entity.Drop{
		ID:              uuid.New().String(),
		SupplierListID:  list.ID,
		PickupPointID:   point.ID,
		Name:            in.Name,
		Status:          status,
		StartsAt:        in.StartsAt,
		EndsAt:          in.EndsAt,
		CurrentValue:    decimal.Zero,
		CurrentDiscount: initial,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.dropRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	out := toDropResponse(d)
	return &out, nil
}

// Open pasa un drop de scheduled a open. El cambio de estado se hace con la fila bloqueada
// para no pisar una cancelación o un cierre concurrente.
func (uc *DropUseCase) Open(ctx context.Context, actor dto.Actor, id string) (*dto.DropResponse, error) {
	if _, err := loadManagedDrop(ctx, uc.dropRepo, uc.listRepo, actor, id); err != nil {
		return nil, err
	}
	var opened *entity.Drop
	err := uc.txRunner.RunDrop(ctx, func(dropRepo repository.DropRepository, _ repository.ReservationRepository) error {
		d, err := dropRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DropStatusScheduled {
			return domain.ErrConflict
		}
		now := uc.now()
		if !d.EndsAt.After(now) {
			return domain.ErrConflict
		}
		d.Status = entity.DropStatusOpen
		d.UpdatedAt = now
		if err := dropRepo.Update(ctx, d); err != nil {
			return err
		}
		opened = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toDropResponse(opened)
	return &out, nil
}

// Get devuelve el drop con su progreso, punto de retiro e ítems al precio vigente.
// Retorna (nil, nil) si no existe.
func (uc *DropUseCase) Get(ctx context.Context, id string) (*dto.DropDetailResponse, error) {
	d, err := uc.dropRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	list, err := uc.listRepo.GetByID(ctx, d.SupplierListID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}

	out := &dto.DropDetailResponse{
		DropResponse: toDropResponse(d),
		Progress:     buildProgress(d, list),
	}

	if point, err := uc.pointRepo.GetByID(ctx, d.PickupPointID); err == nil && point != nil {
		out.PickupPoint = &dto.PickupPointResponse{
			ID:        point.ID,
			Name:      point.Name,
			Address:   point.Address,
			City:      point.City,
			Phone:     point.Phone,
			Active:    point.Active,
			CreatedAt: point.CreatedAt,
			UpdatedAt: point.UpdatedAt,
		}
	}

	items, err := uc.listRepo.ListItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	out.Items = make([]dto.DropItemDTO, 0, len(items))
	for _, it := range items {
		item := dto.DropItemDTO{
			ItemID:       it.ID,
			ProductID:    it.ProductID,
			UnitPrice:    it.UnitPrice,
			CurrentPrice: discount.ApplyDiscount(it.UnitPrice, d.CurrentDiscount),
		}
		if p, err := uc.productRepo.GetByID(ctx, it.ProductID); err == nil && p != nil {
			item.ProductName = p.Name
			item.ImageURL = p.ImageURL
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}

// List lista drops filtrando por estado (vacío = todos).
func (uc *DropUseCase) List(ctx context.Context, status string, page dto.PageRequest) (*dto.DropListResponse, error) {
	switch status {
	case "", entity.DropStatusScheduled, entity.DropStatusOpen, entity.DropStatusClosed, entity.DropStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	list, err := uc.dropRepo.List(ctx, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DropResponse, 0, len(list))
	for _, d := range list {
		items = append(items, toDropResponse(d))
	}
	return &dto.DropListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListReservations devuelve las reservas de un drop (admin o el proveedor dueño de la lista).
func (uc *DropUseCase) ListReservations(ctx context.Context, actor dto.Actor, id string) ([]dto.ReservationResponse, error) {
	d, err := loadManagedDrop(ctx, uc.dropRepo, uc.listRepo, actor, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.reservationRepo.ListByDrop(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReservationResponse(r))
	}
	return out, nil
}

// loadManagedDrop obtiene el drop verificando que el actor administre la lista del proveedor.
func loadManagedDrop(
	ctx context.Context,
	dropRepo repository.DropRepository,
	listRepo repository.SupplierListRepository,
	actor dto.Actor,
	id string,
) (*entity.Drop, error) {
	d, err := dropRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	list, err := listRepo.GetByID(ctx, d.SupplierListID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}
	if !canManage(actor, list.SupplierID) {
		return nil, domain.ErrForbidden
	}
	return d, nil
}

// buildProgress arma la barra de progreso. El "siguiente nivel" es el próximo
// porcentaje entero por encima del descuento vigente, tope en el máximo.
func buildProgress(d *entity.Drop, list *entity.SupplierList) dto.DropProgressDTO {
	b := list.Bounds()
	p := dto.DropProgressDTO{
		CurrentValue:        d.CurrentValue,
		CurrentDiscount:     d.CurrentDiscount,
		MinDiscount:         b.MinDiscount,
		MaxDiscount:         b.MaxDiscount,
		MinReservationValue: b.MinReservationValue,
		MaxReservationValue: b.MaxReservationValue,
		Progress:            discount.Progress(d.CurrentValue, b),
		ValueToNextDiscount: decimal.Zero,
	}
	if d.CurrentDiscount.GreaterThanOrEqual(b.MaxDiscount) {
		p.NextDiscount = b.MaxDiscount
		return p
	}
	next := d.CurrentDiscount.Floor().Add(decimal.NewFromInt(1))
	if next.GreaterThan(b.MaxDiscount) {
		next = b.MaxDiscount
	}
	p.NextDiscount = next
	if target, err := discount.ValueForDiscount(next, b); err == nil && target.GreaterThan(d.CurrentValue) {
		p.ValueToNextDiscount = target.Sub(d.CurrentValue)
	}
	return p
}
