package drop

import (
	"context"
	"fmt"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/application/ports"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// ReceiptUseCase arma el comprobante PDF de una reserva liquidada.
type ReceiptUseCase struct {
	reservationRepo repository.ReservationRepository
	dropRepo        repository.DropRepository
	listRepo        repository.SupplierListRepository
	supplierRepo    repository.SupplierRepository
	productRepo     repository.ProductRepository
	pointRepo       repository.PickupPointRepository
	userRepo        repository.UserRepository
	generator       ports.ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	reservationRepo repository.ReservationRepository,
	dropRepo repository.DropRepository,
	listRepo repository.SupplierListRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	pointRepo repository.PickupPointRepository,
	userRepo repository.UserRepository,
	generator ports.ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		reservationRepo: reservationRepo,
		dropRepo:        dropRepo,
		listRepo:        listRepo,
		supplierRepo:    supplierRepo,
		productRepo:     productRepo,
		pointRepo:       pointRepo,
		userRepo:        userRepo,
		generator:       generator,
	}
}

// Generate devuelve el PDF. Solo el dueño de la reserva o un admin; la reserva debe tener
// monto final (drop cerrado).
func (uc *ReceiptUseCase) Generate(ctx context.Context, actor dto.Actor, reservationID string) ([]byte, error) {
	data, err := uc.BuildData(ctx, actor, reservationID)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, *data)
	if err != nil {
		return nil, fmt.Errorf("generar comprobante: %w", err)
	}
	return pdf, nil
}

// BuildData reúne los datos del comprobante sin renderizarlo.
func (uc *ReceiptUseCase) BuildData(ctx context.Context, actor dto.Actor, reservationID string) (*ports.ReceiptData, error) {
	r, err := uc.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleAdmin && r.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if !r.FinalAmount.Valid || !r.FinalDiscount.Valid {
		return nil, domain.ErrConflict
	}

	d, err := uc.dropRepo.GetByID(ctx, r.DropID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}

	data := &ports.ReceiptData{
		ReservationID:  r.ID,
		DropName:       d.Name,
		Quantity:       r.Quantity,
		UnitPrice:      r.UnitPrice,
		Subtotal:       r.Subtotal,
		FinalDiscount:  r.FinalDiscount.Decimal,
		FinalAmount:    r.FinalAmount.Decimal,
		DiscountAmount: r.Subtotal.Sub(r.FinalAmount.Decimal),
		Status:         r.Status,
	}
	if d.ClosedAt != nil {
		data.ClosedAt = *d.ClosedAt
	}

	if list, err := uc.listRepo.GetByID(ctx, d.SupplierListID); err != nil {
		return nil, err
	} else if list != nil {
		s, err := uc.supplierRepo.GetByID(ctx, list.SupplierID)
		if err != nil {
			return nil, err
		}
		if s != nil {
			data.SupplierName = s.Name
		}
	}
	p, err := uc.productRepo.GetByID(ctx, r.ProductID)
	if err != nil {
		return nil, err
	}
	if p != nil {
		data.ProductName = p.Name
		data.SKU = p.SKU
	}
	pt, err := uc.pointRepo.GetByID(ctx, d.PickupPointID)
	if err != nil {
		return nil, err
	}
	if pt != nil {
		data.PickupName = pt.Name
		data.PickupAddress = pt.Address
	}
	u, err := uc.userRepo.GetByID(ctx, r.UserID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		data.CustomerName = u.Name
		data.CustomerEmail = u.Email
	}
	return data, nil
}
