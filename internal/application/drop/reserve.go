package drop

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/application/ports"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/discount"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// MaxQuantityPerReservation tope de unidades por reserva.
const MaxQuantityPerReservation = 100

// ReserveUseCase registra reservas sobre un drop abierto.
//
// Flujo: valida ítem y drop → autoriza la retención de pago → en una sola transacción
// bloquea la fila del drop (SELECT FOR UPDATE), recalcula valor y descuento desde el valor
// bloqueado, inserta la reserva y actualiza el drop → Commit. Si la transacción falla se
// libera la retención. Reservas concurrentes sobre el mismo drop quedan serializadas.
type ReserveUseCase struct {
	txRunner        TxRunner
	dropRepo        repository.DropRepository
	listRepo        repository.SupplierListRepository
	reservationRepo repository.ReservationRepository
	payments        ports.PaymentGateway
	metrics         ports.DropMetrics
	log             zerolog.Logger
	now             func() time.Time
}

// NewReserveUseCase construye el caso de uso. metrics puede ser nil.
func NewReserveUseCase(
	txRunner TxRunner,
	dropRepo repository.DropRepository,
	listRepo repository.SupplierListRepository,
	reservationRepo repository.ReservationRepository,
	payments ports.PaymentGateway,
	metrics ports.DropMetrics,
	log zerolog.Logger,
) *ReserveUseCase {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &ReserveUseCase{
		txRunner:        txRunner,
		dropRepo:        dropRepo,
		listRepo:        listRepo,
		reservationRepo: reservationRepo,
		payments:        payments,
		metrics:         metrics,
		log:             log,
		now:             time.Now,
	}
}

// ReserveInput entrada del caso de uso.
type ReserveInput struct {
	UserID   string
	DropID   string
	ItemID   string
	Quantity int
}

// Reserve crea la reserva y devuelve su estado (incluye el descuento vigente tras sumarla).
func (uc *ReserveUseCase) Reserve(ctx context.Context, in ReserveInput) (*dto.ReservationResponse, error) {
	if in.UserID == "" || in.DropID == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 || in.Quantity > MaxQuantityPerReservation {
		uc.metrics.ReservationRejected("invalid_quantity")
		return nil, domain.ErrInvalidInput
	}

	d, err := uc.dropRepo.GetByID(ctx, in.DropID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	if !d.AcceptsReservations(uc.now()) {
		uc.metrics.ReservationRejected("drop_not_open")
		return nil, domain.ErrDropNotOpen
	}
	list, err := uc.listRepo.GetByID(ctx, d.SupplierListID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.listRepo.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.ListID != list.ID {
		return nil, domain.ErrNotFound
	}

	subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
	if !subtotal.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	// El descuento nunca baja (el valor acumulado no decrece), así que retener con el
	// descuento leído ahora cubre cualquier cobro final.
	holdAmount := discount.ApplyDiscount(subtotal, d.CurrentDiscount)
	reservationID := uuid.New().String()

	holdID, err := uc.payments.Authorize(ctx, in.UserID, holdAmount, reservationID)
	if err != nil {
		uc.metrics.ReservationRejected("payment_declined")
		if errors.Is(err, domain.ErrPaymentDeclined) {
			return nil, err
		}
		return nil, errors.Join(domain.ErrPaymentDeclined, err)
	}

	var created *entity.Reservation
	var locked *entity.Drop
	err = uc.txRunner.RunDrop(ctx, func(dropRepo repository.DropRepository, reservationRepo repository.ReservationRepository) error {
		row, err := dropRepo.GetForUpdate(ctx, in.DropID)
		if err != nil {
			return err
		}
		if row == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if !row.AcceptsReservations(now) {
			return domain.ErrDropNotOpen
		}
		if err := row.AddReservation(subtotal, list.Bounds()); err != nil {
			return err
		}
		row.UpdatedAt = now
		locked = row

		created = &entity.Reservation{
			ID:             reservationID,
			DropID:         locked.ID,
			UserID:         in.UserID,
			ListItemID:     item.ID,
			ProductID:      item.ProductID,
			Quantity:       in.Quantity,
			UnitPrice:      item.UnitPrice,
			Subtotal:       subtotal,
			BookedDiscount: locked.CurrentDiscount,
			HoldAmount:     holdAmount,
			HoldID:         holdID,
			Status:         entity.ReservationStatusAuthorized,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := reservationRepo.Create(ctx, created); err != nil {
			return err
		}
		return dropRepo.Update(ctx, locked)
	})
	if err != nil {
		if verr := uc.payments.Void(ctx, holdID); verr != nil {
			uc.log.Error().Err(verr).Str("hold_id", holdID).Str("drop_id", in.DropID).
				Msg("no se pudo liberar la retención tras fallar la reserva")
		}
		if errors.Is(err, domain.ErrDropNotOpen) {
			uc.metrics.ReservationRejected("drop_not_open")
		}
		return nil, err
	}

	uc.metrics.ReservationBooked(locked.ID, subtotal, locked.CurrentDiscount)
	uc.log.Info().
		Str("drop_id", locked.ID).
		Str("reservation_id", created.ID).
		Str("subtotal", subtotal.StringFixed(2)).
		Str("current_value", locked.CurrentValue.StringFixed(2)).
		Str("current_discount", locked.CurrentDiscount.StringFixed(2)).
		Msg("reserva registrada")

	out := toReservationResponse(created)
	return &out, nil
}

// ListMine lista las reservas del usuario.
func (uc *ReserveUseCase) ListMine(ctx context.Context, userID string, page dto.PageRequest) (*dto.ReservationListResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	list, err := uc.reservationRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, toReservationResponse(r))
	}
	return &dto.ReservationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
