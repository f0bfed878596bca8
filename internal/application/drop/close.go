package drop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/dto"
	"github.com/jhoicas/DropZone-api/internal/application/ports"
	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/discount"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

// CloseUseCase cierre, cancelación y liquidación de drops.
//
// Al cerrar, el descuento final de todas las reservas es el CurrentDiscount del drop en ese
// momento. La fijación del descuento ocurre dentro de la transacción; la captura de pagos
// ocurre después del Commit, una reserva a la vez.
type CloseUseCase struct {
	txRunner        TxRunner
	dropRepo        repository.DropRepository
	listRepo        repository.SupplierListRepository
	reservationRepo repository.ReservationRepository
	payments        ports.PaymentGateway
	metrics         ports.DropMetrics
	log             zerolog.Logger
	now             func() time.Time
}

// NewCloseUseCase construye el caso de uso. metrics puede ser nil.
func NewCloseUseCase(
	txRunner TxRunner,
	dropRepo repository.DropRepository,
	listRepo repository.SupplierListRepository,
	reservationRepo repository.ReservationRepository,
	payments ports.PaymentGateway,
	metrics ports.DropMetrics,
	log zerolog.Logger,
) *CloseUseCase {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &CloseUseCase{
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

// CloseByActor cierra un drop a pedido de un admin o del proveedor dueño.
func (uc *CloseUseCase) CloseByActor(ctx context.Context, actor dto.Actor, id string) (*dto.DropSettlementResponse, error) {
	if _, err := loadManagedDrop(ctx, uc.dropRepo, uc.listRepo, actor, id); err != nil {
		return nil, err
	}
	return uc.CloseDrop(ctx, id)
}

// CloseDrop cierra el drop, fija descuento y monto final de cada reserva autorizada y captura los pagos.
func (uc *CloseUseCase) CloseDrop(ctx context.Context, id string) (*dto.DropSettlementResponse, error) {
	var closed *entity.Drop
	var toCharge []*entity.Reservation

	err := uc.txRunner.RunDrop(ctx, func(dropRepo repository.DropRepository, reservationRepo repository.ReservationRepository) error {
		d, err := dropRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		now := uc.now()
		if err := d.Close(now); err != nil {
			return err
		}
		final := d.CurrentDiscount

		reservations, err := reservationRepo.ListByDrop(ctx, d.ID)
		if err != nil {
			return err
		}
		for _, r := range reservations {
			if r.Status != entity.ReservationStatusAuthorized {
				continue
			}
			r.FinalDiscount = decimal.NewNullDecimal(final)
			r.FinalAmount = decimal.NewNullDecimal(discount.ApplyDiscount(r.Subtotal, final))
			r.UpdatedAt = now
			if err := reservationRepo.Update(ctx, r); err != nil {
				return err
			}
			toCharge = append(toCharge, r)
		}
		if err := dropRepo.Update(ctx, d); err != nil {
			return err
		}
		closed = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &dto.DropSettlementResponse{
		DropID:        closed.ID,
		FinalDiscount: closed.CurrentDiscount,
		FinalValue:    closed.CurrentValue,
		Reservations:  len(toCharge),
		TotalCharged:  decimal.Zero,
	}
	uc.capture(ctx, uc.reservationRepo, toCharge, out)

	uc.metrics.DropClosed(out.Charged, out.ChargeFailed, out.TotalCharged)
	uc.log.Info().
		Str("drop_id", closed.ID).
		Str("final_discount", closed.CurrentDiscount.StringFixed(2)).
		Str("final_value", closed.CurrentValue.StringFixed(2)).
		Int("charged", out.Charged).
		Int("charge_failed", out.ChargeFailed).
		Msg("drop cerrado")
	return out, nil
}

// RetryCharges reintenta la captura de reservas charge_failed de un drop cerrado.
// Se ejecuta con la fila del drop bloqueada: dos reintentos simultáneos no capturan dos veces
// la misma retención, el segundo ya no encuentra reservas pendientes.
func (uc *CloseUseCase) RetryCharges(ctx context.Context, id string) (*dto.DropSettlementResponse, error) {
	var out *dto.DropSettlementResponse
	err := uc.txRunner.RunDrop(ctx, func(dropRepo repository.DropRepository, reservationRepo repository.ReservationRepository) error {
		d, err := dropRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DropStatusClosed {
			return domain.ErrConflict
		}
		all, err := reservationRepo.ListByDrop(ctx, id)
		if err != nil {
			return err
		}
		var failed []*entity.Reservation
		for _, r := range all {
			if r.Status == entity.ReservationStatusChargeFailed && r.FinalAmount.Valid {
				failed = append(failed, r)
			}
		}
		out = &dto.DropSettlementResponse{
			DropID:        d.ID,
			FinalDiscount: d.CurrentDiscount,
			FinalValue:    d.CurrentValue,
			Reservations:  len(failed),
			TotalCharged:  decimal.Zero,
		}
		uc.capture(ctx, reservationRepo, failed, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("drop_id", out.DropID).Int("charged", out.Charged).Int("charge_failed", out.ChargeFailed).Msg("reintento de cobros")
	return out, nil
}

// capture cobra cada reserva y persiste su estado con reservationRepo.
func (uc *CloseUseCase) capture(
	ctx context.Context,
	reservationRepo repository.ReservationRepository,
	reservations []*entity.Reservation,
	out *dto.DropSettlementResponse,
) {
	for _, r := range reservations {
		amount := r.FinalAmount.Decimal
		status := entity.ReservationStatusCharged
		if err := uc.payments.Capture(ctx, r.HoldID, amount); err != nil {
			status = entity.ReservationStatusChargeFailed
			uc.log.Warn().Err(err).Str("reservation_id", r.ID).Str("hold_id", r.HoldID).Msg("captura de pago fallida")
		}
		r.Status = status
		r.UpdatedAt = uc.now()
		if err := reservationRepo.Update(ctx, r); err != nil {
			uc.log.Error().Err(err).Str("reservation_id", r.ID).Str("status", status).Msg("no se pudo persistir el estado del cobro")
		}
		if status == entity.ReservationStatusCharged {
			out.Charged++
			out.TotalCharged = out.TotalCharged.Add(amount)
		} else {
			out.ChargeFailed++
		}
	}
}

// CloseExpiredDrops cierra todos los drops abiertos cuya ventana terminó. Lo invoca el scheduler.
// Un drop cerrado en paralelo por otra vía no cuenta como error.
func (uc *CloseUseCase) CloseExpiredDrops(ctx context.Context) (int, error) {
	ids, err := uc.dropRepo.ListExpiredOpen(ctx, uc.now())
	if err != nil {
		return 0, fmt.Errorf("listar drops vencidos: %w", err)
	}
	closed := 0
	var errs []error
	for _, id := range ids {
		if _, err := uc.CloseDrop(ctx, id); err != nil {
			if errors.Is(err, domain.ErrDropClosed) {
				continue
			}
			errs = append(errs, fmt.Errorf("drop %s: %w", id, err))
			continue
		}
		closed++
	}
	return closed, errors.Join(errs...)
}

// Cancel cancela un drop scheduled u open y libera las retenciones de sus reservas.
func (uc *CloseUseCase) Cancel(ctx context.Context, actor dto.Actor, id string) (*dto.DropResponse, error) {
	if _, err := loadManagedDrop(ctx, uc.dropRepo, uc.listRepo, actor, id); err != nil {
		return nil, err
	}
	var cancelled *entity.Drop
	var toVoid []*entity.Reservation
	err := uc.txRunner.RunDrop(ctx, func(dropRepo repository.DropRepository, reservationRepo repository.ReservationRepository) error {
		d, err := dropRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil {
			return domain.ErrNotFound
		}
		if d.Status != entity.DropStatusScheduled && d.Status != entity.DropStatusOpen {
			return domain.ErrDropClosed
		}
		now := uc.now()
		d.Status = entity.DropStatusCancelled
		d.ClosedAt = &now
		d.UpdatedAt = now

		reservations, err := reservationRepo.ListByDrop(ctx, d.ID)
		if err != nil {
			return err
		}
		for _, r := range reservations {
			if r.Status != entity.ReservationStatusAuthorized {
				continue
			}
			r.Status = entity.ReservationStatusVoid
			r.UpdatedAt = now
			if err := reservationRepo.Update(ctx, r); err != nil {
				return err
			}
			toVoid = append(toVoid, r)
		}
		if err := dropRepo.Update(ctx, d); err != nil {
			return err
		}
		cancelled = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, r := range toVoid {
		if err := uc.payments.Void(ctx, r.HoldID); err != nil {
			uc.log.Error().Err(err).Str("reservation_id", r.ID).Str("hold_id", r.HoldID).Msg("no se pudo liberar la retención")
		}
	}
	uc.log.Info().Str("drop_id", cancelled.ID).Int("voided", len(toVoid)).Msg("drop cancelado")
	out := toDropResponse(cancelled)
	return &out, nil
}
