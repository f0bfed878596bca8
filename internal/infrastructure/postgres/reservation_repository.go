package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementa ReservationRepository sobre PostgreSQL.
// final_discount y final_amount son NULL hasta el cierre del drop (decimal.NullDecimal).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el repositorio. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationColumns = `id, drop_id, user_id, list_item_id, product_id, quantity, unit_price, subtotal,
	booked_discount, hold_amount, final_discount, final_amount, hold_id, status, created_at, updated_at`

func (r *ReservationRepo) Create(ctx context.Context, res *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		res.ID, res.DropID, res.UserID, res.ListItemID, res.ProductID, res.Quantity, res.UnitPrice, res.Subtotal,
		res.BookedDiscount, res.HoldAmount, res.FinalDiscount, res.FinalAmount, res.HoldID, res.Status,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	res, err := scanReservation(r.q.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// Update persiste liquidación y estado. Los montos de la reserva original no cambian.
func (r *ReservationRepo) Update(ctx context.Context, res *entity.Reservation) error {
	const q = `
		UPDATE reservations SET final_discount = $2, final_amount = $3, status = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, q, res.ID, res.FinalDiscount, res.FinalAmount, res.Status, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReservationRepo) ListByDrop(ctx context.Context, dropID string) ([]*entity.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE drop_id = $1 ORDER BY created_at`, dropID)
}

func (r *ReservationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Reservation, error) {
	return r.list(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

func scanReservation(row rowScanner) (*entity.Reservation, error) {
	var res entity.Reservation
	if err := row.Scan(
		&res.ID, &res.DropID, &res.UserID, &res.ListItemID, &res.ProductID, &res.Quantity, &res.UnitPrice, &res.Subtotal,
		&res.BookedDiscount, &res.HoldAmount, &res.FinalDiscount, &res.FinalAmount, &res.HoldID, &res.Status,
		&res.CreatedAt, &res.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &res, nil
}
