package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/DropZone-api/internal/domain"
	"github.com/jhoicas/DropZone-api/internal/domain/entity"
	"github.com/jhoicas/DropZone-api/internal/domain/repository"
)

var _ repository.DropRepository = (*DropRepo)(nil)

// DropRepo implementa DropRepository sobre PostgreSQL. Dentro de TxRunner.RunDrop recibe la tx
// como Querier, de modo que GetForUpdate y Update quedan en la misma transacción.
type DropRepo struct {
	q Querier
}

// NewDropRepository construye el repositorio. Pasar pool o tx (Querier).
func NewDropRepository(q Querier) *DropRepo {
	return &DropRepo{q: q}
}

const dropColumns = `id, supplier_list_id, pickup_point_id, name, status, starts_at, ends_at,
	current_value, current_discount, closed_at, created_at, updated_at`

func (r *DropRepo) Create(ctx context.Context, d *entity.Drop) error {
	query := `
		INSERT INTO drops (` + dropColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.SupplierListID, d.PickupPointID, d.Name, d.Status, d.StartsAt, d.EndsAt,
		d.CurrentValue, d.CurrentDiscount, d.ClosedAt, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert drop: %w", err)
	}
	return nil
}

func (r *DropRepo) GetByID(ctx context.Context, id string) (*entity.Drop, error) {
	return r.getOne(ctx, `SELECT `+dropColumns+` FROM drops WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta el fin de la transacción. Reservas y cierres concurrentes
// sobre el mismo drop esperan aquí y leen el valor ya confirmado por la transacción anterior.
func (r *DropRepo) GetForUpdate(ctx context.Context, id string) (*entity.Drop, error) {
	return r.getOne(ctx, `SELECT `+dropColumns+` FROM drops WHERE id = $1 FOR UPDATE`, id)
}

// Update persiste estado y agregado (valor, descuento) del drop.
func (r *DropRepo) Update(ctx context.Context, d *entity.Drop) error {
	const q = `
		UPDATE drops SET name = $2, status = $3, starts_at = $4, ends_at = $5,
			current_value = $6, current_discount = $7, closed_at = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, q,
		d.ID, d.Name, d.Status, d.StartsAt, d.EndsAt,
		d.CurrentValue, d.CurrentDiscount, d.ClosedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update drop: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DropRepo) List(ctx context.Context, status string, limit, offset int) ([]*entity.Drop, error) {
	query := `
		SELECT ` + dropColumns + `
		FROM drops WHERE ($1 = '' OR status = $1)
		ORDER BY starts_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list drops: %w", err)
	}
	defer rows.Close()
	var list []*entity.Drop
	for rows.Next() {
		d, err := scanDrop(rows)
		if err != nil {
			return nil, fmt.Errorf("scan drop: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DropRepo) ListExpiredOpen(ctx context.Context, now time.Time) ([]string, error) {
	const q = `SELECT id FROM drops WHERE status = 'open' AND ends_at <= $1 ORDER BY ends_at`
	rows, err := r.q.Query(ctx, q, now)
	if err != nil {
		return nil, fmt.Errorf("list expired drops: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan drop id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *DropRepo) getOne(ctx context.Context, query, id string) (*entity.Drop, error) {
	d, err := scanDrop(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get drop: %w", err)
	}
	return d, nil
}

func scanDrop(row rowScanner) (*entity.Drop, error) {
	var d entity.Drop
	if err := row.Scan(
		&d.ID, &d.SupplierListID, &d.PickupPointID, &d.Name, &d.Status, &d.StartsAt, &d.EndsAt,
		&d.CurrentValue, &d.CurrentDiscount, &d.ClosedAt, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}
