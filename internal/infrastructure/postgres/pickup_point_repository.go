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

var _ repository.PickupPointRepository = (*PickupPointRepo)(nil)

// PickupPointRepo implementación del puerto PickupPointRepository sobre PostgreSQL.
type PickupPointRepo struct {
	q Querier
}

// NewPickupPointRepository construye el adaptador de persistencia para puntos de retiro.
func NewPickupPointRepository(q Querier) *PickupPointRepo {
	return &PickupPointRepo{q: q}
}

// Create persiste un nuevo punto de retiro.
func (r *PickupPointRepo) Create(ctx context.Context, p *entity.PickupPoint) error {
	query := `
		INSERT INTO pickup_points (id, name, address, city, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Address, p.City, p.Phone, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pickup_point: %w", err)
	}
	return nil
}

// GetByID obtiene un punto de retiro por ID.
func (r *PickupPointRepo) GetByID(ctx context.Context, id string) (*entity.PickupPoint, error) {
	query := `
		SELECT id, name, address, city, phone, active, created_at, updated_at
		FROM pickup_points WHERE id = $1`
	var p entity.PickupPoint
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Address, &p.City, &p.Phone, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pickup_point: %w", err)
	}
	return &p, nil
}

// Update actualiza un punto de retiro.
func (r *PickupPointRepo) Update(ctx context.Context, p *entity.PickupPoint) error {
	query := `
		UPDATE pickup_points SET name = $2, address = $3, city = $4, phone = $5, active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Address, p.City, p.Phone, p.Active, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update pickup_point: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista puntos de retiro por nombre; onlyActive excluye los desactivados.
func (r *PickupPointRepo) List(ctx context.Context, onlyActive bool) ([]*entity.PickupPoint, error) {
	query := `
		SELECT id, name, address, city, phone, active, created_at, updated_at
		FROM pickup_points WHERE ($1 = false OR active) ORDER BY name`
	rows, err := r.q.Query(ctx, query, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("list pickup_points: %w", err)
	}
	defer rows.Close()
	var list []*entity.PickupPoint
	for rows.Next() {
		var p entity.PickupPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.City, &p.Phone, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pickup_point: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
