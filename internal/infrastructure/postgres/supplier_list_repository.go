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

var _ repository.SupplierListRepository = (*SupplierListRepo)(nil)

// SupplierListRepo implementa SupplierListRepository sobre PostgreSQL.
// Los límites de descuento se guardan como NUMERIC y se leen como decimal.Decimal (pgx-shopspring-decimal).
type SupplierListRepo struct {
	q Querier
}

// NewSupplierListRepository construye el repositorio.
func NewSupplierListRepository(q Querier) *SupplierListRepo {
	return &SupplierListRepo{q: q}
}

const supplierListColumns = `id, supplier_id, name, min_discount, max_discount, min_reservation_value, max_reservation_value, created_at, updated_at`

func (r *SupplierListRepo) Create(ctx context.Context, l *entity.SupplierList) error {
	query := `
		INSERT INTO supplier_lists (` + supplierListColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.SupplierID, l.Name, l.MinDiscount, l.MaxDiscount,
		l.MinReservationValue, l.MaxReservationValue, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert supplier_list: %w", err)
	}
	return nil
}

func (r *SupplierListRepo) GetByID(ctx context.Context, id string) (*entity.SupplierList, error) {
	l, err := scanSupplierList(r.q.QueryRow(ctx, `SELECT `+supplierListColumns+` FROM supplier_lists WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier_list: %w", err)
	}
	return l, nil
}

func (r *SupplierListRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.SupplierList, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierListColumns+` FROM supplier_lists WHERE supplier_id = $1 ORDER BY created_at DESC`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list supplier_lists: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierList
	for rows.Next() {
		l, err := scanSupplierList(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier_list: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *SupplierListRepo) AddItem(ctx context.Context, it *entity.SupplierListItem) error {
	const q = `
		INSERT INTO supplier_list_items (id, list_id, product_id, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, q, it.ID, it.ListID, it.ProductID, it.UnitPrice, it.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert supplier_list_item: %w", err)
	}
	return nil
}

func (r *SupplierListRepo) GetItem(ctx context.Context, itemID string) (*entity.SupplierListItem, error) {
	const q = `SELECT id, list_id, product_id, unit_price, created_at FROM supplier_list_items WHERE id = $1`
	var it entity.SupplierListItem
	err := r.q.QueryRow(ctx, q, itemID).Scan(&it.ID, &it.ListID, &it.ProductID, &it.UnitPrice, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier_list_item: %w", err)
	}
	return &it, nil
}

func (r *SupplierListRepo) ListItems(ctx context.Context, listID string) ([]*entity.SupplierListItem, error) {
	const q = `
		SELECT id, list_id, product_id, unit_price, created_at
		FROM supplier_list_items WHERE list_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(ctx, q, listID)
	if err != nil {
		return nil, fmt.Errorf("list supplier_list_items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SupplierListItem
	for rows.Next() {
		var it entity.SupplierListItem
		if err := rows.Scan(&it.ID, &it.ListID, &it.ProductID, &it.UnitPrice, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier_list_item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func scanSupplierList(row rowScanner) (*entity.SupplierList, error) {
	var l entity.SupplierList
	if err := row.Scan(&l.ID, &l.SupplierID, &l.Name, &l.MinDiscount, &l.MaxDiscount,
		&l.MinReservationValue, &l.MaxReservationValue, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
