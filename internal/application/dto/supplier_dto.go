package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=200"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name         *string `json:"name"`
	ContactEmail *string `json:"contact_email"`
	Phone        *string `json:"phone"`
	Active       *bool   `json:"active"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Phone        string    `json:"phone"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSupplierListRequest entrada para crear una lista con su calibración de descuento.
type CreateSupplierListRequest struct {
	SupplierID          string          `json:"supplier_id,omitempty"`
	Name                string          `json:"name"`
	MinDiscount         decimal.Decimal `json:"min_discount"`
	MaxDiscount         decimal.Decimal `json:"max_discount"`
	MinReservationValue decimal.Decimal `json:"min_reservation_value"`
	MaxReservationValue decimal.Decimal `json:"max_reservation_value"`
}

// AddListItemRequest agrega un producto a una lista con su precio base.
type AddListItemRequest struct {
	ProductID string          `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SupplierListItemResponse ítem de una lista.
type SupplierListItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// SupplierListResponse salida de una lista de proveedor.
type SupplierListResponse struct {
	ID                  string                     `json:"id"`
	SupplierID          string                     `json:"supplier_id"`
	Name                string                     `json:"name"`
	MinDiscount         decimal.Decimal            `json:"min_discount"`
	MaxDiscount         decimal.Decimal            `json:"max_discount"`
	MinReservationValue decimal.Decimal            `json:"min_reservation_value"`
	MaxReservationValue decimal.Decimal            `json:"max_reservation_value"`
	Items               []SupplierListItemResponse `json:"items,omitempty"`
	CreatedAt           time.Time                  `json:"created_at"`
}
