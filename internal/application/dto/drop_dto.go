package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDropRequest body para POST /api/drops.
type CreateDropRequest struct {
	SupplierListID string    `json:"supplier_list_id"`
	PickupPointID  string    `json:"pickup_point_id"`
	Name           string    `json:"name"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	OpenNow        bool      `json:"open_now,omitempty"`
}

// DropResponse salida resumida de un drop.
type DropResponse struct {
	ID              string          `json:"id"`
	SupplierListID  string          `json:"supplier_list_id"`
	PickupPointID   string          `json:"pickup_point_id"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	StartsAt        time.Time       `json:"starts_at"`
	EndsAt          time.Time       `json:"ends_at"`
	CurrentValue    decimal.Decimal `json:"current_value"`
	CurrentDiscount decimal.Decimal `json:"current_discount"`
	ClosedAt        *time.Time      `json:"closed_at,omitempty"`
}

// DropProgressDTO estado de la barra de progreso del drop.
type DropProgressDTO struct {
	CurrentValue        decimal.Decimal `json:"current_value"`
	CurrentDiscount     decimal.Decimal `json:"current_discount"`
	MinDiscount         decimal.Decimal `json:"min_discount"`
	MaxDiscount         decimal.Decimal `json:"max_discount"`
	MinReservationValue decimal.Decimal `json:"min_reservation_value"`
	MaxReservationValue decimal.Decimal `json:"max_reservation_value"`
	Progress            decimal.Decimal `json:"progress"`               // 0..1
	NextDiscount        decimal.Decimal `json:"next_discount"`          // siguiente punto entero
	ValueToNextDiscount decimal.Decimal `json:"value_to_next_discount"` // faltante para alcanzarlo
}

// DropItemDTO producto ofrecido en el drop con el precio vigente.
type DropItemDTO struct {
	ItemID       string          `json:"item_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ImageURL     string          `json:"image_url,omitempty"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// DropDetailResponse salida completa de GET /api/drops/:id.
type DropDetailResponse struct {
	DropResponse
	PickupPoint *PickupPointResponse `json:"pickup_point,omitempty"`
	Progress    DropProgressDTO      `json:"progress"`
	Items       []DropItemDTO        `json:"items"`
}

// DropListResponse lista paginada de drops.
type DropListResponse struct {
	Items []DropResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DropSettlementResponse resultado del cierre de un drop.
type DropSettlementResponse struct {
	DropID        string          `json:"drop_id"`
	FinalDiscount decimal.Decimal `json:"final_discount"`
	FinalValue    decimal.Decimal `json:"final_value"`
	Reservations  int             `json:"reservations"`
	Charged       int             `json:"charged"`
	ChargeFailed  int             `json:"charge_failed"`
	TotalCharged  decimal.Decimal `json:"total_charged"`
}
