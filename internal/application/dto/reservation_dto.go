package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReservationRequest body para POST /api/drops/:id/reservations.
type CreateReservationRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// ReservationResponse salida de una reserva.
type ReservationResponse struct {
	ID             string           `json:"id"`
	DropID         string           `json:"drop_id"`
	UserID         string           `json:"user_id"`
	ItemID         string           `json:"item_id"`
	ProductID      string           `json:"product_id"`
	Quantity       int              `json:"quantity"`
	UnitPrice      decimal.Decimal  `json:"unit_price"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	BookedDiscount decimal.Decimal  `json:"booked_discount"`
	HoldAmount     decimal.Decimal  `json:"hold_amount"`
	FinalDiscount  *decimal.Decimal `json:"final_discount,omitempty"`
	FinalAmount    *decimal.Decimal `json:"final_amount,omitempty"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// ReservationListResponse lista paginada de reservas.
type ReservationListResponse struct {
	Items []ReservationResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
