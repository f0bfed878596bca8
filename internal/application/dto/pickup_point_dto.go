package dto

import "time"

// CreatePickupPointRequest entrada para crear un punto de retiro.
type CreatePickupPointRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
}

// UpdatePickupPointRequest entrada para actualizar un punto de retiro.
type UpdatePickupPointRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	City    *string `json:"city"`
	Phone   *string `json:"phone"`
	Active  *bool   `json:"active"`
}

// PickupPointResponse salida de un punto de retiro.
type PickupPointResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
