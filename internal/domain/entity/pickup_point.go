package entity

import "time"

// PickupPoint representa un punto de retiro donde se entregan los productos de un drop.
type PickupPoint struct {
	ID        string
	Name      string
	Address   string
	City      string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
