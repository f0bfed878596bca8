package entity

import "time"

// Supplier representa un proveedor que publica listas de productos para drops.
type Supplier struct {
	ID           string
	Name         string
	ContactEmail string
	Phone        string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
