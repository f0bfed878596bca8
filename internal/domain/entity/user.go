package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleSupplier = "supplier"
	RoleCustomer = "customer"
)

// Estados de usuario.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User representa un usuario de la app. SupplierID solo aplica al rol supplier.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Phone        string
	Role         string // admin, supplier, customer
	SupplierID   string
	Status       string // active, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
