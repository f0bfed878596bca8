package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidBounds      = errors.New("límites de descuento inválidos")
	ErrDropNotOpen        = errors.New("el drop no está abierto a reservas")
	ErrDropClosed         = errors.New("el drop ya fue cerrado")
	ErrPaymentDeclined    = errors.New("autorización de pago rechazada")
)
