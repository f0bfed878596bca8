package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptData datos necesarios para el comprobante de una reserva liquidada.
type ReceiptData struct {
	ReservationID  string
	DropName       string
	ClosedAt       time.Time
	SupplierName   string
	CustomerName   string
	CustomerEmail  string
	PickupName     string
	PickupAddress  string
	ProductName    string
	SKU            string
	Quantity       int
	UnitPrice      decimal.Decimal
	Subtotal       decimal.Decimal
	FinalDiscount  decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	Status         string
}

// ReceiptGenerator genera el PDF del comprobante.
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}
