package ports

import "github.com/shopspring/decimal"

// DropMetrics registra eventos de negocio de los drops (Prometheus en infraestructura).
type DropMetrics interface {
	ReservationBooked(dropID string, amount, discount decimal.Decimal)
	ReservationRejected(reason string)
	DropClosed(charged, failed int, total decimal.Decimal)
}

// NoopMetrics implementación vacía para tests y cuando no hay métricas configuradas.
type NoopMetrics struct{}

func (NoopMetrics) ReservationBooked(string, decimal.Decimal, decimal.Decimal) {}
func (NoopMetrics) ReservationRejected(string)                                 {}
func (NoopMetrics) DropClosed(int, int, decimal.Decimal)                       {}
