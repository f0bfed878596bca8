// Package metrics expone métricas Prometheus del API y de los drops.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/DropZone-api/internal/application/ports"
)

const namespace = "dropzone"

var _ ports.DropMetrics = (*Metrics)(nil)

// Metrics agrupa los collectors de la aplicación sobre un registry propio.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	reservations        prometheus.Counter
	reservedAmount      prometheus.Counter
	reservationRejected *prometheus.CounterVec
	bookedDiscount      prometheus.Histogram
	dropsClosed         prometheus.Counter
	charges             *prometheus.CounterVec
	chargedAmount       prometheus.Counter
}

// New crea y registra los collectors. withRuntime agrega los collectors de proceso y Go.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "http",
			Name: "inflight_requests",
			Help: "Requests HTTP en curso.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http",
			Name: "requests_total",
			Help: "Total de requests HTTP atendidos.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http",
			Name:    "request_duration_seconds",
			Help:    "Duración de los requests HTTP.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms a ~5s
		}, []string{"method", "path"}),
		reservations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drops",
			Name: "reservations_total",
			Help: "Reservas confirmadas.",
		}),
		reservedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drops",
			Name: "reserved_amount_total",
			Help: "Suma de subtotales reservados (sin descuento).",
		}),
		reservationRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drops",
			Name: "reservations_rejected_total",
			Help: "Reservas rechazadas por motivo.",
		}, []string{"reason"}),
		bookedDiscount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "drops",
			Name:    "booked_discount_percent",
			Help:    "Descuento del drop tras cada reserva.",
			Buckets: prometheus.LinearBuckets(0, 5, 11), // 0% a 50%
		}),
		dropsClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drops",
			Name: "closed_total",
			Help: "Drops cerrados.",
		}),
		charges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drops",
			Name: "charges_total",
			Help: "Capturas al cierre por resultado.",
		}, []string{"result"}),
		chargedAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drops",
			Name: "charged_amount_total",
			Help: "Monto total capturado al cierre.",
		}),
	}

	m.Registry.MustRegister(
		m.httpInFlight, m.httpRequests, m.httpDuration,
		m.reservations, m.reservedAmount, m.reservationRejected, m.bookedDiscount,
		m.dropsClosed, m.charges, m.chargedAmount,
	)
	if withRuntime {
		m.Registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
	}
	return m
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ── ports.DropMetrics ─────────────────────────────────────────────────────────

func (m *Metrics) ReservationBooked(_ string, amount, discount decimal.Decimal) {
	m.reservations.Inc()
	m.reservedAmount.Add(amount.InexactFloat64())
	m.bookedDiscount.Observe(discount.InexactFloat64())
}

func (m *Metrics) ReservationRejected(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	m.reservationRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) DropClosed(charged, failed int, total decimal.Decimal) {
	m.dropsClosed.Inc()
	m.charges.WithLabelValues("charged").Add(float64(charged))
	m.charges.WithLabelValues("failed").Add(float64(failed))
	m.chargedAmount.Add(total.InexactFloat64())
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

// Middleware registra requests, duración y en curso por ruta de Fiber (patrón, no path concreto).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}
		start := time.Now()
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		method := strings.ToUpper(c.Method())
		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		return err
	}
}
