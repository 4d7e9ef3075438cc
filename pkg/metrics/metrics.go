package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fulfillment agrupa las métricas de cumplimiento de órdenes.
type Fulfillment struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewFulfillment registra las métricas en reg. Con reg nil se usa el registro por defecto.
func NewFulfillment(reg prometheus.Registerer) *Fulfillment {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Fulfillment{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_requests_total",
			Help: "Total de solicitudes de cumplimiento por estrategia y resultado",
		}, []string{"strategy", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fulfillment_duration_seconds",
			Help:    "Latencia del cumplimiento de órdenes",
			Buckets: prometheus.DefBuckets,
		}, []string{"strategy"}),
	}
}

// Observe registra una solicitud terminada.
func (m *Fulfillment) Observe(strategy, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(strategy, outcome).Inc()
	m.duration.WithLabelValues(strategy).Observe(elapsed.Seconds())
}
