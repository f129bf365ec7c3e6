// Package metrics expone los eventos del libro como métricas Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

var _ inventory.Metrics = (*Registry)(nil)

const namespace = "inventario"

// Registry registro propio (no el global) con las métricas del libro y de HTTP.
type Registry struct {
	reg *prometheus.Registry

	movements      *prometheus.CounterVec
	units          *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

// New crea el registro con los colectores de proceso y runtime de Go.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movements_total",
			Help:      "Movimientos agregados al libro, por tipo.",
		}, []string{"type"}),
		units: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movement_units_total",
			Help:      "Unidades movidas, por tipo.",
		}, []string{"type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outputs_rejected_total",
			Help:      "Salidas rechazadas, por motivo.",
		}, []string{"reason"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Solicitudes HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		requestSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duración de las solicitudes HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.movements, r.units, r.rejected, r.requests, r.requestSeconds,
	)
	return r
}

// MovementRecorded cuenta un movimiento y sus unidades.
func (r *Registry) MovementRecorded(movementType entity.MovementType, quantity int) {
	r.movements.WithLabelValues(string(movementType)).Inc()
	r.units.WithLabelValues(string(movementType)).Add(float64(quantity))
}

// OutputRejected cuenta una salida rechazada.
func (r *Registry) OutputRejected(reason string) {
	r.rejected.WithLabelValues(reason).Inc()
}

// ObserveRequest registra una solicitud HTTP ya respondida.
func (r *Registry) ObserveRequest(method, route, status string, seconds float64) {
	r.requests.WithLabelValues(method, route, status).Inc()
	r.requestSeconds.WithLabelValues(method, route).Observe(seconds)
}

// Handler expone el registro en formato de texto Prometheus.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer para inspección en tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
