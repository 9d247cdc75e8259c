// Package metrics colectores Prometheus del servicio.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Arriendos-api/internal/application/orders"
)

const namespace = "arriendos"

var _ orders.EmissionRecorder = (*Metrics)(nil)

// Metrics agrupa los colectores y el registro donde viven.
type Metrics struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	requests  *prometheus.CounterVec
	latency   *prometheus.HistogramVec
}

// New crea un registro propio con los colectores del servicio más los de proceso y runtime.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_emitted_total",
			Help:      "Documentos tributarios emitidos desde órdenes de trabajo.",
		}, []string{"tipo"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duración de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.documents, m.requests, m.latency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// DocumentEmitted implementa orders.EmissionRecorder.
func (m *Metrics) DocumentEmitted(docType string) {
	m.documents.WithLabelValues(docType).Inc()
}

// ObserveRequest registra una petición terminada. route es el patrón de la ruta, no la URL.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler expone el registro en formato texto de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry para pruebas y para registrar colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
