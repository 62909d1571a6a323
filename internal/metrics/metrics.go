// Package metrics exposes the service's Prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "ligandscope"

// Metrics owns a private registry so tests and multiple servers never clash on
// the global one.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	pipelineErrors  *prometheus.CounterVec
	datasetPairs    prometheus.Gauge
}

// Config toggles the runtime collectors.
type Config struct {
	EnableProcessMetrics bool
	EnableGoMetrics      bool
}

// New registers all instruments on a fresh registry.
func New(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()
	if cfg.EnableProcessMetrics {
		registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: Namespace}))
	}
	if cfg.EnableGoMetrics {
		registry.MustRegister(collectors.NewGoCollector())
	}

	m := &Metrics{
		registry: registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		pipelineErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "pipeline",
			Name:      "errors_total",
			Help:      "Pipeline failures by error kind.",
		}, []string{"kind"}),
		datasetPairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "dataset",
			Name:      "pairs",
			Help:      "Number of cell pairs in the loaded dataset.",
		}),
	}
	registry.MustRegister(m.requests, m.requestDuration, m.pipelineErrors, m.datasetPairs)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(took.Seconds())
}

// PipelineError counts a failed pipeline run of the given kind.
func (m *Metrics) PipelineError(kind string) {
	m.pipelineErrors.WithLabelValues(kind).Inc()
}

// SetDatasetPairs publishes the size of the loaded dataset.
func (m *Metrics) SetDatasetPairs(n int) {
	m.datasetPairs.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
