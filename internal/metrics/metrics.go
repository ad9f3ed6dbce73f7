package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const namespace = "tweets"

// Remote call outcomes
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Metrics owns a per-service registry and the collectors recorded into it.
// A nil *Metrics records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	remoteCalls *prometheus.CounterVec
	log         zerolog.Logger
}

// New creates the registry for the named service
func New(service string, log zerolog.Logger) *Metrics {
	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "HTTP requests by method, route and status.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		remoteCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "remote",
			Name:        "calls_total",
			Help:        "Calls to the discussion service by operation and outcome.",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		log: log.With().Str("component", "metrics").Logger(),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.remoteCalls,
	)
	return m
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RemoteCall records one call to the discussion service
func (m *Metrics) RemoteCall(operation, outcome string) {
	if m == nil {
		return
	}
	m.remoteCalls.WithLabelValues(operation, outcome).Inc()
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorLog:      errorLogger{m.log},
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// errorLogger adapts zerolog to promhttp.Logger
type errorLogger struct {
	log zerolog.Logger
}

func (l errorLogger) Println(v ...interface{}) {
	l.log.Error().Interface("details", v).Msg("Metrics exposition failed")
}
