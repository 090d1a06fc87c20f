// Package metrics provides Prometheus metrics for the censorship services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"profanity/pkg/censor"
	"profanity/pkg/logger"
)

// HTTPLatencyBuckets are latency buckets for the full HTTP request/response cycle.
var HTTPLatencyBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

// Categories are the label values of the detections counter.
var Categories = []string{"profane", "offensive", "sexual", "mean", "evasive", "spam", "safe"}

// Metrics holds all Prometheus metrics for a service.
type Metrics struct {
	// HTTPRequestDuration tracks full HTTP request duration
	HTTPRequestDuration *prometheus.HistogramVec

	// InFlightRequests tracks currently processing requests
	InFlightRequests prometheus.Gauge

	// AnalysesTotal counts analyzed texts by verdict
	AnalysesTotal *prometheus.CounterVec

	// DetectionsTotal counts analyzed texts per detected category
	DetectionsTotal *prometheus.CounterVec

	ServiceName string

	registry *prometheus.Registry
}

// New creates the metrics of a service in their own registry.
func New(serviceName string) *Metrics {
	m := &Metrics{
		ServiceName: serviceName,
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration in seconds (full request/response cycle)",
				Buckets:     HTTPLatencyBuckets,
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"method", "endpoint", "status_code"},
		),
		InFlightRequests: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name:        "http_in_flight_requests",
				Help:        "Number of in-flight requests",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
		),
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "censor_analyses_total",
				Help:        "Total analyzed texts",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"inappropriate"},
		),
		DetectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "censor_detections_total",
				Help:        "Analyzed texts per detected category",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"category"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.HTTPRequestDuration,
		m.InFlightRequests,
		m.AnalysesTotal,
		m.DetectionsTotal,
	)

	// Pre-initialize labels so the series are exposed immediately
	m.AnalysesTotal.WithLabelValues("true")
	m.AnalysesTotal.WithLabelValues("false")
	for _, c := range Categories {
		m.DetectionsTotal.WithLabelValues(c)
	}

	return m
}

// Registry exposes the registry, e.g. to gather in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveAnalysis records one analyzed text.
func (m *Metrics) ObserveAnalysis(t censor.Type, inappropriate bool) {
	m.AnalysesTotal.WithLabelValues(strconv.FormatBool(inappropriate)).Inc()
	for _, label := range t.Labels() {
		m.DetectionsTotal.WithLabelValues(label).Inc()
	}
}

// Middleware tracks HTTP request metrics. Endpoints are labelled with the
// route template so that path parameters do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tpl
			}
		}
		// Skip metrics collection for /metrics endpoint
		if endpoint == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		m.InFlightRequests.Inc()
		lw := logger.New(w)

		defer func() {
			m.InFlightRequests.Dec()
			m.HTTPRequestDuration.WithLabelValues(
				r.Method,
				endpoint,
				strconv.Itoa(lw.Status()),
			).Observe(time.Since(start).Seconds())
		}()

		next.ServeHTTP(lw, r)
	})
}
