// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "memoapi"

// Auth decision outcomes recorded by the auth middleware
const (
	AuthPublic       = "public"
	AuthMissingToken = "missing_token"
	AuthRejected     = "rejected"
	AuthAllowed      = "allowed"
)

// Metrics groups the application collectors on a private registry.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	registry         *prometheus.Registry
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	authDecisions    *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
}

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		authDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_decisions_total",
			Help:      "Auth middleware decisions by outcome.",
		}, []string{"outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Identity provider call latency by operation and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.authDecisions,
		m.providerDuration,
	)

	return m
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordAuth counts an auth middleware decision
func (m *Metrics) RecordAuth(outcome string) {
	if m == nil {
		return
	}
	m.authDecisions.WithLabelValues(outcome).Inc()
}

// ObserveProvider records one identity provider call
func (m *Metrics) ObserveProvider(operation string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.providerDuration.WithLabelValues(operation, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// AuthDecisions exposes the decision counter for tests and dashboards
func (m *Metrics) AuthDecisions() *prometheus.CounterVec {
	return m.authDecisions
}

// HTTPRequests exposes the request counter
func (m *Metrics) HTTPRequests() *prometheus.CounterVec {
	return m.httpRequests
}
