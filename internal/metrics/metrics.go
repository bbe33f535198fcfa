// Package metrics holds the broker's prometheus collectors. Collectors live
// on an explicit registry handed to the components that update them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	Registry       *prometheus.Registry
	Authorizations *prometheus.CounterVec
	DirectUploads  *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

// New registers all collectors, plus the Go runtime and process collectors,
// on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Authorizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uploadbroker_authorizations_total",
			Help: "Upload authorizations requested, labeled by result kind.",
		}, []string{"result"}),
		DirectUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uploadbroker_direct_uploads_total",
			Help: "Objects written through the broker, labeled by result kind.",
		}, []string{"result"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uploadbroker_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "uploadbroker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
	reg.MustRegister(
		m.Authorizations,
		m.DirectUploads,
		m.HTTPRequests,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAuthorization counts one authorization attempt. Safe on a nil receiver.
func (m *Metrics) ObserveAuthorization(result string) {
	if m == nil {
		return
	}
	m.Authorizations.WithLabelValues(result).Inc()
}

// ObserveDirectUpload counts one proxied upload. Safe on a nil receiver.
func (m *Metrics) ObserveDirectUpload(result string) {
	if m == nil {
		return
	}
	m.DirectUploads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
