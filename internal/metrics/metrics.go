// Package metrics exposes the service's Prometheus collectors and the
// /metrics handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, route pattern
	// and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citybus",
		Name:      "http_requests_total",
		Help:      "Handled HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by method and route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "citybus",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	// ImportRecordsTotal counts records handled by the import pipeline, by
	// record kind and outcome (imported, skipped, unchanged).
	ImportRecordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "citybus",
		Subsystem: "import",
		Name:      "records_total",
		Help:      "Records processed by the import pipeline.",
	}, []string{"kind", "outcome"})
)

// Handler returns the HTTP handler serving the default Prometheus registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
