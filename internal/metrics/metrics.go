// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts API requests by method, route template and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// HTTPDuration is the latency of API requests.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskboard_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// StoreMutations counts applied mutations per store and operation.
	StoreMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_store_mutations_total",
			Help: "Total number of store mutations",
		},
		[]string{"store", "op"},
	)
	// PersistenceFailures counts writes to the key-value backend that failed.
	PersistenceFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_persistence_failures_total",
			Help: "Total number of failed key-value writes",
		},
		[]string{"key"},
	)
	// IntegrationCalls counts outbound calls to GitHub and Telegram.
	IntegrationCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskboard_integration_calls_total",
			Help: "Total number of outbound integration calls",
		},
		[]string{"service", "outcome"},
	)
)
