// Package metrics holds the Prometheus collectors shared by the API, worker
// and routing client. Everything registers with the default registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "commute"

// Status label values
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// Routing provider metrics
	RoutingRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "routing_requests_total",
			Help:      "Total number of routing provider requests",
		},
		[]string{"mode", "status"},
	)

	RoutingRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "routing_request_duration_seconds",
			Help:      "Routing provider request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"mode"},
	)

	RateLimitWaitTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "routing_rate_limit_wait_seconds",
			Help:      "Time spent waiting for the routing provider rate limit",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)

	// Measurement cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurement_cache_hits_total",
			Help:      "Total number of measurement cache hits",
		},
		[]string{"backend"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurement_cache_misses_total",
			Help:      "Total number of measurement cache misses",
		},
		[]string{"backend"},
	)

	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurement_cache_errors_total",
			Help:      "Total number of failed measurement cache operations",
		},
		[]string{"backend", "operation"},
	)

	// Estimation metrics
	EstimationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimations_total",
			Help:      "Total number of emission estimations",
		},
		[]string{"kind", "status"},
	)

	EmissionsGrams = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "emissions_grams",
			Help:      "Estimated emissions per person in gram CO2",
			Buckets:   []float64{0, 100, 500, 1000, 2500, 5000, 10000, 25000},
		},
		[]string{"kind"},
	)

	ContractViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_violations_total",
			Help:      "Total number of routing data contract violations",
		},
		[]string{"component"},
	)

	// Stream worker metrics
	StreamMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_messages_total",
			Help:      "Total number of processed stream messages",
		},
		[]string{"stream", "status"},
	)

	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveRoutingRequest records one routing provider call
func ObserveRoutingRequest(mode string, start time.Time, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	RoutingRequestsTotal.WithLabelValues(mode, status).Inc()
	RoutingRequestDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
}

// ObserveEstimation records the outcome of one estimation
func ObserveEstimation(kind string, emissions int, err error) {
	if err != nil {
		EstimationsTotal.WithLabelValues(kind, StatusError).Inc()
		return
	}
	EstimationsTotal.WithLabelValues(kind, StatusOK).Inc()
	EmissionsGrams.WithLabelValues(kind).Observe(float64(emissions))
}
