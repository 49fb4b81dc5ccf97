// Package observability provides logging, metrics, and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MediaStoreCalls counts media store calls by backend, operation and outcome.
	MediaStoreCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_media_store_calls_total",
		Help: "Total number of media store calls by backend, operation and outcome",
	}, []string{"backend", "operation", "outcome"})

	// MediaStoreLatency records media store call latency by backend and operation.
	MediaStoreLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_media_store_latency_seconds",
		Help:    "Media store call latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// ObserveMediaCall records one media store call, its latency and outcome.
func ObserveMediaCall(backend, operation string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	MediaStoreCalls.WithLabelValues(backend, operation, outcome).Inc()
	MediaStoreLatency.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
