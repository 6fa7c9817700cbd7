package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by route and status.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// MetricsRecorded counts model metric rows written.
	MetricsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "model_metrics_recorded_total",
			Help: "Total number of model metric observations recorded",
		},
	)

	// ReadingsRecorded counts device telemetry rows written.
	ReadingsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "device_readings_recorded_total",
			Help: "Total number of device readings recorded",
		},
	)

	// AlertsFired counts alert events persisted by the monitoring sweep.
	AlertsFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_fired_total",
			Help: "Total number of alert events fired",
		},
		[]string{"model_id", "severity"},
	)

	// AlertEvalFailures counts rule evaluations that errored (bad operator).
	AlertEvalFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_eval_failures_total",
			Help: "Total number of alert rule evaluations that failed",
		},
		[]string{"rule_id"},
	)

	// MockServes counts facade operations answered from the mock snapshot.
	MockServes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mock_data_serves_total",
			Help: "Total number of facade operations served from mock data",
		},
		[]string{"operation"},
	)

	// StoreFallbacks counts store failures seen by the facade.
	StoreFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_fallbacks_total",
			Help: "Total number of store failures handled by the facade",
		},
		[]string{"operation"},
	)

	// CacheOperations counts Redis cache hits/misses/errors.
	CacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reading_cache_operations_total",
			Help: "Total number of latest-reading cache operations",
		},
		[]string{"operation", "status"},
	)

	// NotificationFailures counts best-effort alert notifications that failed.
	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "alert_notification_failures_total",
			Help: "Total number of alert notification attempts that failed",
		},
	)
)
