// Package metrics exposes Prometheus collectors for the catalog service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CatalogBrowseTotal counts browse requests by sort key and cache outcome.
	CatalogBrowseTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_browse_total",
			Help: "Total number of catalog browse requests",
		},
		[]string{"sort", "cache"},
	)

	CatalogPipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_pipeline_duration_seconds",
			Help:    "Filter and sort pipeline duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	CatalogResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_result_size",
			Help:    "Number of packages surviving the filters",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		},
	)

	// CatalogSnapshotSize is the number of packages in the committed snapshot.
	CatalogSnapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_packages",
			Help: "Packages in the current catalog snapshot",
		},
	)

	CatalogSnapshotTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_snapshot_timestamp_seconds",
			Help: "Unix time of the last committed catalog snapshot",
		},
	)

	// SourceFetchTotal counts upstream fetches by outcome: ok, error, unrecognized_shape, circuit_open.
	SourceFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_source_fetch_total",
			Help: "Upstream package list fetches by outcome",
		},
		[]string{"outcome"},
	)

	SourceFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_source_fetch_duration_seconds",
			Help:    "Upstream package list fetch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// StaleCommitsTotal counts fetch results dropped because a newer fetch had started.
	StaleCommitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_stale_commits_total",
			Help: "Catalog fetch results discarded in favour of a newer request",
		},
	)

	LeadsSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Lead submissions by status",
		},
		[]string{"status"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)
)

// PrometheusMiddleware records request count and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		HTTPRequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// RecordBrowse records one browse request.
func RecordBrowse(sortKey string, cacheHit bool, pipeline time.Duration, results int) {
	cache := "miss"
	if cacheHit {
		cache = "hit"
	} else {
		CatalogPipelineDuration.Observe(pipeline.Seconds())
	}
	CatalogBrowseTotal.WithLabelValues(sortKey, cache).Inc()
	CatalogResultSize.Observe(float64(results))
}

// RecordSnapshot records a committed catalog snapshot.
func RecordSnapshot(size int, at time.Time) {
	CatalogSnapshotSize.Set(float64(size))
	CatalogSnapshotTimestamp.Set(float64(at.Unix()))
}

// RecordSourceFetch records one upstream fetch attempt sequence.
func RecordSourceFetch(outcome string, d time.Duration) {
	SourceFetchTotal.WithLabelValues(outcome).Inc()
	SourceFetchDuration.Observe(d.Seconds())
}

// RecordStaleCommit counts a fetch result discarded by the epoch guard.
func RecordStaleCommit() {
	StaleCommitsTotal.Inc()
}

// RecordLead counts a lead submission.
func RecordLead(status string) {
	LeadsSubmittedTotal.WithLabelValues(status).Inc()
}

// RecordCircuitState publishes a circuit breaker state as a gauge value.
func RecordCircuitState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}
