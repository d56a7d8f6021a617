// Package metrics provides Prometheus metrics for the dashboard service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every Prometheus collector exported by the dashboard.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Dataset metrics - loading and memoization of the player table
	datasetLoads        *prometheus.CounterVec
	datasetCacheHits    prometheus.Counter
	datasetLoadLatency  prometheus.Histogram
	datasetRows         prometheus.Gauge
	datasetRowsDropped  prometheus.Gauge
	datasetTeams        prometheus.Gauge
	datasetLastLoadUnix prometheus.Gauge

	// Analysis metrics - what the charts are computed from
	chartRenders        *prometheus.CounterVec
	chartRenderLatency  *prometheus.HistogramVec
	emptySelections     *prometheus.CounterVec
	radarNormalizations prometheus.Counter
	radarFlatMetrics    *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtside",
		subsystem:        "dashboard",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		refreshInterval:  defaultRefreshInterval,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// RefreshInterval reports how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.datasetLoads = auto.NewCounterVec(
		m.counterOpts("dataset_loads_total", "Player table loads from disk by outcome"),
		[]string{"outcome"},
	)
	m.datasetCacheHits = auto.NewCounter(m.counterOpts("dataset_cache_hits_total", "Requests served from the memoized player table"))
	m.datasetLoadLatency = auto.NewHistogram(m.histogramOpts("dataset_load_latency_milliseconds", "Player table load latency in milliseconds", m.histogramBuckets))
	m.datasetRows = auto.NewGauge(m.gaugeOpts("dataset_rows", "Analysable players in the current table"))
	m.datasetRowsDropped = auto.NewGauge(m.gaugeOpts("dataset_rows_dropped", "Rows dropped from the current table for missing values"))
	m.datasetTeams = auto.NewGauge(m.gaugeOpts("dataset_teams", "Distinct teams in the current table"))
	m.datasetLastLoadUnix = auto.NewGauge(m.gaugeOpts("dataset_last_load_unix", "Unix timestamp of the last successful table load"))

	m.chartRenders = auto.NewCounterVec(
		m.counterOpts("chart_renders_total", "Charts rendered by chart and outcome"),
		[]string{"chart", "outcome"},
	)
	m.chartRenderLatency = auto.NewHistogramVec(
		m.histogramOpts("chart_render_latency_milliseconds", "Chart render latency in milliseconds", m.histogramBuckets),
		[]string{"chart"},
	)
	m.emptySelections = auto.NewCounterVec(
		m.counterOpts("empty_selections_total", "Views computed over a selection with no players"),
		[]string{"view"},
	)
	m.radarNormalizations = auto.NewCounter(m.counterOpts("radar_normalizations_total", "Radar normalization passes"))
	m.radarFlatMetrics = auto.NewCounterVec(
		m.counterOpts("radar_flat_metrics_total", "Radar metrics with zero variance in the compared group"),
		[]string{"metric"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// Dataset metrics.

// RecordDatasetLoad records a table load attempt and its latency.
func RecordDatasetLoad(ok bool, latencyMs float64) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	globalManager.datasetLoads.WithLabelValues(outcome).Inc()
	globalManager.datasetLoadLatency.Observe(latencyMs)
}

// RecordDatasetCacheHit increments the memoized-table hit counter.
func RecordDatasetCacheHit() {
	globalManager.datasetCacheHits.Inc()
}

// UpdateDataset publishes the shape of the current table.
func UpdateDataset(rows, dropped, teams int, loadedAt time.Time) {
	globalManager.datasetRows.Set(float64(rows))
	globalManager.datasetRowsDropped.Set(float64(dropped))
	globalManager.datasetTeams.Set(float64(teams))
	globalManager.datasetLastLoadUnix.Set(float64(loadedAt.Unix()))
}

// Analysis metrics.

// RecordChartRender records a chart render outcome and latency.
func RecordChartRender(chart string, ok bool, latencyMs float64) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	globalManager.chartRenders.WithLabelValues(chart, outcome).Inc()
	globalManager.chartRenderLatency.WithLabelValues(chart).Observe(latencyMs)
}

// RecordEmptySelection counts a view computed over zero players.
func RecordEmptySelection(view string) {
	globalManager.emptySelections.WithLabelValues(view).Inc()
}

// RecordRadarNormalization counts a radar pass and its flat metrics.
func RecordRadarNormalization(flatMetrics []string) {
	globalManager.radarNormalizations.Inc()
	for _, m := range flatMetrics {
		globalManager.radarFlatMetrics.WithLabelValues(m).Inc()
	}
}

// HTTP metrics.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Error metrics.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System metrics.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
