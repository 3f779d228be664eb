// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Warehouse Metrics
	WarehouseQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "warehouse_query_duration_seconds",
			Help:    "Duration of warehouse round-trips in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120}, // warehouse scans are slow
		},
	)

	WarehouseQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "warehouse_query_errors_total",
			Help: "Total number of failed warehouse round-trips",
		},
		[]string{"kind"}, // "timeout", "transient", "permanent", "auth", "config", "rejected"
	)

	WarehouseQueryRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warehouse_query_retries_total",
			Help: "Total number of retried warehouse round-trips",
		},
	)

	WarehouseConnectionsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warehouse_connections_opened_total",
			Help: "Total number of warehouse connection pools opened",
		},
	)

	WarehouseRowsReturned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "warehouse_rows_returned_total",
			Help: "Total number of rows read from the warehouse",
		},
	)

	// Query Cache Metrics
	QueryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_cache_hits_total",
			Help: "Total number of query results served from cache",
		},
	)

	QueryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_cache_misses_total",
			Help: "Total number of query cache misses",
		},
	)

	QueryCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "query_cache_entries",
			Help: "Current number of cached query results",
		},
	)

	QueryCacheInvalidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "query_cache_invalidations_total",
			Help: "Total number of cache invalidations",
		},
		[]string{"reason"}, // "manual", "schedule", "panel"
	)

	QueryCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "query_coalesced_total",
			Help: "Total number of loads that shared an in-flight warehouse round-trip",
		},
	)

	// Dashboard Metrics
	PanelRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_render_total",
			Help: "Total number of panel renders by outcome",
		},
		[]string{"panel", "status"}, // status: "ok", "error"
	)

	DashboardRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_render_duration_seconds",
			Help:    "Duration of a full dashboard render in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
		},
	)

	CacheRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_refresh_runs_total",
			Help: "Total number of scheduled cache refresh runs",
		},
		[]string{"status"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordWarehouseQuery records one warehouse round-trip.
func RecordWarehouseQuery(duration time.Duration, rows int, errKind string) {
	WarehouseQueryDuration.Observe(duration.Seconds())
	if errKind != "" {
		WarehouseQueryErrors.WithLabelValues(errKind).Inc()
		return
	}
	WarehouseRowsReturned.Add(float64(rows))
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		QueryCacheHits.Inc()
	} else {
		QueryCacheMisses.Inc()
	}
}

// RecordInvalidation records a cache invalidation and the resulting entry count.
func RecordInvalidation(reason string, remaining int) {
	QueryCacheInvalidations.WithLabelValues(reason).Inc()
	QueryCacheEntries.Set(float64(remaining))
}

// RecordPanelRender records the outcome of a single panel render.
func RecordPanelRender(panel string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PanelRenders.WithLabelValues(panel, status).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
