// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package metrics provides Prometheus metrics for the dashboard.

All collectors are registered on the default registry with promauto and are
exposed at /metrics:

	curl http://localhost:8501/metrics

# Available Metrics

Warehouse:
  - warehouse_query_duration_seconds
  - warehouse_query_errors_total{kind}
  - warehouse_query_retries_total
  - warehouse_connections_opened_total
  - warehouse_rows_returned_total

Query cache:
  - query_cache_hits_total, query_cache_misses_total
  - query_cache_entries
  - query_cache_invalidations_total{reason}
  - query_coalesced_total

Dashboard:
  - panel_render_total{panel,status}
  - dashboard_render_duration_seconds
  - cache_refresh_runs_total{status}

HTTP and resilience:
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - circuit_breaker_state{name}, circuit_breaker_requests_total{name,result}
*/
package metrics
