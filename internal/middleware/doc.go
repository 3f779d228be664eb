// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package middleware provides HTTP middleware shared by the dashboard routes.

Key Components:

  - Request ID: UUID-based request tracking, propagated to the logging
    context as request_id and correlation_id
  - Prometheus Metrics: request count, latency and in-flight gauge, labelled
    by chi route pattern

Both use the plain http.HandlerFunc signature. The api package adapts them
to chi with chiMiddleware:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.PrometheusMetrics))

Compression and panic recovery come from chi's own middleware package.
*/
package middleware
