// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package api provides the HTTP surface of the dashboard.

Routes:

	GET  /                           HTML dashboard (503 error page on fatal failure)
	GET  /api/v1/dashboard           every panel as JSON, charts as Vega-Lite
	GET  /api/v1/panels              catalog listing
	GET  /api/v1/panels/{id}         one rendered panel
	GET  /api/v1/cache/stats         query cache statistics
	POST /api/v1/cache/invalidate    drop cached results (?panel=id for one)
	GET  /api/v1/health/live         liveness probe
	GET  /api/v1/health/ready        readiness probe (pings the warehouse)
	GET  /metrics                    Prometheus metrics

Middleware Stack:

Applied to all routes, in order: request ID with logging context, real IP,
panic recovery, CORS (go-chi/cors), compression and a request timeout.
API routes add IP rate limiting (go-chi/httprate), security headers and
Prometheus instrumentation.

Response Format:

JSON responses use the APIResponse envelope:

	{
	  "success": true,
	  "data": {...},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 12}
	}

Errors set success to false and carry an APIError with a machine-readable
code. Error messages never include SQL or driver output; the cause is
logged with the request ID instead.

Usage Example:

	handler := api.NewHandler(renderer, executor, provider, cfg)
	router := api.NewRouter(handler, cfg)
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
