// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Command server serves the NYC yellow taxi dashboard over HTTP.
//
// Components are built in order: configuration (koanf: defaults, config.yaml,
// environment), logging, the warehouse provider, the query cache and
// executor, the panel catalog, the renderer and the HTTP API. The HTTP server
// and the optional cache refresher run under a suture supervisor tree.
//
// The warehouse is contacted lazily: the server starts without credentials
// and the first page view reports a configuration error instead.
//
// # Example Usage
//
//	export SNOWFLAKE_ACCOUNT=xy12345.us-east-1
//	export SNOWFLAKE_USER=dashboard
//	export SNOWFLAKE_PASSWORD=...
//	export SNOWFLAKE_WAREHOUSE=COMPUTE_WH
//	export CACHE_REFRESH_SCHEDULE="0 * * * *"
//	./server
//
// Against a local DuckDB file:
//
//	WAREHOUSE_DRIVER=duckdb DUCKDB_PATH=taxi.duckdb ./server
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the supervisor tree. In-flight requests get a
// bounded drain and the warehouse connection is closed last.
package main
