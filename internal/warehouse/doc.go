// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package warehouse provides the shared connection to the star-schema warehouse.

A Provider is a lazily initialised, process-wide handle. The first call to
Conn validates the credentials, opens the pool and pings it; later calls
return the same *sql.DB. Close is the teardown hook run at shutdown.

Drivers:
  - snowflake: github.com/snowflakedb/gosnowflake
  - duckdb: github.com/duckdb/duckdb-go/v2, a local file with the same schema

Errors:
  - *config.ConfigurationError when credentials are missing
  - *AuthenticationError when the warehouse rejects them (never retried)
  - *ConnectError for any other open or ping failure
*/
package warehouse
