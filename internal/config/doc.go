// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package config provides layered configuration for the dashboard.

Configuration is built with koanf from, in increasing priority:

 1. Built-in defaults (defaultConfig)
 2. A YAML file (CONFIG_PATH, ./config.yaml, /etc/taxiboard/config.yaml)
 3. Environment variables (see envMappings)
 4. Command-line flags that were explicitly set (LoadWithFlags)

Warehouse credentials:

The Snowflake account, user, password, warehouse, database and schema are
read from SNOWFLAKE_* variables and are never logged. They are not checked by
Load; the warehouse provider calls WarehouseConfig.Validate when it first
opens a connection, so a deployment with missing secrets still starts and
shows a single configuration error instead of crash-looping.

	WAREHOUSE_DRIVER=snowflake   snowflake | duckdb
	SNOWFLAKE_ACCOUNT            required for snowflake
	SNOWFLAKE_USER               required for snowflake
	SNOWFLAKE_PASSWORD           required for snowflake
	SNOWFLAKE_WAREHOUSE          required for snowflake
	SNOWFLAKE_DATABASE=TAXI
	SNOWFLAKE_SCHEMA=TAXI
	DUCKDB_PATH                  required for duckdb

Caching:

	CACHE_TTL=0                  zero keeps results for the process lifetime
	CACHE_REFRESH_SCHEDULE       cron expression; each firing clears the cache
	CACHE_WARM_ON_START=false
	CACHE_ALLOW_INVALIDATION=true

Errors:

Every validation failure is returned as a *ConfigurationError naming the
offending settings.
*/
package config
