// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package config

import (
	"fmt"
	"time"
)

// Warehouse drivers.
const (
	DriverSnowflake = "snowflake"
	DriverDuckDB    = "duckdb"
)

// Panel error policies.
const (
	// PanelErrorIsolate renders a placeholder for a failed panel and carries on.
	PanelErrorIsolate = "isolate"
	// PanelErrorAbort fails the whole page on the first panel failure.
	PanelErrorAbort = "abort"
)

// Config holds all application configuration.
type Config struct {
	Warehouse WarehouseConfig `koanf:"warehouse"`
	Query     QueryConfig     `koanf:"query"`
	Cache     CacheConfig     `koanf:"cache"`
	Dashboard DashboardConfig `koanf:"dashboard"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// WarehouseConfig describes how to reach the star-schema warehouse.
// Credentials are only ever supplied through the environment or an
// untracked config file.
type WarehouseConfig struct {
	Driver    string `koanf:"driver" validate:"oneof=snowflake duckdb"`
	Account   string `koanf:"account" validate:"required_if=Driver snowflake"`
	User      string `koanf:"user" validate:"required_if=Driver snowflake"`
	Password  string `koanf:"password" validate:"required_if=Driver snowflake"`
	Warehouse string `koanf:"warehouse" validate:"required_if=Driver snowflake"`
	Database  string `koanf:"database" validate:"required_if=Driver snowflake"`
	Schema    string `koanf:"schema" validate:"required_if=Driver snowflake"`
	Role      string `koanf:"role"`

	// Path is the DuckDB file holding the same star schema (driver=duckdb).
	Path string `koanf:"path" validate:"required_if=Driver duckdb"`

	LoginTimeout time.Duration `koanf:"login_timeout" validate:"gte=0"`
	MaxOpenConns int           `koanf:"max_open_conns" validate:"gte=0"`
}

// Redacted returns a copy that is safe to log.
func (w WarehouseConfig) Redacted() WarehouseConfig {
	if w.Password != "" {
		w.Password = "[REDACTED]"
	}
	return w
}

// Describe returns a short human label for the configured target.
func (w *WarehouseConfig) Describe() string {
	if w.Driver == DriverDuckDB {
		return fmt.Sprintf("duckdb:%s", w.Path)
	}
	return fmt.Sprintf("snowflake:%s/%s/%s", w.Account, w.Database, w.Schema)
}

// QueryConfig controls how warehouse round-trips are executed.
type QueryConfig struct {
	// Timeout bounds a single query execution.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// MaxRetries applies to transient failures only.
	MaxRetries    int           `koanf:"max_retries" validate:"gte=0,lte=10"`
	RetryDelay    time.Duration `koanf:"retry_delay" validate:"gte=0"`
	MaxRetryDelay time.Duration `koanf:"max_retry_delay" validate:"gte=0"`

	// RateLimitQPS caps warehouse round-trips per second. Zero disables the limiter.
	RateLimitQPS   float64 `koanf:"rate_limit_qps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`

	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio" validate:"gt=0,lte=1"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	BreakerOpenTimeout  time.Duration `koanf:"breaker_open_timeout" validate:"gt=0"`
}

// CacheConfig controls result caching.
type CacheConfig struct {
	// TTL of zero keeps results for the lifetime of the process.
	TTL time.Duration `koanf:"ttl" validate:"gte=0"`

	// RefreshSchedule is a standard five-field cron expression (or @every/@hourly
	// descriptor). Each firing clears the cache. Empty disables scheduled refresh.
	RefreshSchedule string `koanf:"refresh_schedule"`

	// WarmOnStart renders every panel once at start-up and after each refresh.
	WarmOnStart bool `koanf:"warm_on_start"`

	// AllowManualInvalidation enables POST /api/v1/cache/invalidate.
	AllowManualInvalidation bool `koanf:"allow_manual_invalidation"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	Title            string `koanf:"title" validate:"required"`
	PanelErrorPolicy string `koanf:"panel_error_policy" validate:"oneof=isolate abort"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host        string        `koanf:"host"`
	Port        int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout     time.Duration `koanf:"timeout" validate:"gt=0"`
	Environment string        `koanf:"environment" validate:"omitempty,oneof=development production test"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and rate limiting settings for the HTTP surface.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}
