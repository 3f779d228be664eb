// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/taxiboard/config.yaml",
	"/etc/taxiboard/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied.
func defaultConfig() *Config {
	return &Config{
		Warehouse: WarehouseConfig{
			Driver:       DriverSnowflake,
			Database:     "TAXI",
			Schema:       "TAXI",
			LoginTimeout: 30 * time.Second,
			MaxOpenConns: 1,
		},
		Query: QueryConfig{
			Timeout:             60 * time.Second,
			MaxRetries:          2,
			RetryDelay:          time.Second,
			MaxRetryDelay:       10 * time.Second,
			RateLimitQPS:        10,
			RateLimitBurst:      10,
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  5,
			BreakerOpenTimeout:  30 * time.Second,
		},
		Cache: CacheConfig{
			TTL:                     0, // process lifetime
			RefreshSchedule:         "",
			WarmOnStart:             false,
			AllowManualInvalidation: true,
		},
		Dashboard: DashboardConfig{
			Title:            "NYC Yellow Taxi Analytics Dashboard",
			PanelErrorPolicy: PanelErrorIsolate,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8501,
			Timeout:     2 * time.Minute, // a cold render runs every panel query
			Environment: "development",
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{},
			RateLimitReqs:   120,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the environment.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with command-line flags layered on top:
//  1. Defaults
//  2. Config file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables
//  4. Flags that were explicitly set
//
// Warehouse credentials are not required here; they are checked by
// WarehouseConfig.Validate when the first connection is requested.
func LoadWithFlags(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagTransformFunc(flags)), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set via env.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}

		trimmed := make([]string, 0)
		for _, p := range strings.Split(strVal, ",") {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Warehouse
	"warehouse_driver":         "warehouse.driver",
	"snowflake_account":        "warehouse.account",
	"snowflake_user":           "warehouse.user",
	"snowflake_password":       "warehouse.password",
	"snowflake_warehouse":      "warehouse.warehouse",
	"snowflake_database":       "warehouse.database",
	"snowflake_schema":         "warehouse.schema",
	"snowflake_role":           "warehouse.role",
	"snowflake_login_timeout":  "warehouse.login_timeout",
	"warehouse_max_open_conns": "warehouse.max_open_conns",
	"duckdb_path":              "warehouse.path",

	// Query execution
	"query_timeout":               "query.timeout",
	"query_max_retries":           "query.max_retries",
	"query_retry_delay":           "query.retry_delay",
	"query_max_retry_delay":       "query.max_retry_delay",
	"query_rate_limit_qps":        "query.rate_limit_qps",
	"query_rate_limit_burst":      "query.rate_limit_burst",
	"query_breaker_failure_ratio": "query.breaker_failure_ratio",
	"query_breaker_min_requests":  "query.breaker_min_requests",
	"query_breaker_open_timeout":  "query.breaker_open_timeout",

	// Cache
	"cache_ttl":                "cache.ttl",
	"cache_refresh_schedule":   "cache.refresh_schedule",
	"cache_warm_on_start":      "cache.warm_on_start",
	"cache_allow_invalidation": "cache.allow_manual_invalidation",

	// Dashboard
	"dashboard_title":    "dashboard.title",
	"panel_error_policy": "dashboard.panel_error_policy",

	// Server
	"http_host":    "server.host",
	"http_port":    "server.port",
	"http_timeout": "server.timeout",
	"environment":  "server.environment",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - SNOWFLAKE_ACCOUNT -> warehouse.account
//   - CACHE_TTL -> cache.ttl
//   - HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// flagMappings maps CLI flag names to koanf paths.
var flagMappings = map[string]string{
	"driver":      "warehouse.driver",
	"duckdb-path": "warehouse.path",
	"account":     "warehouse.account",
	"user":        "warehouse.user",
	"warehouse":   "warehouse.warehouse",
	"database":    "warehouse.database",
	"schema":      "warehouse.schema",
	"role":        "warehouse.role",
	"timeout":     "query.timeout",
	"max-retries": "query.max_retries",
	"log-level":   "logging.level",
	"log-format":  "logging.format",
}

// flagTransformFunc only lets through flags that were explicitly set and have a mapping.
func flagTransformFunc(flags *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		key, ok := flagMappings[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}

// envNames maps validator field names back to the environment variable an
// operator would set, for ConfigurationError messages.
var envNames = map[string]string{
	"Driver":       "WAREHOUSE_DRIVER",
	"Account":      "SNOWFLAKE_ACCOUNT",
	"User":         "SNOWFLAKE_USER",
	"Password":     "SNOWFLAKE_PASSWORD",
	"Warehouse":    "SNOWFLAKE_WAREHOUSE",
	"Database":     "SNOWFLAKE_DATABASE",
	"Schema":       "SNOWFLAKE_SCHEMA",
	"Path":         "DUCKDB_PATH",
	"LoginTimeout": "SNOWFLAKE_LOGIN_TIMEOUT",
	"MaxOpenConns": "WAREHOUSE_MAX_OPEN_CONNS",
}
