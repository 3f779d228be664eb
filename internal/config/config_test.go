// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validSnowflake() WarehouseConfig {
	return WarehouseConfig{
		Driver:    DriverSnowflake,
		Account:   "xy12345.us-east-1",
		User:      "analyst",
		Password:  "hunter2",
		Warehouse: "COMPUTE_WH",
		Database:  "TAXI",
		Schema:    "TAXI",
	}
}

func TestWarehouseConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(w *WarehouseConfig)
		wantFields []string
	}{
		{"complete snowflake", func(w *WarehouseConfig) {}, nil},
		{"missing password", func(w *WarehouseConfig) { w.Password = "" }, []string{"SNOWFLAKE_PASSWORD"}},
		{
			"missing account and user",
			func(w *WarehouseConfig) { w.Account, w.User = "", "" },
			[]string{"SNOWFLAKE_ACCOUNT", "SNOWFLAKE_USER"},
		},
		{
			"duckdb needs only a path",
			func(w *WarehouseConfig) { *w = WarehouseConfig{Driver: DriverDuckDB, Path: "taxi.duckdb"} },
			nil,
		},
		{
			"duckdb without path",
			func(w *WarehouseConfig) { *w = WarehouseConfig{Driver: DriverDuckDB} },
			[]string{"DUCKDB_PATH"},
		},
		{"role is optional", func(w *WarehouseConfig) { w.Role = "" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := validSnowflake()
			tt.mutate(&w)
			err := w.Validate()

			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T (%v)", err, err)
			}
			if strings.Join(cfgErr.Fields, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("Fields = %v, want %v", cfgErr.Fields, tt.wantFields)
			}
			if cfgErr.Reason != "missing warehouse credentials" {
				t.Errorf("Reason = %q", cfgErr.Reason)
			}
		})
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	t.Parallel()

	err := &ConfigurationError{Fields: []string{"SNOWFLAKE_USER", "SNOWFLAKE_PASSWORD"}, Reason: "missing warehouse credentials"}
	want := "configuration error: missing warehouse credentials: SNOWFLAKE_USER, SNOWFLAKE_PASSWORD"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !IsConfigurationError(errors.Join(errors.New("wrapped"), err)) {
		t.Error("IsConfigurationError should see through wrapping")
	}
	if IsConfigurationError(errors.New("plain")) {
		t.Error("plain error is not a configuration error")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"defaults are valid", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Warehouse.Driver = "postgres" }, "WAREHOUSE_DRIVER"},
		{"bad cron", func(c *Config) { c.Cache.RefreshSchedule = "every tuesday" }, "CACHE_REFRESH_SCHEDULE"},
		{"cron descriptor", func(c *Config) { c.Cache.RefreshSchedule = "@hourly" }, ""},
		{"bad log level", func(c *Config) { c.Logging.Level = "chatty" }, "LOG_LEVEL"},
		{"bad policy", func(c *Config) { c.Dashboard.PanelErrorPolicy = "ignore" }, "dashboard.PanelErrorPolicy"},
		{"empty title", func(c *Config) { c.Dashboard.Title = "" }, "dashboard.Title"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.Port"},
		{"zero query timeout", func(c *Config) { c.Query.Timeout = 0 }, "query.Timeout"},
		{"rate limit without budget", func(c *Config) { c.Security.RateLimitReqs = 0 }, "RATE_LIMIT_REQUESTS"},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitReqs = 0
			c.Security.RateLimitDisabled = true
		}, ""},
		{"retry cap below delay", func(c *Config) {
			c.Query.RetryDelay = 5 * time.Second
			c.Query.MaxRetryDelay = time.Second
		}, "QUERY_MAX_RETRY_DELAY"},
		{"missing credentials are deferred", func(c *Config) { c.Warehouse.Account = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %v", err)
			}
			if cfgErr.Fields[0] != tt.wantField {
				t.Errorf("Fields = %v, want first %q", cfgErr.Fields, tt.wantField)
			}
		})
	}
}

func TestRedacted(t *testing.T) {
	t.Parallel()

	w := validSnowflake()
	r := w.Redacted()
	if r.Password != "[REDACTED]" {
		t.Errorf("Password = %q", r.Password)
	}
	if w.Password != "hunter2" {
		t.Error("Redacted must not modify the receiver")
	}
	if got := w.Describe(); got != "snowflake:xy12345.us-east-1/TAXI/TAXI" {
		t.Errorf("Describe() = %q", got)
	}
	duck := WarehouseConfig{Driver: DriverDuckDB, Path: "/data/taxi.duckdb"}
	if got := duck.Describe(); got != "duckdb:/data/taxi.duckdb" {
		t.Errorf("Describe() = %q", got)
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8501}
	if s.Addr() != "127.0.0.1:8501" {
		t.Errorf("Addr() = %q", s.Addr())
	}
	c := &Config{Server: ServerConfig{Environment: "production"}}
	if !c.IsProduction() {
		t.Error("expected production")
	}
}
