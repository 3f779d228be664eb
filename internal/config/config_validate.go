// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package config

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/validation"
)

// Validate checks every section except warehouse credentials, which are
// deferred to WarehouseConfig.Validate so that the dashboard can still start
// and report the problem on the page.
func (c *Config) Validate() error {
	sections := []struct {
		name string
		v    interface{}
	}{
		{"query", &c.Query},
		{"cache", &c.Cache},
		{"dashboard", &c.Dashboard},
		{"server", &c.Server},
		{"security", &c.Security},
		{"logging", &c.Logging},
	}

	for _, s := range sections {
		if verr := validation.ValidateStruct(s.v); verr != nil {
			return &ConfigurationError{
				Fields: prefixed(s.name, verr.Fields()),
				Reason: fmt.Sprintf("invalid %s settings (%s)", s.name, verr.Error()),
			}
		}
	}

	if c.Warehouse.Driver != DriverSnowflake && c.Warehouse.Driver != DriverDuckDB {
		return &ConfigurationError{
			Fields: []string{"WAREHOUSE_DRIVER"},
			Reason: fmt.Sprintf("unknown warehouse driver %q", c.Warehouse.Driver),
		}
	}

	if c.Logging.Level != "" && !logging.ValidLevel(c.Logging.Level) {
		return &ConfigurationError{
			Fields: []string{"LOG_LEVEL"},
			Reason: fmt.Sprintf("unknown log level %q", c.Logging.Level),
		}
	}

	if c.Cache.RefreshSchedule != "" {
		if _, err := cron.ParseStandard(c.Cache.RefreshSchedule); err != nil {
			return &ConfigurationError{
				Fields: []string{"CACHE_REFRESH_SCHEDULE"},
				Reason: fmt.Sprintf("invalid cron expression: %v", err),
			}
		}
	}

	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs == 0 || c.Security.RateLimitWindow == 0) {
		return &ConfigurationError{
			Fields: []string{"RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW"},
			Reason: "rate limiting is enabled but has no budget",
		}
	}

	if c.Query.MaxRetryDelay > 0 && c.Query.MaxRetryDelay < c.Query.RetryDelay {
		return &ConfigurationError{
			Fields: []string{"QUERY_MAX_RETRY_DELAY"},
			Reason: "max retry delay is shorter than the initial retry delay",
		}
	}

	return nil
}

// Validate checks that the warehouse can be reached with the configured
// driver. Missing credentials yield a *ConfigurationError listing every
// absent setting by environment variable name.
func (w *WarehouseConfig) Validate() error {
	verr := validation.ValidateStruct(w)
	if verr == nil {
		return nil
	}

	fields := make([]string, 0, len(verr.Fields()))
	for _, f := range verr.Fields() {
		if name, ok := envNames[f]; ok {
			fields = append(fields, name)
			continue
		}
		fields = append(fields, f)
	}

	reason := "missing warehouse credentials"
	for _, e := range verr.Errors() {
		if e.Tag() != "required_if" {
			reason = "invalid warehouse settings"
			break
		}
	}

	return &ConfigurationError{Fields: fields, Reason: reason}
}

func prefixed(section string, fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = section + "." + f
	}
	return out
}
