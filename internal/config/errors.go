// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package config

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError reports missing or malformed settings. It is fatal: the
// dashboard cannot render any panel until the configuration is fixed.
type ConfigurationError struct {
	// Fields lists the offending settings by their environment variable names.
	Fields []string
	// Reason is a short operator-facing explanation.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Fields) == 0 {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
