// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package logging provides centralized zerolog-based logging for Taxiboard.

# Quick Start

	logging.Init(logging.Config{
	    Level:  "info",
	    Format: "json",
	})

	logging.Info().Msg("Server starting")
	logging.Error().Err(err).Str("panel", id).Msg("Panel query failed")
	logging.Ctx(ctx).Info().Msg("Dashboard rendered")

# Configuration

	LOG_LEVEL   debug, info, warn, error (default: info)
	LOG_FORMAT  json, console (default: json)
	LOG_CALLER  include caller file:line (default: false)

# Operators and Viewers

Warehouse failures are logged here with their full cause. Dashboard viewers
only ever see the short message attached to a failed panel. Credentials must
never reach a log line: use Redact, RedactDSN and RedactSecrets for anything
derived from the warehouse configuration, and QuerySnippet for SQL text.

# Supervisor Integration

NewSlogLogger adapts the global logger to log/slog for sutureslog.
*/
package logging
