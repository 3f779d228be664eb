// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/query"
	"github.com/tomtom215/taxiboard/internal/warehouse"
)

// renderFailure maps a failed render to an HTTP status, an error code and a
// message safe to return to the client.
func renderFailure(err error) (status int, code, message string) {
	switch {
	case config.IsConfigurationError(err):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Warehouse connection is not configured"
	case warehouse.IsAuthenticationError(err):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Warehouse rejected the configured credentials"
	case errors.Is(err, warehouse.ErrClosed):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Server is shutting down"
	case errors.Is(err, dashboard.ErrUnknownPanel):
		return http.StatusNotFound, ErrCodeNotFound, "Panel not found"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, query.ErrTimeout):
		return http.StatusGatewayTimeout, ErrCodeQueryFailed, "Dashboard query timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled"
	case query.IsQueryExecutionError(err):
		return http.StatusBadGateway, ErrCodeQueryFailed, "A dashboard query failed"
	default:
		return http.StatusInternalServerError, ErrCodeInternalError, "Dashboard could not be rendered"
	}
}
