// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package query

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/warehouse"
)

// ErrTimeout marks an execution that exceeded the per-query timeout.
var ErrTimeout = errors.New("query timed out")

// ErrCircuitOpen marks an execution rejected by the circuit breaker.
var ErrCircuitOpen = errors.New("warehouse circuit breaker is open")

// QueryExecutionError reports a failed query. Transient errors (timeouts,
// lost connections) may be retried; SQL and schema errors are not.
type QueryExecutionError struct {
	Query     string
	Err       error
	Transient bool
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query execution failed [%s]: %v", logging.QuerySnippet(e.Query), e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// IsQueryExecutionError reports whether err is or wraps a *QueryExecutionError.
func IsQueryExecutionError(err error) bool {
	var qe *QueryExecutionError
	return errors.As(err, &qe)
}

// IsFatal reports whether err should abort a whole render pass rather than a
// single panel.
func IsFatal(err error) bool {
	return config.IsConfigurationError(err) || warehouse.IsAuthenticationError(err) || errors.Is(err, warehouse.ErrClosed)
}

// errorKind labels err for metrics.
func errorKind(err error) string {
	switch {
	case config.IsConfigurationError(err):
		return "config"
	case warehouse.IsAuthenticationError(err):
		return "auth"
	case errors.Is(err, ErrCircuitOpen):
		return "rejected"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case isTransient(err):
		return "transient"
	default:
		return "permanent"
	}
}

// isTransient reports whether a failure is worth retrying.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrCircuitOpen) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}
	var connErr *warehouse.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return warehouse.IsConnectionError(err)
}
