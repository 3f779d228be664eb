// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package warehouse

import (
	"errors"
	"fmt"
	"strings"

	sf "github.com/snowflakedb/gosnowflake"
)

// ErrClosed is returned by Conn after Close.
var ErrClosed = errors.New("warehouse: provider closed")

// AuthenticationError reports that the warehouse rejected the supplied
// credentials. It is fatal for the render pass and is never retried.
type AuthenticationError struct {
	Account string
	User    string
	Err     error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("warehouse rejected credentials for user %q on account %q", e.User, e.Account)
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ConnectError wraps any other failure to open or ping the warehouse.
type ConnectError struct {
	Target string
	Err    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Target, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError reports whether err is or wraps an *AuthenticationError.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// snowflakeAuthCodes are login failures that no amount of retrying will fix.
var snowflakeAuthCodes = map[int]bool{
	390100: true, // incorrect username or password
	390101: true, // user temporarily locked
	390102: true, // user disabled
	390144: true, // JWT token invalid
	390318: true, // MFA required
	390422: true, // IP not allowed
}

// snowflakeConfigCodes are raised by the driver before any network call when
// the connection settings are incomplete.
var snowflakeConfigCodes = map[int]string{
	sf.ErrCodeEmptyAccountCode:  "SNOWFLAKE_ACCOUNT",
	sf.ErrCodeEmptyUsernameCode: "SNOWFLAKE_USER",
	sf.ErrCodeEmptyPasswordCode: "SNOWFLAKE_PASSWORD",
}

func isAuthFailure(err error) bool {
	var sfErr *sf.SnowflakeError
	if errors.As(err, &sfErr) {
		return snowflakeAuthCodes[sfErr.Number]
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "incorrect username or password") ||
		strings.Contains(msg, "authentication failed")
}

func configFieldForError(err error) (string, bool) {
	var sfErr *sf.SnowflakeError
	if !errors.As(err, &sfErr) {
		return "", false
	}
	field, ok := snowflakeConfigCodes[sfErr.Number]
	return field, ok
}

// IsConnectionError reports whether err indicates a lost or unusable
// connection, as opposed to a failure of the statement itself.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "bad connection") ||
		strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "i/o timeout") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "TLS handshake timeout")
}
