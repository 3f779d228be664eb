// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package logging

import (
	"strings"
)

// redacted replaces secrets in log output.
const redacted = "[REDACTED]"

// maxSnippetLen bounds how much SQL text goes into a single log field.
const maxSnippetLen = 120

// Redact masks a secret. Empty values stay empty so "not configured" is still visible.
func Redact(secret string) string {
	if secret == "" {
		return ""
	}
	return redacted
}

// RedactDSN masks the password portion of a user:password@host style DSN.
//
//	RedactDSN("bob:hunter2@acct/TAXI/TAXI?warehouse=WH") // "bob:[REDACTED]@acct/TAXI/TAXI?warehouse=WH"
func RedactDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	creds := dsn[:at]
	colon := strings.Index(creds, ":")
	if colon < 0 {
		return dsn
	}
	return creds[:colon+1] + redacted + dsn[at:]
}

// RedactSecrets removes every occurrence of the given secrets from s.
// Driver error strings sometimes echo parts of the connection string.
func RedactSecrets(s string, secrets ...string) string {
	for _, secret := range secrets {
		if len(secret) < 4 {
			continue
		}
		s = strings.ReplaceAll(s, secret, redacted)
	}
	return s
}

// QuerySnippet collapses whitespace in a SQL statement and truncates it for logging.
func QuerySnippet(sql string) string {
	collapsed := strings.Join(strings.Fields(sql), " ")
	if len(collapsed) <= maxSnippetLen {
		return collapsed
	}
	return collapsed[:maxSnippetLen] + "..."
}

// SanitizeValue removes control characters to prevent log injection.
func SanitizeValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
