// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package logging

import (
	"strings"
	"testing"
)

func TestRedact(t *testing.T) {
	t.Parallel()

	if Redact("") != "" {
		t.Error("expected empty secret to stay empty")
	}
	if Redact("hunter2") != redacted {
		t.Error("expected secret to be masked")
	}
}

func TestRedactDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{
			name: "snowflake dsn",
			dsn:  "analyst:s3cret@xy12345/TAXI/TAXI?warehouse=COMPUTE_WH",
			want: "analyst:[REDACTED]@xy12345/TAXI/TAXI?warehouse=COMPUTE_WH",
		},
		{
			name: "password containing at sign",
			dsn:  "analyst:p@ss@acct/TAXI",
			want: "analyst:[REDACTED]@acct/TAXI",
		},
		{
			name: "no credentials",
			dsn:  "/data/taxi.duckdb",
			want: "/data/taxi.duckdb",
		},
		{
			name: "user without password",
			dsn:  "analyst@acct/TAXI",
			want: "analyst@acct/TAXI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RedactDSN(tt.dsn); got != tt.want {
				t.Errorf("RedactDSN(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}
}

func TestRedactSecrets(t *testing.T) {
	t.Parallel()

	got := RedactSecrets("login failed for analyst with password s3cretpw", "s3cretpw", "ab")
	if strings.Contains(got, "s3cretpw") {
		t.Errorf("secret leaked: %s", got)
	}
	if !strings.Contains(got, "analyst") {
		t.Errorf("expected non-secret text to remain: %s", got)
	}
}

func TestQuerySnippet(t *testing.T) {
	t.Parallel()

	got := QuerySnippet("SELECT\n    COUNT(*)\n  FROM   FACT_TAXI_TRIPS")
	if got != "SELECT COUNT(*) FROM FACT_TAXI_TRIPS" {
		t.Errorf("unexpected snippet: %q", got)
	}

	long := QuerySnippet("SELECT " + strings.Repeat("x, ", 100) + "y FROM t")
	if len(long) != maxSnippetLen+3 || !strings.HasSuffix(long, "...") {
		t.Errorf("expected truncated snippet, got %d chars", len(long))
	}
}

func TestSanitizeValue(t *testing.T) {
	t.Parallel()

	if got := SanitizeValue("kpis\ninjected"); got != "kpis?injected" {
		t.Errorf("unexpected sanitized value: %q", got)
	}
}
