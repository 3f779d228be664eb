// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package dashboard

import (
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/tomtom215/taxiboard/internal/catalog"
)

func TestFormatterMetric(t *testing.T) {
	t.Parallel()

	f := NewFormatter(language.AmericanEnglish)

	tests := []struct {
		name   string
		value  any
		format catalog.Format
		want   string
	}{
		{"count grouping", int64(1234567), catalog.FormatCount, "1,234,567"},
		{"count small", int64(3), catalog.FormatCount, "3"},
		{"count from float", 2500.0, catalog.FormatCount, "2,500"},
		{"count from text", "42", catalog.FormatCount, "42"},
		{"currency grouping", 1234567.5, catalog.FormatCurrency, "1,234,567.50"},
		{"currency whole", 60.0, catalog.FormatCurrency, "60.00"},
		{"currency from int", int64(60), catalog.FormatCurrency, "60.00"},
		{"decimal rounds", 11.666666, catalog.FormatDecimal, "11.67"},
		{"decimal pads", 20.0, catalog.FormatDecimal, "20.00"},
		{"decimal no grouping", 1234.5, catalog.FormatDecimal, "1234.50"},
		{"null", nil, catalog.FormatCurrency, NotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := f.Metric(tt.value, tt.format)
			if err != nil {
				t.Fatalf("Metric() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Metric(%v, %s) = %q, want %q", tt.value, tt.format, got, tt.want)
			}
		})
	}
}

func TestFormatterMetricErrors(t *testing.T) {
	t.Parallel()

	f := NewFormatter(language.AmericanEnglish)
	if _, err := f.Metric("abc", catalog.FormatCount); err == nil {
		t.Error("expected error for non-numeric value")
	}
	if _, err := f.Metric(1.0, catalog.Format("percent")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestFormatterCell(t *testing.T) {
	t.Parallel()

	f := NewFormatter(language.AmericanEnglish)

	tests := []struct {
		value any
		want  string
	}{
		{nil, NotAvailable},
		{"Cash", "Cash"},
		{int64(12000), "12,000"},
		{124.5, "124.50"},
		{time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), "2024-01-04"},
		{time.Date(2024, 1, 4, 9, 30, 0, 0, time.UTC), "2024-01-04 09:30:00"},
		{true, "true"},
	}

	for _, tt := range tests {
		if got := f.Cell(tt.value); got != tt.want {
			t.Errorf("Cell(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
