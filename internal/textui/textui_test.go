// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package textui

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/chart"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/query"
)

func page() *dashboard.Page {
	return &dashboard.Page{
		Title: "Taxi",
		Panels: []dashboard.PanelView{
			{ID: "kpis", Kind: catalog.KindMetricRow, Metrics: []dashboard.MetricView{
				{Label: "Total Trips", Value: "3"},
				{Label: "Total Revenue ($)", Value: "60.00"},
			}},
			{ID: "trend", Title: "Trips & Revenue Over Time", Kind: catalog.KindLineChart, Chart: &chart.Spec{
				Encoding: chart.Encoding{
					X:       chart.Field{Name: "TRIP_DATE"},
					Y:       chart.Field{Name: "VALUE"},
					Color:   &chart.Field{Name: "METRIC"},
					Tooltip: []chart.Field{{Name: "VALUE"}},
				},
				Data: []query.Row{{"TRIP_DATE": "2024-01-01", "METRIC": "TRIPS", "VALUE": int64(2)}},
			}},
			{ID: "tips", Subheading: "Tip Analysis", Kind: catalog.KindBarChart, Error: &dashboard.PanelError{Message: "The query for this panel timed out."}},
			{ID: "high-value", Subheading: "High-Value Trips", Kind: catalog.KindRawTable, Table: &dashboard.TableView{
				Columns: []string{"TOTAL_AMOUNT"},
				Rows:    []query.Row{{"TOTAL_AMOUNT": 1234.5}},
			}},
		},
	}
}

func TestPrinterFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   []string
	}{
		{FormatTable, []string{"Taxi\n====", "Total Trips", "60.00", "TRIP_DATE", "METRIC", "! The query for this panel timed out.", "1,234.50"}},
		{FormatMarkdown, []string{"| Total Trips | Total Revenue ($) |", "| 2024-01-01 | TRIPS | 2 |"}},
		{FormatCSV, []string{"TRIP_DATE,METRIC,VALUE", "2024-01-01,TRIPS,2", "\"1,234.50\""}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			p, err := NewPrinter(&buf, dashboard.NewFormatter(language.AmericanEnglish), tt.format)
			if err != nil {
				t.Fatal(err)
			}
			if err := p.Page(page()); err != nil {
				t.Fatal(err)
			}
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestSeriesColumnsDeduplicates(t *testing.T) {
	t.Parallel()

	cols := seriesColumns(page().Panels[1].Chart)
	if strings.Join(cols, ",") != "TRIP_DATE,METRIC,VALUE" {
		t.Errorf("cols = %v", cols)
	}
}

func TestNewPrinterRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := NewPrinter(&bytes.Buffer{}, nil, "yaml"); err == nil {
		t.Error("expected error")
	}
}

func TestHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		view dashboard.PanelView
		want string
	}{
		{dashboard.PanelView{Title: "A"}, "A"},
		{dashboard.PanelView{Subheading: "S"}, "S"},
		{dashboard.PanelView{Subheading: "S", Title: "A"}, "S / A"},
		{dashboard.PanelView{}, ""},
	}
	for _, tt := range tests {
		if got := heading(&tt.view); got != tt.want {
			t.Errorf("heading(%+v) = %q, want %q", tt.view, got, tt.want)
		}
	}
}

func TestPrinterCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p, err := NewPrinter(&buf, dashboard.NewFormatter(language.AmericanEnglish), FormatCSV)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Catalog(catalog.DefaultPanels()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(catalog.DefaultPanels())+1 {
		t.Fatalf("got %d lines, want header plus one per panel:\n%s", len(lines), buf.String())
	}
	if lines[0] != "ID,Kind,Label" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "kpis,metric-row,") {
		t.Errorf("first row = %q", lines[1])
	}
}
