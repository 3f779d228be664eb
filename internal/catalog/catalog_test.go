// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := Default()

	want := []string{"kpis", "trend", "pickup-hour", "vendor", "payment", "passengers", "distance", "tips", "duration", "high-value"}
	if got := c.IDs(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
	if c.Len() != 10 {
		t.Errorf("Len() = %d", c.Len())
	}

	kpis, ok := c.Lookup("kpis")
	if !ok || kpis.Kind != KindMetricRow || len(kpis.Metrics) != 4 {
		t.Fatalf("kpis panel = %+v", kpis)
	}
	if kpis.Metrics[0].Format != FormatCount || kpis.Metrics[1].Format != FormatCurrency {
		t.Errorf("kpi formats = %+v", kpis.Metrics)
	}

	trend, _ := c.Lookup("trend")
	if _, ok := trend.Reshape.(Unpivot); !ok {
		t.Error("trend panel should unpivot trips and revenue")
	}
	if !trend.Points || trend.Encoding.Color == nil || trend.Encoding.Color.Field != "METRIC" {
		t.Errorf("trend encoding = %+v", trend.Encoding)
	}

	if _, ok := c.Lookup("nope"); ok {
		t.Error("Lookup of unknown id should fail")
	}
}

func TestDefaultSQLIsParameterless(t *testing.T) {
	t.Parallel()

	for _, p := range DefaultPanels() {
		if strings.ContainsAny(p.SQL, "?$") {
			t.Errorf("panel %s SQL contains a placeholder", p.ID)
		}
		if !strings.Contains(p.SQL, "FACT_TAXI_TRIPS") {
			t.Errorf("panel %s does not read the fact table", p.ID)
		}
	}
}

func TestPanelsReturnsCopy(t *testing.T) {
	t.Parallel()

	c := Default()
	panels := c.Panels()
	panels[0].ID = "mutated"
	if c.Panels()[0].ID != "kpis" {
		t.Error("Panels() must not expose internal storage")
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	bar := Panel{ID: "bar", SQL: "SELECT 1", Kind: KindBarChart, Encoding: Encoding{
		X: Binding{Field: "X", Type: Nominal}, Y: Binding{Field: "Y", Type: Quantitative},
	}}

	tests := []struct {
		name    string
		panels  []Panel
		wantErr string
	}{
		{"valid", []Panel{bar}, ""},
		{"empty", nil, "no panels"},
		{"duplicate id", []Panel{bar, bar}, "duplicate"},
		{"bad id", []Panel{{ID: "Bad ID", SQL: "SELECT 1", Kind: KindRawTable}}, "invalid id"},
		{"missing sql", []Panel{{ID: "t", Kind: KindRawTable}}, "missing SQL"},
		{"unknown kind", []Panel{{ID: "t", SQL: "SELECT 1", Kind: "pie-chart"}}, "unknown kind"},
		{"metric row without metrics", []Panel{{ID: "m", SQL: "SELECT 1", Kind: KindMetricRow}}, "no metrics"},
		{"chart without y", []Panel{{ID: "c", SQL: "SELECT 1", Kind: KindLineChart, Encoding: Encoding{X: Binding{Field: "X"}}}}, "x and y"},
		{"incomplete unpivot", []Panel{{ID: "r", SQL: "SELECT 1", Kind: KindRawTable, Reshape: Unpivot{IDColumn: "D"}}}, "unpivot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.panels...)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("New() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPanelColumnsAndLabel(t *testing.T) {
	t.Parallel()

	c := Default()
	payment, _ := c.Lookup("payment")
	cols := strings.Join(payment.Columns(), ",")
	if cols != "PAYMENT_TYPE,REVENUE,TRIPS,REVENUE,AVG_FARE" {
		t.Errorf("Columns() = %s", cols)
	}
	if payment.Label() != "Revenue by Payment Type" {
		t.Errorf("Label() = %q", payment.Label())
	}
	passengers, _ := c.Lookup("passengers")
	if passengers.Label() != "Passenger Behavior" {
		t.Errorf("Label() = %q", passengers.Label())
	}
	hv, _ := c.Lookup("high-value")
	if len(hv.Columns()) != 0 {
		t.Error("raw tables bind no columns")
	}
}
