// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package chart

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/query"
)

func lookup(t *testing.T, id string) catalog.Panel {
	t.Helper()
	p, ok := catalog.Default().Lookup(id)
	if !ok {
		t.Fatalf("no panel %s", id)
	}
	return p
}

func trendResult() *query.Result {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &query.Result{
		Columns: []query.Column{{Name: "TRIP_DATE"}, {Name: "METRIC"}, {Name: "VALUE"}},
		Rows: []query.Row{
			{"TRIP_DATE": day, "METRIC": "TRIPS", "VALUE": int64(2)},
			{"TRIP_DATE": day, "METRIC": "REVENUE", "VALUE": 30.0},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	p := lookup(t, "trend")
	spec, err := Build(&p, trendResult())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if spec.Mark != MarkLine || !spec.Points || spec.Height != 350 {
		t.Errorf("spec = %+v", spec)
	}
	if spec.Encoding.X.Name != "TRIP_DATE" || spec.Encoding.X.Type != catalog.Temporal {
		t.Errorf("x = %+v", spec.Encoding.X)
	}
	if spec.Encoding.Color == nil || spec.Encoding.Color.Name != "METRIC" {
		t.Errorf("color = %+v", spec.Encoding.Color)
	}
	if len(spec.Data) != 2 {
		t.Fatalf("data rows = %d", len(spec.Data))
	}
}

func TestBuildCopiesRows(t *testing.T) {
	t.Parallel()

	p := lookup(t, "trend")
	res := trendResult()
	spec, err := Build(&p, res)
	if err != nil {
		t.Fatal(err)
	}
	spec.Data[0]["VALUE"] = "changed"
	if res.Rows[0]["VALUE"] != int64(2) {
		t.Error("Build must not share rows with the result")
	}
}

func TestBuildMissingColumns(t *testing.T) {
	t.Parallel()

	p := lookup(t, "payment")
	res := &query.Result{Columns: []query.Column{{Name: "PAYMENT_TYPE"}, {Name: "REVENUE"}}}

	_, err := Build(&p, res)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingColumnsError", err)
	}
	if strings.Join(missing.Columns, ",") != "TRIPS,AVG_FARE" {
		t.Errorf("missing = %v", missing.Columns)
	}
}

func TestBuildRejectsNonChart(t *testing.T) {
	t.Parallel()

	p := lookup(t, "high-value")
	if _, err := Build(&p, &query.Result{}); err == nil {
		t.Error("expected error for raw table")
	}
}

func TestVegaLite(t *testing.T) {
	t.Parallel()

	p := lookup(t, "trend")
	spec, err := Build(&p, trendResult())
	if err != nil {
		t.Fatal(err)
	}

	raw, err := VegaLiteJSON(spec)
	if err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Schema string `json:"$schema"`
		Height int    `json:"height"`
		Mark   struct {
			Type  string `json:"type"`
			Point bool   `json:"point"`
		} `json:"mark"`
		Encoding map[string]struct {
			Field string `json:"field"`
			Type  string `json:"type"`
		} `json:"encoding"`
		Data struct {
			Values []map[string]any `json:"values"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.Schema != VegaLiteSchema || doc.Height != 350 {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Mark.Type != "line" || !doc.Mark.Point {
		t.Errorf("mark = %+v", doc.Mark)
	}
	if doc.Encoding["x"].Field != "TRIP_DATE" || doc.Encoding["x"].Type != "temporal" {
		t.Errorf("x = %+v", doc.Encoding["x"])
	}
	if doc.Encoding["color"].Field != "METRIC" {
		t.Errorf("color = %+v", doc.Encoding["color"])
	}
	if got := doc.Data.Values[0]["TRIP_DATE"]; got != "2024-01-01T00:00:00Z" {
		t.Errorf("TRIP_DATE = %v", got)
	}
}

func TestVegaLiteBarWithoutColor(t *testing.T) {
	t.Parallel()

	p := lookup(t, "pickup-hour")
	res := &query.Result{
		Columns: []query.Column{{Name: "PICKUP_HOUR"}, {Name: "TRIPS"}},
		Rows:    []query.Row{{"PICKUP_HOUR": int64(0), "TRIPS": int64(3)}},
	}
	spec, err := Build(&p, res)
	if err != nil {
		t.Fatal(err)
	}

	doc := VegaLite(spec)
	enc := doc["encoding"].(map[string]any)
	if _, ok := enc["color"]; ok {
		t.Error("single series chart should have no color channel")
	}
	mark := doc["mark"].(map[string]any)
	if mark["type"] != "bar" {
		t.Errorf("mark = %v", mark)
	}
	if _, ok := mark["point"]; ok {
		t.Error("bar chart should not draw points")
	}
}
