// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package chart

import (
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/taxiboard/internal/query"
)

// VegaLiteSchema is the $schema of generated documents.
const VegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// VegaLite returns s as a Vega-Lite document. The chart fills the width of
// its container.
func VegaLite(s *Spec) map[string]any {
	mark := map[string]any{"type": string(s.Mark), "tooltip": true}
	if s.Points {
		mark["point"] = true
	}

	enc := map[string]any{
		"x": channel(s.Encoding.X),
		"y": channel(s.Encoding.Y),
	}
	if s.Encoding.Color != nil {
		enc["color"] = channel(*s.Encoding.Color)
	}
	if len(s.Encoding.Tooltip) > 0 {
		tips := make([]map[string]any, len(s.Encoding.Tooltip))
		for i, f := range s.Encoding.Tooltip {
			tips[i] = channel(f)
		}
		enc["tooltip"] = tips
	}

	doc := map[string]any{
		"$schema":  VegaLiteSchema,
		"width":    "container",
		"mark":     mark,
		"encoding": enc,
		"data":     map[string]any{"values": values(s.Data)},
	}
	if s.Title != "" {
		doc["title"] = s.Title
	}
	if s.Height > 0 {
		doc["height"] = s.Height
	}
	return doc
}

// VegaLiteJSON is VegaLite encoded as JSON.
func VegaLiteJSON(s *Spec) ([]byte, error) {
	return json.Marshal(VegaLite(s))
}

func channel(f Field) map[string]any {
	c := map[string]any{"field": f.Name, "type": string(f.Type)}
	if f.Title != "" {
		c["title"] = f.Title
	}
	return c
}

// values renders timestamps as ISO 8601 strings, which Vega parses as
// temporal values.
func values(rows []query.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, row := range rows {
		v := make(map[string]any, len(row))
		for k, val := range row {
			if t, ok := val.(time.Time); ok {
				val = t.UTC().Format(time.RFC3339)
			}
			v[k] = val
		}
		out[i] = v
	}
	return out
}
