// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package chart

import (
	"fmt"
	"strings"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/query"
)

// Mark is the graphical primitive of a chart.
type Mark string

const (
	MarkLine Mark = "line"
	MarkBar  Mark = "bar"
)

// Field is a column bound to a visual channel.
type Field struct {
	Name  string            `json:"name"`
	Type  catalog.FieldType `json:"type"`
	Title string            `json:"title,omitempty"`
}

// Encoding holds the channel bindings. Color is nil when the chart has a
// single series.
type Encoding struct {
	X       Field   `json:"x"`
	Y       Field   `json:"y"`
	Color   *Field  `json:"color,omitempty"`
	Tooltip []Field `json:"tooltip,omitempty"`
}

// Spec describes one chart. It is built fresh for every render and owns
// its data slice.
type Spec struct {
	Title    string      `json:"title,omitempty"`
	Mark     Mark        `json:"mark"`
	Points   bool        `json:"points,omitempty"`
	Height   int         `json:"height,omitempty"`
	Encoding Encoding    `json:"encoding"`
	Data     []query.Row `json:"data"`
}

// MissingColumnsError reports bindings that name columns absent from the
// result.
type MissingColumnsError struct {
	Panel   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("chart %s: result has no column %s", e.Panel, strings.Join(e.Columns, ", "))
}

// Build maps a (reshaped) result onto the panel's encoding.
func Build(p *catalog.Panel, r *query.Result) (*Spec, error) {
	var mark Mark
	switch p.Kind {
	case catalog.KindLineChart:
		mark = MarkLine
	case catalog.KindBarChart:
		mark = MarkBar
	default:
		return nil, fmt.Errorf("chart %s: kind %q is not a chart", p.ID, p.Kind)
	}

	var missing []string
	seen := make(map[string]bool)
	for _, col := range p.Columns() {
		if !seen[col] && !r.HasColumn(col) {
			missing = append(missing, col)
		}
		seen[col] = true
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Panel: p.ID, Columns: missing}
	}

	spec := &Spec{
		Title:  p.Title,
		Mark:   mark,
		Points: p.Points,
		Height: p.Height,
		Encoding: Encoding{
			X: field(p.Encoding.X),
			Y: field(p.Encoding.Y),
		},
		Data: make([]query.Row, len(r.Rows)),
	}
	if p.Encoding.Color != nil {
		c := field(*p.Encoding.Color)
		spec.Encoding.Color = &c
	}
	for _, b := range p.Encoding.Tooltip {
		spec.Encoding.Tooltip = append(spec.Encoding.Tooltip, field(b))
	}

	// Rows are copied so that a consumer decorating the data cannot reach
	// the cached result.
	for i, row := range r.Rows {
		cp := make(query.Row, len(row))
		for k, v := range row {
			cp[k] = v
		}
		spec.Data[i] = cp
	}

	return spec, nil
}

func field(b catalog.Binding) Field {
	return Field{Name: b.Field, Type: b.Type, Title: b.Title}
}
