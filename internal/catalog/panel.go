// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package catalog

import (
	"github.com/tomtom215/taxiboard/internal/query"
)

// Kind selects how a panel is presented.
type Kind string

const (
	KindMetricRow Kind = "metric-row"
	KindLineChart Kind = "line-chart"
	KindBarChart  Kind = "bar-chart"
	KindRawTable  Kind = "raw-table"
)

// IsChart reports whether the kind is drawn as a chart.
func (k Kind) IsChart() bool {
	return k == KindLineChart || k == KindBarChart
}

// FieldType is the measurement type of an encoded field.
type FieldType string

const (
	Temporal     FieldType = "temporal"
	Quantitative FieldType = "quantitative"
	Ordinal      FieldType = "ordinal"
	Nominal      FieldType = "nominal"
)

// Binding maps a result column to a visual channel.
type Binding struct {
	Field string    `json:"field"`
	Type  FieldType `json:"type"`
	Title string    `json:"title,omitempty"`
}

// Encoding holds a chart panel's channel bindings. Color is optional.
type Encoding struct {
	X       Binding   `json:"x"`
	Y       Binding   `json:"y"`
	Color   *Binding  `json:"color,omitempty"`
	Tooltip []Binding `json:"tooltip,omitempty"`
}

// Format controls how a metric value is displayed.
type Format string

const (
	// FormatCount is an integer with grouping separators: 1,234,567.
	FormatCount Format = "count"
	// FormatCurrency has grouping separators and two decimals: 1,234.50.
	FormatCurrency Format = "currency"
	// FormatDecimal has two decimals and no grouping: 11.67.
	FormatDecimal Format = "decimal"
)

// Metric is one card in a metric-row panel.
type Metric struct {
	Column string `json:"column"`
	Label  string `json:"label"`
	Format Format `json:"format"`
}

// Reshaper derives a new result from a panel's query result.
type Reshaper interface {
	Reshape(r *query.Result) (*query.Result, error)
}

// Panel is a fixed query plus how to present it. Panels are defined once
// at start-up and never modified.
type Panel struct {
	ID         string
	Title      string
	Subheading string
	SQL        string
	Kind       Kind
	Encoding   Encoding
	Reshape    Reshaper
	Metrics    []Metric
	Height     int
	Points     bool
}

// Label returns a human name for listings.
func (p *Panel) Label() string {
	switch {
	case p.Title != "":
		return p.Title
	case p.Subheading != "":
		return p.Subheading
	default:
		return p.ID
	}
}

// Columns returns every result column the panel's presentation refers to,
// after reshaping.
func (p *Panel) Columns() []string {
	var cols []string
	switch {
	case p.Kind == KindMetricRow:
		for _, m := range p.Metrics {
			cols = append(cols, m.Column)
		}
	case p.Kind.IsChart():
		cols = append(cols, p.Encoding.X.Field, p.Encoding.Y.Field)
		if p.Encoding.Color != nil {
			cols = append(cols, p.Encoding.Color.Field)
		}
		for _, b := range p.Encoding.Tooltip {
			cols = append(cols, b.Field)
		}
	}
	return cols
}
