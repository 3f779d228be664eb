// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package dashboard

import (
	"time"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/chart"
	"github.com/tomtom215/taxiboard/internal/query"
)

// Page is one complete render pass.
type Page struct {
	Title      string        `json:"title"`
	Panels     []PanelView   `json:"panels"`
	RenderedAt time.Time     `json:"rendered_at"`
	Duration   time.Duration `json:"duration_ns"`
}

// Failed returns the ids of panels that carry an error.
func (p *Page) Failed() []string {
	var ids []string
	for i := range p.Panels {
		if p.Panels[i].Error != nil {
			ids = append(ids, p.Panels[i].ID)
		}
	}
	return ids
}

// Panel returns the view with the given id.
func (p *Page) Panel(id string) (*PanelView, bool) {
	for i := range p.Panels {
		if p.Panels[i].ID == id {
			return &p.Panels[i], true
		}
	}
	return nil, false
}

// PanelView is a rendered panel. Exactly one of Metrics, Chart and Table is
// set unless Error is.
type PanelView struct {
	ID         string       `json:"id"`
	Title      string       `json:"title,omitempty"`
	Subheading string       `json:"subheading,omitempty"`
	Kind       catalog.Kind `json:"kind"`

	Metrics []MetricView `json:"metrics,omitempty"`
	Chart   *chart.Spec  `json:"-"`
	Table   *TableView   `json:"table,omitempty"`

	Error     *PanelError `json:"error,omitempty"`
	FetchedAt time.Time   `json:"fetched_at,omitempty"`
}

// MetricView is one formatted metric card.
type MetricView struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Raw   any    `json:"raw"`
}

// TableView is a raw result table.
type TableView struct {
	Columns []string    `json:"columns"`
	Rows    []query.Row `json:"rows"`
}

// PanelError is the viewer-facing description of a panel failure. It never
// contains driver messages or SQL.
type PanelError struct {
	Message string `json:"message"`
}
