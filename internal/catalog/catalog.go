// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/taxiboard/internal/validation"
)

// Catalog is an ordered, read-only set of panels.
type Catalog struct {
	panels []Panel
	byID   map[string]int
}

// New validates panels and returns a catalog that keeps their order.
func New(panels ...Panel) (*Catalog, error) {
	if len(panels) == 0 {
		return nil, errors.New("catalog: no panels")
	}

	c := &Catalog{
		panels: make([]Panel, len(panels)),
		byID:   make(map[string]int, len(panels)),
	}
	copy(c.panels, panels)

	for i := range c.panels {
		p := &c.panels[i]
		if err := validatePanel(p); err != nil {
			return nil, fmt.Errorf("catalog: panel %d (%q): %w", i, p.ID, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate panel id %q", p.ID)
		}
		c.byID[p.ID] = i
	}

	return c, nil
}

func validatePanel(p *Panel) error {
	if !validation.ValidPanelID(p.ID) {
		return fmt.Errorf("invalid id %q", p.ID)
	}
	if strings.TrimSpace(p.SQL) == "" {
		return errors.New("missing SQL")
	}

	switch p.Kind {
	case KindMetricRow:
		if len(p.Metrics) == 0 {
			return errors.New("metric-row panel declares no metrics")
		}
		for _, m := range p.Metrics {
			if m.Column == "" || m.Label == "" {
				return errors.New("metric needs a column and a label")
			}
		}
	case KindLineChart, KindBarChart:
		if p.Encoding.X.Field == "" || p.Encoding.Y.Field == "" {
			return errors.New("chart panel needs x and y bindings")
		}
	case KindRawTable:
	default:
		return fmt.Errorf("unknown kind %q", p.Kind)
	}

	if u, ok := p.Reshape.(Unpivot); ok {
		if u.IDColumn == "" || u.NameColumn == "" || u.ValueColumn == "" || len(u.ValueColumns) == 0 {
			return errors.New("incomplete unpivot")
		}
	}
	return nil
}

// Panels returns the panels in display order.
func (c *Catalog) Panels() []Panel {
	out := make([]Panel, len(c.panels))
	copy(out, c.panels)
	return out
}

// Lookup returns the panel with the given id.
func (c *Catalog) Lookup(id string) (Panel, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Panel{}, false
	}
	return c.panels[i], true
}

// Len returns the number of panels.
func (c *Catalog) Len() int {
	return len(c.panels)
}

// IDs returns the panel ids in display order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.panels))
	for i, p := range c.panels {
		ids[i] = p.ID
	}
	return ids
}
