// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package catalog

import (
	"fmt"

	"github.com/tomtom215/taxiboard/internal/query"
)

// Unpivot turns a wide result into a long one: one output row per
// (input row, value column) pair, in input row order and then declared
// value column order. Null cells are kept.
type Unpivot struct {
	IDColumn     string
	ValueColumns []string
	NameColumn   string
	ValueColumn  string
}

var _ Reshaper = Unpivot{}

// Reshape implements Reshaper. The input is not modified.
func (u Unpivot) Reshape(r *query.Result) (*query.Result, error) {
	idType := ""
	found := make(map[string]bool, len(r.Columns))
	for _, c := range r.Columns {
		found[c.Name] = true
		if c.Name == u.IDColumn {
			idType = c.DatabaseType
		}
	}
	if !found[u.IDColumn] {
		return nil, fmt.Errorf("unpivot: id column %q not in result", u.IDColumn)
	}
	for _, col := range u.ValueColumns {
		if !found[col] {
			return nil, fmt.Errorf("unpivot: value column %q not in result", col)
		}
	}

	out := &query.Result{
		Columns: []query.Column{
			{Name: u.IDColumn, DatabaseType: idType},
			{Name: u.NameColumn, DatabaseType: "VARCHAR"},
			{Name: u.ValueColumn},
		},
		Rows:      make([]query.Row, 0, len(r.Rows)*len(u.ValueColumns)),
		FetchedAt: r.FetchedAt,
		Duration:  r.Duration,
	}

	for _, row := range r.Rows {
		for _, col := range u.ValueColumns {
			out.Rows = append(out.Rows, query.Row{
				u.IDColumn:    row[u.IDColumn],
				u.NameColumn:  col,
				u.ValueColumn: row[col],
			})
		}
	}

	return out, nil
}
