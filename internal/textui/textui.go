// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package textui prints a dashboard.Page to a terminal.
package textui

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/chart"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/query"
)

// Output formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatTable, FormatMarkdown, FormatCSV}

// Printer writes pages and panels in one output format.
type Printer struct {
	w      io.Writer
	f      *dashboard.Formatter
	format string
}

// NewPrinter returns a printer. An empty format means FormatTable.
func NewPrinter(w io.Writer, f *dashboard.Formatter, format string) (*Printer, error) {
	switch format {
	case "":
		format = FormatTable
	case FormatTable, FormatMarkdown, FormatCSV:
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return &Printer{w: w, f: f, format: format}, nil
}

// Page prints the title followed by every panel in order.
func (p *Printer) Page(page *dashboard.Page) error {
	if _, err := fmt.Fprintf(p.w, "%s\n%s\n\n", page.Title, strings.Repeat("=", len(page.Title))); err != nil {
		return err
	}
	for i := range page.Panels {
		if err := p.Panel(&page.Panels[i]); err != nil {
			return err
		}
	}
	return nil
}

// Panel prints a single panel.
func (p *Printer) Panel(v *dashboard.PanelView) error {
	if heading := heading(v); heading != "" {
		if _, err := fmt.Fprintf(p.w, "%s\n", heading); err != nil {
			return err
		}
	}

	if v.Error != nil {
		_, err := fmt.Fprintf(p.w, "  ! %s\n\n", v.Error.Message)
		return err
	}

	t := newTable()
	switch {
	case len(v.Metrics) > 0:
		header := make(table.Row, len(v.Metrics))
		row := make(table.Row, len(v.Metrics))
		for i, m := range v.Metrics {
			header[i] = m.Label
			row[i] = m.Value
		}
		t.AppendHeader(header)
		t.AppendRow(row)
		alignRight(t, len(v.Metrics))
	case v.Chart != nil:
		cols := seriesColumns(v.Chart)
		p.appendRows(t, cols, v.Chart.Data)
	case v.Table != nil:
		p.appendRows(t, v.Table.Columns, v.Table.Rows)
	default:
		return nil
	}
	return p.render(t)
}

// Catalog lists panels without running their queries.
func (p *Printer) Catalog(panels []catalog.Panel) error {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Kind", "Label"})
	for i := range panels {
		t.AppendRow(table.Row{panels[i].ID, string(panels[i].Kind), panels[i].Label()})
	}
	return p.render(t)
}

func newTable() table.Writer {
	t := table.NewWriter()
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	t.SetStyle(style)
	return t
}

func (p *Printer) render(t table.Writer) error {
	var out string
	switch p.format {
	case FormatMarkdown:
		out = t.RenderMarkdown()
	case FormatCSV:
		out = t.RenderCSV()
	default:
		out = t.Render()
	}
	_, err := fmt.Fprintf(p.w, "%s\n\n", out)
	return err
}

func (p *Printer) appendRows(t table.Writer, cols []string, rows []query.Row) {
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, r := range rows {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = p.f.Cell(r[c])
		}
		t.AppendRow(row)
	}
	if len(rows) == 0 {
		t.AppendFooter(table.Row{"(0 rows)"})
	}
}

func alignRight(t table.Writer, n int) {
	configs := make([]table.ColumnConfig, n)
	for i := range configs {
		configs[i] = table.ColumnConfig{Number: i + 1, Align: text.AlignRight}
	}
	t.SetColumnConfigs(configs)
}

func heading(v *dashboard.PanelView) string {
	switch {
	case v.Subheading != "" && v.Title != "":
		return v.Subheading + " / " + v.Title
	case v.Subheading != "":
		return v.Subheading
	default:
		return v.Title
	}
}

// seriesColumns returns the bound columns of a chart without duplicates,
// x first.
func seriesColumns(s *chart.Spec) []string {
	fields := []chart.Field{s.Encoding.X}
	if s.Encoding.Color != nil {
		fields = append(fields, *s.Encoding.Color)
	}
	fields = append(fields, s.Encoding.Y)
	fields = append(fields, s.Encoding.Tooltip...)

	seen := make(map[string]bool, len(fields))
	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		if !seen[f.Name] {
			seen[f.Name] = true
			cols = append(cols, f.Name)
		}
	}
	return cols
}
