// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package ui

import (
	"fmt"
	"net/http"
	"time"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/chart"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/logging"
)

const (
	vegaScript      = "https://cdn.jsdelivr.net/npm/vega@5"
	vegaLiteScript  = "https://cdn.jsdelivr.net/npm/vega-lite@5"
	vegaEmbedScript = "https://cdn.jsdelivr.net/npm/vega-embed@6"
)

// embedScript draws every chart from its JSON document.
const embedScript = `
document.querySelectorAll("script[data-chart]").forEach(function (el) {
  vegaEmbed("#" + el.dataset.chart, JSON.parse(el.textContent), {actions: false});
});
`

// DashboardPage renders a complete dashboard document.
func DashboardPage(page *dashboard.Page, f *dashboard.Formatter) gomponents.Node {
	body := make([]gomponents.Node, 0, len(page.Panels)+2)
	body = append(body, html.H1(gomponents.Text(page.Title)))

	for i := range page.Panels {
		p := &page.Panels[i]
		if p.Kind == catalog.KindMetricRow {
			body = append(body, metricRow(p))
			continue
		}
		body = append(body, html.Hr())
		if p.Subheading != "" {
			body = append(body, html.H3(gomponents.Text(p.Subheading)))
		}
		body = append(body, panel(p, f))
	}

	body = append(body, html.P(html.Class("muted"),
		gomponents.Textf("Rendered %s in %s", page.RenderedAt.UTC().Format(time.RFC3339), page.Duration.Round(time.Millisecond))))

	return document(page.Title,
		[]gomponents.Node{
			html.Script(html.Src(vegaScript)),
			html.Script(html.Src(vegaLiteScript)),
			html.Script(html.Src(vegaEmbedScript)),
		},
		html.Main(gomponents.Group(body)),
		html.Script(gomponents.Raw(embedScript)),
	)
}

// ErrorPage renders a full-page failure. message must be safe to show a
// viewer.
func ErrorPage(title, message string) gomponents.Node {
	return document(title, nil,
		html.Main(
			html.H1(gomponents.Text(title)),
			html.Div(html.Class("panel-error"), gomponents.Text(message)),
		),
	)
}

func document(title string, head []gomponents.Node, body ...gomponents.Node) gomponents.Node {
	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title)),
			html.StyleEl(gomponents.Raw(stylesheet)),
			gomponents.Group(head),
		),
		html.Body(gomponents.Group(body)),
	))
}

func metricRow(p *dashboard.PanelView) gomponents.Node {
	if p.Error != nil {
		return errorBox(p.Error)
	}
	cards := make([]gomponents.Node, len(p.Metrics))
	for i, m := range p.Metrics {
		cards[i] = html.Div(html.Class("kpi"),
			html.Div(html.Class("kpi-label"), gomponents.Text(m.Label)),
			html.Div(html.Class("kpi-value"), gomponents.Text(m.Value)),
		)
	}
	return html.Div(html.Class("kpis"), html.ID("panel-"+p.ID), gomponents.Group(cards))
}

func panel(p *dashboard.PanelView, f *dashboard.Formatter) gomponents.Node {
	content := []gomponents.Node{html.ID("panel-" + p.ID), html.Class("panel")}
	if p.Title != "" {
		content = append(content, html.H4(gomponents.Text(p.Title)))
	}

	switch {
	case p.Error != nil:
		content = append(content, errorBox(p.Error))
	case p.Chart != nil:
		content = append(content, chartNode(p.ID, p.Chart))
	case p.Table != nil:
		content = append(content, table(p.Table, f))
	}
	return html.Div(content...)
}

func errorBox(e *dashboard.PanelError) gomponents.Node {
	return html.Div(html.Class("panel-error"), html.Role("alert"), gomponents.Text(e.Message))
}

func chartNode(id string, spec *chart.Spec) gomponents.Node {
	doc, err := chart.VegaLiteJSON(spec)
	if err != nil {
		logging.Error().Err(err).Str("panel", id).Msg("Failed to encode chart")
		return errorBox(&dashboard.PanelError{Message: "This chart could not be drawn."})
	}
	target := "chart-" + id
	return gomponents.Group{
		html.Div(html.ID(target), html.Class("chart")),
		// JSON encoding escapes <, > and &, so the document cannot close the
		// script element early.
		html.Script(html.Type("application/json"), gomponents.Attr("data-chart", target), gomponents.Raw(string(doc))),
	}
}

func table(t *dashboard.TableView, f *dashboard.Formatter) gomponents.Node {
	head := make([]gomponents.Node, len(t.Columns))
	for i, c := range t.Columns {
		head[i] = html.Th(gomponents.Text(c))
	}

	rows := make([]gomponents.Node, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]gomponents.Node, len(t.Columns))
		for j, c := range t.Columns {
			cells[j] = html.Td(gomponents.Text(f.Cell(row[c])))
		}
		rows[i] = html.Tr(cells...)
	}

	return html.Table(
		html.THead(html.Tr(head...)),
		html.TBody(rows...),
	)
}

// Render writes node as an HTML response.
func Render(w http.ResponseWriter, status int, node gomponents.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := node.Render(w); err != nil {
		logging.Error().Err(err).Msg("Failed to write HTML response")
	}
}

// ErrorMessage is the viewer-facing text for a fatal render failure.
func ErrorMessage(status int) string {
	switch status {
	case http.StatusServiceUnavailable:
		return "The dashboard is unavailable: the warehouse connection is not configured or was refused. Operators can find details in the server log."
	default:
		return fmt.Sprintf("The dashboard could not be rendered (%d).", status)
	}
}
