// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/language"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/chart"
	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/metrics"
	"github.com/tomtom215/taxiboard/internal/query"
)

// ErrUnknownPanel is returned by RenderPanel for an id not in the catalog.
var ErrUnknownPanel = errors.New("unknown panel")

// Renderer turns the catalog into a Page. It is safe for concurrent use.
type Renderer struct {
	loader  query.Loader
	catalog *catalog.Catalog
	title   string
	policy  string
	format  *Formatter
}

// NewRenderer creates a renderer.
func NewRenderer(loader query.Loader, cat *catalog.Catalog, cfg *config.DashboardConfig) *Renderer {
	policy := cfg.PanelErrorPolicy
	if policy == "" {
		policy = config.PanelErrorIsolate
	}
	return &Renderer{
		loader:  loader,
		catalog: cat,
		title:   cfg.Title,
		policy:  policy,
		format:  NewFormatter(language.AmericanEnglish),
	}
}

// Catalog returns the catalog the renderer draws.
func (r *Renderer) Catalog() *catalog.Catalog {
	return r.catalog
}

// Formatter returns the formatter used for metric values.
func (r *Renderer) Formatter() *Formatter {
	return r.format
}

// Render runs every panel in catalog order.
func (r *Renderer) Render(ctx context.Context) (*Page, error) {
	start := time.Now()
	page := &Page{Title: r.title, RenderedAt: start}

	panels := r.catalog.Panels()
	page.Panels = make([]PanelView, 0, len(panels))

	for i := range panels {
		view, err := r.render(ctx, &panels[i])
		if err != nil {
			return nil, err
		}
		page.Panels = append(page.Panels, *view)
	}

	page.Duration = time.Since(start)
	metrics.DashboardRenderDuration.Observe(page.Duration.Seconds())

	if failed := page.Failed(); len(failed) > 0 {
		logging.Ctx(ctx).Warn().Strs("failed_panels", failed).Dur("duration", page.Duration).Msg("Dashboard rendered with failed panels")
	} else {
		logging.Ctx(ctx).Debug().Int("panels", len(page.Panels)).Dur("duration", page.Duration).Msg("Dashboard rendered")
	}
	return page, nil
}

// RenderPanel renders a single panel.
func (r *Renderer) RenderPanel(ctx context.Context, id string) (*PanelView, error) {
	p, ok := r.catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}
	return r.render(ctx, &p)
}

// WarmReport summarises a Warm pass.
type WarmReport struct {
	Panels   int
	Failed   []string
	Duration time.Duration
}

// Warm loads every panel so that the next render is served from cache.
// Panel failures are reported, not returned; only fatal errors are.
func (r *Renderer) Warm(ctx context.Context) (*WarmReport, error) {
	start := time.Now()
	report := &WarmReport{}

	panels := r.catalog.Panels()
	for i := range panels {
		view, err := r.build(ctx, &panels[i])
		metrics.RecordPanelRender(panels[i].ID, err)
		report.Panels++
		if err != nil {
			if query.IsFatal(err) || ctx.Err() != nil {
				return nil, err
			}
			logging.Ctx(ctx).Warn().Err(err).Str("panel", panels[i].ID).Msg("Cache warm failed for panel")
			report.Failed = append(report.Failed, view.ID)
		}
	}

	report.Duration = time.Since(start)
	return report, nil
}

// render builds one panel and applies the error policy.
func (r *Renderer) render(ctx context.Context, p *catalog.Panel) (*PanelView, error) {
	view, err := r.build(ctx, p)
	metrics.RecordPanelRender(p.ID, err)
	if err == nil {
		return view, nil
	}

	if query.IsFatal(err) {
		return nil, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if r.policy == config.PanelErrorAbort {
		return nil, fmt.Errorf("panel %s: %w", p.ID, err)
	}

	logging.Ctx(ctx).Error().Err(err).Str("panel", p.ID).Msg("Panel failed")
	view.Error = &PanelError{Message: userMessage(err)}
	return view, nil
}

// build returns a view even on error so the caller can attach the failure.
func (r *Renderer) build(ctx context.Context, p *catalog.Panel) (*PanelView, error) {
	view := &PanelView{
		ID:         p.ID,
		Title:      p.Title,
		Subheading: p.Subheading,
		Kind:       p.Kind,
	}

	res, err := r.loader.Load(ctx, p.SQL)
	if err != nil {
		return view, err
	}
	view.FetchedAt = res.FetchedAt

	if p.Reshape != nil {
		if res, err = p.Reshape.Reshape(res); err != nil {
			return view, &LayoutError{Panel: p.ID, Err: err}
		}
	}

	switch {
	case p.Kind == catalog.KindMetricRow:
		cards, err := r.metricCards(p, res)
		if err != nil {
			return view, &LayoutError{Panel: p.ID, Err: err}
		}
		view.Metrics = cards
	case p.Kind.IsChart():
		spec, err := chart.Build(p, res)
		if err != nil {
			return view, &LayoutError{Panel: p.ID, Err: err}
		}
		view.Chart = spec
	default:
		view.Table = &TableView{Columns: res.ColumnNames(), Rows: res.Rows}
	}

	return view, nil
}

func (r *Renderer) metricCards(p *catalog.Panel, res *query.Result) ([]MetricView, error) {
	if res.Len() == 0 {
		return nil, errors.New("metric query returned no rows")
	}

	cards := make([]MetricView, 0, len(p.Metrics))
	for _, m := range p.Metrics {
		if !res.HasColumn(m.Column) {
			return nil, fmt.Errorf("result has no column %s", m.Column)
		}
		raw := res.Value(0, m.Column)
		value, err := r.format.Metric(raw, m.Format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.Column, err)
		}
		cards = append(cards, MetricView{Label: m.Label, Value: value, Raw: raw})
	}
	return cards, nil
}

// LayoutError reports a result that does not fit its panel, usually after
// a warehouse column was renamed.
type LayoutError struct {
	Panel string
	Err   error
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("panel %s layout: %v", e.Panel, e.Err)
}

func (e *LayoutError) Unwrap() error {
	return e.Err
}

// userMessage maps a panel failure to text safe to show a viewer.
func userMessage(err error) string {
	var layout *LayoutError
	switch {
	case errors.As(err, &layout):
		return "The data for this panel no longer matches its layout."
	case errors.Is(err, query.ErrTimeout):
		return "The query for this panel timed out."
	case errors.Is(err, query.ErrCircuitOpen):
		return "The warehouse is temporarily unavailable. Try again shortly."
	}

	var qe *query.QueryExecutionError
	if errors.As(err, &qe) && qe.Transient {
		return "The warehouse could not be reached for this panel."
	}
	return "The query for this panel failed."
}
