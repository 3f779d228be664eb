// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/chart"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/ui"
	"github.com/tomtom215/taxiboard/internal/validation"
)

// PanelRequest is the path parameter of the single-panel endpoints.
type PanelRequest struct {
	ID string `validate:"required,panelid"`
}

// PanelSummary is one entry of the catalog listing.
type PanelSummary struct {
	ID         string       `json:"id"`
	Label      string       `json:"label"`
	Title      string       `json:"title,omitempty"`
	Subheading string       `json:"subheading,omitempty"`
	Kind       catalog.Kind `json:"kind"`
}

// PanelResponse is a rendered panel with its chart in Vega-Lite form.
type PanelResponse struct {
	dashboard.PanelView
	Chart map[string]any `json:"chart,omitempty"`
}

// DashboardResponse is a full render pass.
type DashboardResponse struct {
	Title      string          `json:"title"`
	Panels     []PanelResponse `json:"panels"`
	Failed     []string        `json:"failed,omitempty"`
	RenderedAt time.Time       `json:"rendered_at"`
	DurationMs int64           `json:"duration_ms"`
}

func panelResponse(v *dashboard.PanelView) PanelResponse {
	resp := PanelResponse{PanelView: *v}
	if v.Chart != nil {
		resp.Chart = chart.VegaLite(v.Chart)
	}
	return resp
}

// Index serves the HTML dashboard.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.renderer.Render(r.Context())
	if err != nil {
		status, _, _ := renderFailure(err)
		logging.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg("Dashboard render failed")
		ui.Render(w, status, ui.ErrorPage(h.config.Dashboard.Title, ui.ErrorMessage(status)))
		return
	}
	ui.Render(w, http.StatusOK, ui.DashboardPage(page, h.renderer.Formatter()))
}

// Dashboard returns every panel as JSON.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	page, err := h.renderer.Render(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	resp := DashboardResponse{
		Title:      page.Title,
		Panels:     make([]PanelResponse, len(page.Panels)),
		Failed:     page.Failed(),
		RenderedAt: page.RenderedAt,
		DurationMs: page.Duration.Milliseconds(),
	}
	for i := range page.Panels {
		resp.Panels[i] = panelResponse(&page.Panels[i])
	}
	WriteSuccess(w, r, resp)
}

// Panels lists the catalog without running any query.
func (h *Handler) Panels(w http.ResponseWriter, r *http.Request) {
	panels := h.renderer.Catalog().Panels()
	out := make([]PanelSummary, len(panels))
	for i := range panels {
		out[i] = PanelSummary{
			ID:         panels[i].ID,
			Label:      panels[i].Label(),
			Title:      panels[i].Title,
			Subheading: panels[i].Subheading,
			Kind:       panels[i].Kind,
		}
	}
	NewResponseWriter(w, r).List(out, len(out))
}

// Panel renders a single panel.
func (h *Handler) Panel(w http.ResponseWriter, r *http.Request) {
	req := PanelRequest{ID: chi.URLParam(r, "id")}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		NewResponseWriter(w, r).ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	view, err := h.renderer.RenderPanel(r.Context(), req.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	WriteSuccess(w, r, panelResponse(view))
}

// renderError logs the cause and writes a sanitized error response.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, message := renderFailure(err)
	event := logging.Ctx(r.Context()).Error()
	if errors.Is(err, dashboard.ErrUnknownPanel) {
		event = logging.Ctx(r.Context()).Debug()
	}
	event.Err(err).Int("status", status).Msg("Dashboard request failed")
	WriteError(w, r, status, code, message)
}
