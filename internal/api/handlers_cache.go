// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package api

import (
	"net/http"

	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/validation"
)

// InvalidateResponse reports what a cache invalidation removed.
type InvalidateResponse struct {
	Invalidated int    `json:"invalidated"`
	Scope       string `json:"scope"`
}

// CacheStats returns query cache statistics.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.cache.Stats())
}

// CacheInvalidate drops cached results. With ?panel=<id> only that panel's
// query is dropped; otherwise the whole cache is cleared.
func (h *Handler) CacheInvalidate(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if !h.config.Cache.AllowManualInvalidation {
		rw.Forbidden("Manual cache invalidation is disabled")
		return
	}

	id := r.URL.Query().Get("panel")
	if id == "" {
		n := h.cache.InvalidateAll("manual")
		rw.Success(InvalidateResponse{Invalidated: n, Scope: "all"})
		return
	}

	req := PanelRequest{ID: id}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	p, ok := h.renderer.Catalog().Lookup(req.ID)
	if !ok {
		rw.NotFound("Panel not found")
		return
	}

	n := 0
	if h.cache.Invalidate(p.SQL) {
		n = 1
	}
	logging.Ctx(r.Context()).Info().Str("panel", p.ID).Int("invalidated", n).Msg("Panel cache invalidated")
	rw.Success(InvalidateResponse{Invalidated: n, Scope: p.ID})
}
