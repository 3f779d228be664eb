// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/taxiboard/internal/logging"
)

const readinessTimeout = 5 * time.Second

// LivenessResponse is returned by the liveness probe.
type LivenessResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadinessResponse is returned by the readiness probe.
type ReadinessResponse struct {
	Ready     bool   `json:"ready"`
	Target    string `json:"target"`
	Connected bool   `json:"connected"`
}

// HealthLive reports that the process is serving requests. It never touches
// the warehouse.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, LivenessResponse{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady pings the warehouse. A failed ping answers 503 so that load
// balancers stop routing to this instance.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := ReadinessResponse{Target: h.health.Target()}
	if err := h.health.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		resp.Connected = h.health.Connected()
		NewResponseWriter(w, r).ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Warehouse unreachable", resp)
		return
	}

	resp.Ready = true
	resp.Connected = true
	WriteSuccess(w, r, resp)
}
