// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package api

import (
	"context"
	"time"

	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/query"
)

// CacheController is the part of the query executor the cache endpoints use.
// *query.Executor satisfies it.
type CacheController interface {
	Invalidate(sqlText string) bool
	InvalidateAll(reason string) int
	Stats() query.Stats
}

// HealthChecker reports warehouse reachability. *warehouse.Provider
// satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Connected() bool
	Target() string
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_dashboard.go: HTML page, JSON page, panels
//   - handlers_cache.go: cache statistics and invalidation
//   - handlers_health.go: liveness and readiness probes
type Handler struct {
	renderer  *dashboard.Renderer
	cache     CacheController
	health    HealthChecker
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(renderer *dashboard.Renderer, cache CacheController, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		renderer:  renderer,
		cache:     cache,
		health:    health,
		config:    cfg,
		startTime: time.Now(),
	}
}
