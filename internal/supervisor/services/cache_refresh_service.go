// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package services

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/metrics"
)

// refreshReason labels scheduled invalidations in logs and metrics.
const refreshReason = "schedule"

// CacheInvalidator clears the query cache. *query.Executor satisfies it.
type CacheInvalidator interface {
	InvalidateAll(reason string) int
}

// CacheWarmer reloads every panel into the cache. *dashboard.Renderer
// satisfies it.
type CacheWarmer interface {
	Warm(ctx context.Context) (*dashboard.WarmReport, error)
}

// CacheRefreshService clears the query cache on a cron schedule. With a
// warmer it also reloads every panel once at start and after each clear, so
// viewers never pay for the cold queries.
type CacheRefreshService struct {
	cache    CacheInvalidator
	warmer   CacheWarmer
	schedule cron.Schedule
	name     string

	// mu serializes refreshes when a run overlaps the next firing.
	mu sync.Mutex
}

// NewCacheRefreshService creates the service. schedule may be nil to only
// warm at start; warmer may be nil to only clear.
func NewCacheRefreshService(cache CacheInvalidator, warmer CacheWarmer, schedule cron.Schedule) *CacheRefreshService {
	return &CacheRefreshService{
		cache:    cache,
		warmer:   warmer,
		schedule: schedule,
		name:     "cache-refresh",
	}
}

// Serve implements suture.Service.
func (s *CacheRefreshService) Serve(ctx context.Context) error {
	s.warm(ctx)

	if s.schedule == nil {
		<-ctx.Done()
		return ctx.Err()
	}

	c := cron.New()
	c.Schedule(s.schedule, cron.FuncJob(func() { s.Refresh(ctx) }))
	c.Start()
	logging.Info().Msg("Cache refresh scheduler started")

	<-ctx.Done()

	// Wait for a running refresh to observe cancellation and return.
	<-c.Stop().Done()
	logging.Info().Msg("Cache refresh scheduler stopped")
	return ctx.Err()
}

// Refresh clears the cache and, with a warmer, reloads every panel.
func (s *CacheRefreshService) Refresh(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.cache.InvalidateAll(refreshReason)
	logging.Info().Int("entries", n).Msg("Scheduled cache refresh")
	metrics.CacheRefreshes.WithLabelValues(s.warmLocked(ctx)).Inc()
}

func (s *CacheRefreshService) warm(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warmLocked(ctx)
}

// warmLocked returns the outcome label recorded for a refresh run.
func (s *CacheRefreshService) warmLocked(ctx context.Context) string {
	if s.warmer == nil {
		return "cleared"
	}
	if ctx.Err() != nil {
		return "canceled"
	}

	report, err := s.warmer.Warm(ctx)
	if err != nil {
		// The server keeps running; the next viewer sees the error page.
		logging.Error().Err(err).Msg("Cache warm-up aborted")
		return "error"
	}
	if len(report.Failed) > 0 {
		logging.Warn().Strs("failed", report.Failed).Int("panels", report.Panels).Dur("duration", report.Duration).Msg("Cache warmed with failures")
		return "partial"
	}
	logging.Info().Int("panels", report.Panels).Dur("duration", report.Duration).Msg("Cache warmed")
	return "ok"
}

// String identifies the service in supervisor logs.
func (s *CacheRefreshService) String() string {
	return s.name
}
