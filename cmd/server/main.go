// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/taxiboard/internal/api"
	"github.com/tomtom215/taxiboard/internal/cache"
	"github.com/tomtom215/taxiboard/internal/catalog"
	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/dashboard"
	"github.com/tomtom215/taxiboard/internal/logging"
	"github.com/tomtom215/taxiboard/internal/metrics"
	"github.com/tomtom215/taxiboard/internal/query"
	"github.com/tomtom215/taxiboard/internal/supervisor"
	"github.com/tomtom215/taxiboard/internal/supervisor/services"
	"github.com/tomtom215/taxiboard/internal/warehouse"
)

const shutdownTimeout = 10 * time.Second

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Config not yet available; the default logger is in place.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	provider := warehouse.New(&cfg.Warehouse)
	defer func() {
		if err := provider.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing warehouse connection")
		}
	}()

	metrics.AppInfo.WithLabelValues(Version, runtime.Version()).Set(1)
	logging.Info().
		Str("version", Version).
		Str("target", provider.Target()).
		Dur("cache_ttl", cfg.Cache.TTL).
		Str("refresh_schedule", cfg.Cache.RefreshSchedule).
		Str("panel_error_policy", cfg.Dashboard.PanelErrorPolicy).
		Msg("Starting taxiboard")

	store := cache.New(cfg.Cache.TTL)
	defer store.Close()

	executor := query.NewExecutor(provider, store, &cfg.Query)
	renderer := dashboard.NewRenderer(executor, catalog.Default(), &cfg.Dashboard)

	handler := api.NewHandler(renderer, executor, provider, cfg)
	router := api.NewRouter(handler, cfg)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		// Writes may wait on a cold render; chi's Timeout middleware bounds it.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: shutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if refresh := cacheRefreshService(cfg, executor, renderer); refresh != nil {
		tree.AddMaintenanceService(refresh)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// cacheRefreshService returns nil when neither a schedule nor warm-up is
// configured.
func cacheRefreshService(cfg *config.Config, executor *query.Executor, renderer *dashboard.Renderer) *services.CacheRefreshService {
	var schedule cron.Schedule
	if cfg.Cache.RefreshSchedule != "" {
		// Validated by config.Load.
		s, err := cron.ParseStandard(cfg.Cache.RefreshSchedule)
		if err != nil {
			logging.Fatal().Err(err).Msg("Invalid cache refresh schedule")
		}
		schedule = s
	}

	var warmer services.CacheWarmer
	if cfg.Cache.WarmOnStart {
		warmer = renderer
	}

	if schedule == nil && warmer == nil {
		return nil
	}
	return services.NewCacheRefreshService(executor, warmer, schedule)
}
