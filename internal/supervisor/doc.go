// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package supervisor runs the long-lived parts of the server under suture v4.

The tree has two layers so that a failing background job never takes the
HTTP server down with it:

	RootSupervisor ("taxiboard")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheRefreshService (if a refresh schedule or warm-up is configured)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Supervisor events are
logged through sutureslog, fed by the zerolog-backed slog handler from
internal/logging.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{})
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))
	tree.AddMaintenanceService(services.NewCacheRefreshService(executor, renderer, schedule))
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
