// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package services provides suture.Service wrappers for taxiboard components.

Each wrapper translates a component's lifecycle into suture's Serve pattern:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTPServerService wraps *http.Server. Cancellation triggers a graceful
Shutdown with a bounded timeout; http.ErrServerClosed is not a failure.

CacheRefreshService clears the query cache on a robfig/cron schedule and,
when given a warmer, reloads every panel at start and after each clear.
A failed warm-up is logged and never stops the service.

Both implement fmt.Stringer so supervisor events name them.
*/
package services
