// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package cache provides the in-memory store behind the query executor.

Entries are keyed by the exact string the caller supplies; for the dashboard
that is the literal SQL text of a panel, so two panels sharing a query share
one entry and a single changed character produces a separate entry.

# Expiry

By default (ttl <= 0) an entry lives until the process exits or until it is
removed explicitly with Delete or Clear. A positive ttl turns on time-based
invalidation: Get treats older entries as misses and a background sweep drops
them every five minutes.

	c := cache.New(0)              // process lifetime
	c := cache.New(15 * time.Minute) // refreshed at most every 15 minutes
	defer c.Close()

# Thread Safety

All methods are safe for concurrent use. Writers for the same key race with
last-writer-wins semantics.

# Statistics

GetStats and HitRate expose hit, miss and eviction counts for the
/api/v1/cache/stats endpoint and Prometheus gauges.
*/
package cache
