// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

/*
Package query executes fixed SQL text against the warehouse and caches the
materialised results.

The cache key is the exact query string. A hit returns the stored *Result
without a warehouse round-trip and without any staleness check; results only
leave the cache through TTL expiry, Invalidate or InvalidateAll.

On a miss, concurrent callers asking for the same text share one execution
(golang.org/x/sync/singleflight). Each execution:

  - waits for the rate limiter (golang.org/x/time/rate)
  - borrows the shared handle from the Connector
  - runs through a circuit breaker (sony/gobreaker) under a per-query timeout
  - is retried with exponential backoff only when the failure is transient

Configuration and authentication errors are returned unchanged so the caller
can abort the render pass. Every other failure is a *QueryExecutionError.

Callers never pass arguments: query text comes from the panel catalog and is
executed verbatim.
*/
package query
