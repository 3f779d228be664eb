// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package cache

import "time"

// Cacher is the storage contract the query executor depends on.
// Cache satisfies it; tests may substitute their own.
type Cacher interface {
	// Get retrieves a value. Returns the value and true if present and not expired.
	Get(key string) (interface{}, bool)

	// Peek is Get without touching hit and miss statistics.
	Peek(key string) (interface{}, bool)

	// Set stores a value with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// Delete removes a value and reports whether it existed.
	Delete(key string) bool

	// Clear removes all entries and returns how many were dropped.
	Clear() int

	// Len returns the number of stored entries.
	Len() int

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64
}

var _ Cacher = (*Cache)(nil)
