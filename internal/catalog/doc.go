// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package catalog defines the dashboard's panels: a fixed SQL query, an
// optional reshape and a presentation descriptor for each.
//
// Panels are independent and are rendered in catalog order. None of them
// takes parameters.
package catalog
