// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package dashboard renders the panel catalog into a presentation-neutral
// Page.
//
// A render pass walks the catalog in order and handles one panel at a time:
//
//  1. Load the panel's SQL through the query executor (cached).
//  2. Apply the panel's reshape, if any.
//  3. Build the view: formatted metric cards, a chart.Spec, or table rows.
//
// The renderer keeps no results of its own. Every pass asks the executor,
// which answers from its cache when it can.
//
// # Error Policy
//
// Configuration and authentication failures end the pass and are returned
// to the caller. Any other panel failure is, by default, attached to that
// panel's view as a PanelError with a message fit for the viewer, while the
// underlying cause goes to the log. With the "abort" policy the first panel
// failure ends the pass instead.
//
// The HTML (internal/ui), JSON (internal/api) and terminal
// (internal/textui) front ends all draw from the same Page.
package dashboard
