// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package chart turns a panel's query result into a chart description.
//
// Build produces a Spec, a plain descriptor of mark, channel bindings and
// data rows that knows nothing about any particular charting library.
// VegaLite translates a Spec into a Vega-Lite v5 document, which the HTML
// front end hands to vega-embed. A different front end only needs its own
// translation from Spec.
package chart
