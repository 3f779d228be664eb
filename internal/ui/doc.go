// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package ui renders a dashboard.Page as a single HTML document using
// gomponents.
//
// Layout, top to bottom: the page title, a four column KPI row, then each
// chart or table panel preceded by a divider and its optional subheading.
// Chart panels embed their Vega-Lite document as application/json and are
// drawn in the browser by vega-embed. Failed panels show an inline
// placeholder in place of their content.
package ui
