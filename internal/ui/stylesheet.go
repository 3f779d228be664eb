// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package ui

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; background: #fafafa; color: #262730; }
main { max-width: 1200px; margin: 0 auto; padding: 2rem 1rem; }
h1 { font-size: 2.2rem; margin: 0 0 1.5rem; }
hr { border: 0; border-top: 1px solid #e6e6e6; margin: 2rem 0; }
.kpis { display: grid; grid-template-columns: repeat(4, 1fr); gap: 1rem; }
.kpi-label { font-size: 0.9rem; color: #555; }
.kpi-value { font-size: 2rem; }
.chart { width: 100%; }
.panel-error { border: 1px solid #f5c2c7; background: #f8d7da; color: #842029; padding: 0.75rem 1rem; border-radius: 0.25rem; }
table { border-collapse: collapse; width: 100%; font-size: 0.9rem; }
th, td { border-bottom: 1px solid #e6e6e6; padding: 0.4rem 0.6rem; text-align: right; }
th { background: #f0f2f6; }
.muted { color: #777; font-size: 0.8rem; }
`
