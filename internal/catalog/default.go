// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package catalog

// The queries below use only syntax that Snowflake and DuckDB both accept,
// so the same catalog runs against production and a local DuckDB file.

const kpiSQL = `
SELECT
    COUNT(*) AS TOTAL_TRIPS,
    ROUND(SUM(total_amount), 2) AS TOTAL_REVENUE,
    ROUND(AVG(total_amount), 2) AS AVG_FARE,
    ROUND(AVG(DATEDIFF('minute', pickup_ts, dropoff_ts)), 2) AS AVG_TRIP_DURATION
FROM FACT_TAXI_TRIPS
`

const trendSQL = `
SELECT
    CAST(pickup_ts AS DATE) AS TRIP_DATE,
    COUNT(*) AS TRIPS,
    SUM(total_amount) AS REVENUE
FROM FACT_TAXI_TRIPS
GROUP BY TRIP_DATE
ORDER BY TRIP_DATE
`

const pickupHourSQL = `
SELECT
    EXTRACT(HOUR FROM pickup_ts) AS PICKUP_HOUR,
    COUNT(*) AS TRIPS
FROM FACT_TAXI_TRIPS
GROUP BY PICKUP_HOUR
ORDER BY PICKUP_HOUR
`

const vendorSQL = `
SELECT
    dv.vendor_name AS VENDOR,
    COUNT(*) AS TRIPS,
    ROUND(SUM(f.total_amount), 2) AS REVENUE
FROM FACT_TAXI_TRIPS f
JOIN DIM_VENDOR dv
  ON f.vendor_key = dv.vendor_key
GROUP BY dv.vendor_name
`

const paymentSQL = `
SELECT
    dp.payment_type_desc AS PAYMENT_TYPE,
    COUNT(*) AS TRIPS,
    ROUND(SUM(f.total_amount), 2) AS REVENUE,
    ROUND(AVG(f.total_amount), 2) AS AVG_FARE
FROM FACT_TAXI_TRIPS f
JOIN DIM_PAYMENT dp
  ON f.payment_key = dp.payment_key
GROUP BY dp.payment_type_desc
`

const passengerSQL = `
SELECT
    passenger_count AS PASSENGERS,
    COUNT(*) AS TRIPS,
    ROUND(AVG(total_amount), 2) AS AVG_REVENUE
FROM FACT_TAXI_TRIPS
GROUP BY passenger_count
ORDER BY passenger_count
`

const distanceSQL = `
SELECT
    ROUND(trip_distance, 0) AS DISTANCE_BUCKET,
    COUNT(*) AS TRIPS,
    ROUND(AVG(total_amount), 2) AS AVG_REVENUE
FROM FACT_TAXI_TRIPS
WHERE trip_distance > 0
GROUP BY DISTANCE_BUCKET
ORDER BY DISTANCE_BUCKET
`

const tipSQL = `
SELECT
    ROUND(tip_amount, 0) AS TIP_BUCKET,
    COUNT(*) AS TRIPS
FROM FACT_TAXI_TRIPS
WHERE tip_amount >= 0
GROUP BY TIP_BUCKET
ORDER BY TIP_BUCKET
`

const durationSQL = `
SELECT
    FLOOR(DATEDIFF('minute', pickup_ts, dropoff_ts) / 5) * 5 AS DURATION_BUCKET,
    COUNT(*) AS TRIPS
FROM FACT_TAXI_TRIPS
WHERE dropoff_ts > pickup_ts
GROUP BY DURATION_BUCKET
ORDER BY DURATION_BUCKET
`

// Ties on total_amount fall back to trip order: pickup time, then dropoff
// time. Without the extra keys the warehouse may return ties differently on
// each run.
const highValueSQL = `
SELECT
    pickup_ts AS PICKUP_TS,
    dropoff_ts AS DROPOFF_TS,
    passenger_count AS PASSENGER_COUNT,
    trip_distance AS TRIP_DISTANCE,
    total_amount AS TOTAL_AMOUNT
FROM FACT_TAXI_TRIPS
ORDER BY total_amount DESC, pickup_ts, dropoff_ts
LIMIT 20
`

// HighValueLimit is the maximum number of rows in the high-value panel.
const HighValueLimit = 20

func trips() Binding { return Binding{Field: "TRIPS", Type: Quantitative, Title: "Trips"} }

// DefaultPanels returns the dashboard's panels in display order.
func DefaultPanels() []Panel {
	return []Panel{
		{
			ID:   "kpis",
			SQL:  kpiSQL,
			Kind: KindMetricRow,
			Metrics: []Metric{
				{Column: "TOTAL_TRIPS", Label: "Total Trips", Format: FormatCount},
				{Column: "TOTAL_REVENUE", Label: "Total Revenue ($)", Format: FormatCurrency},
				{Column: "AVG_FARE", Label: "Avg Fare ($)", Format: FormatDecimal},
				{Column: "AVG_TRIP_DURATION", Label: "Avg Trip Duration (min)", Format: FormatDecimal},
			},
		},
		{
			ID:    "trend",
			Title: "Trips & Revenue Over Time",
			SQL:   trendSQL,
			Kind:  KindLineChart,
			Reshape: Unpivot{
				IDColumn:     "TRIP_DATE",
				ValueColumns: []string{"TRIPS", "REVENUE"},
				NameColumn:   "METRIC",
				ValueColumn:  "VALUE",
			},
			Encoding: Encoding{
				X:     Binding{Field: "TRIP_DATE", Type: Temporal, Title: "Date"},
				Y:     Binding{Field: "VALUE", Type: Quantitative, Title: "Value"},
				Color: &Binding{Field: "METRIC", Type: Nominal},
			},
			Height: 350,
			Points: true,
		},
		{
			ID:    "pickup-hour",
			Title: "Trips by Pickup Hour",
			SQL:   pickupHourSQL,
			Kind:  KindBarChart,
			Encoding: Encoding{
				X:       Binding{Field: "PICKUP_HOUR", Type: Ordinal, Title: "Pickup Hour"},
				Y:       trips(),
				Tooltip: []Binding{trips()},
			},
			Height: 300,
		},
		{
			ID:    "vendor",
			Title: "Vendor Revenue Comparison",
			SQL:   vendorSQL,
			Kind:  KindBarChart,
			Encoding: Encoding{
				X: Binding{Field: "VENDOR", Type: Nominal, Title: "Vendor"},
				Y: Binding{Field: "REVENUE", Type: Quantitative, Title: "Revenue ($)"},
				Tooltip: []Binding{
					trips(),
					{Field: "REVENUE", Type: Quantitative, Title: "Revenue ($)"},
				},
			},
			Height: 300,
		},
		{
			ID:    "payment",
			Title: "Revenue by Payment Type",
			SQL:   paymentSQL,
			Kind:  KindBarChart,
			Encoding: Encoding{
				X: Binding{Field: "PAYMENT_TYPE", Type: Nominal, Title: "Payment Type"},
				Y: Binding{Field: "REVENUE", Type: Quantitative, Title: "Revenue ($)"},
				Tooltip: []Binding{
					trips(),
					{Field: "REVENUE", Type: Quantitative, Title: "Revenue ($)"},
					{Field: "AVG_FARE", Type: Quantitative, Title: "Avg Fare ($)"},
				},
			},
			Height: 300,
		},
		{
			ID:         "passengers",
			Subheading: "Passenger Behavior",
			SQL:        passengerSQL,
			Kind:       KindBarChart,
			Encoding: Encoding{
				X: Binding{Field: "PASSENGERS", Type: Ordinal, Title: "Passenger Count"},
				Y: trips(),
				Tooltip: []Binding{
					trips(),
					{Field: "AVG_REVENUE", Type: Quantitative, Title: "Avg Revenue"},
				},
			},
			Height: 300,
		},
		{
			ID:         "distance",
			Subheading: "Revenue vs Distance",
			SQL:        distanceSQL,
			Kind:       KindLineChart,
			Encoding: Encoding{
				X: Binding{Field: "DISTANCE_BUCKET", Type: Quantitative, Title: "Trip Distance (miles)"},
				Y: Binding{Field: "AVG_REVENUE", Type: Quantitative, Title: "Avg Revenue"},
				Tooltip: []Binding{
					trips(),
					{Field: "AVG_REVENUE", Type: Quantitative, Title: "Avg Revenue"},
				},
			},
			Height: 300,
			Points: true,
		},
		{
			ID:         "tips",
			Subheading: "Tip Analysis",
			SQL:        tipSQL,
			Kind:       KindBarChart,
			Encoding: Encoding{
				X:       Binding{Field: "TIP_BUCKET", Type: Quantitative, Title: "Tip Amount ($)"},
				Y:       trips(),
				Tooltip: []Binding{trips()},
			},
			Height: 300,
		},
		{
			ID:         "duration",
			Subheading: "Trip Duration Distribution",
			SQL:        durationSQL,
			Kind:       KindBarChart,
			Encoding: Encoding{
				X:       Binding{Field: "DURATION_BUCKET", Type: Quantitative, Title: "Duration (minutes)"},
				Y:       trips(),
				Tooltip: []Binding{trips()},
			},
			Height: 300,
		},
		{
			ID:         "high-value",
			Subheading: "High-Value Trips",
			SQL:        highValueSQL,
			Kind:       KindRawTable,
		},
	}
}

// Default returns the validated default catalog.
func Default() *Catalog {
	c, err := New(DefaultPanels()...)
	if err != nil {
		panic(err)
	}
	return c
}
