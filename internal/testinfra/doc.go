// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

// Package testinfra provides an in-memory DuckDB warehouse with the same star
// schema as production for integration tests.
//
// The panel catalog is written in SQL that both Snowflake and DuckDB accept,
// so tests run the real queries end to end without network access:
//
//	db := testinfra.NewWarehouse(t, testinfra.ScenarioTrips())
//	provider := warehouse.New(&testinfra.WarehouseConfig,
//	    warehouse.WithOpenFunc(testinfra.OpenFunc(db)))
//
// # Schema
//
//	FACT_TAXI_TRIPS(trip_id, vendor_key, payment_key, pickup_ts, dropoff_ts,
//	                passenger_count, trip_distance, tip_amount, total_amount)
//	DIM_VENDOR(vendor_key, vendor_name)
//	DIM_PAYMENT(payment_key, payment_type_desc)
package testinfra
