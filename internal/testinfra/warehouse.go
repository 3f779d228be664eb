// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package testinfra

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/taxiboard/internal/config"
)

// WarehouseConfig is a DuckDB configuration that passes credential checks.
var WarehouseConfig = config.WarehouseConfig{
	Driver:       config.DriverDuckDB,
	Path:         ":memory:",
	MaxOpenConns: 1,
}

// Trip is one FACT_TAXI_TRIPS row.
type Trip struct {
	VendorKey  int
	PaymentKey int
	Pickup     time.Time
	Dropoff    time.Time
	Passengers int
	Distance   float64
	Tip        float64
	Total      float64
}

var schema = []string{
	`CREATE TABLE DIM_VENDOR (
		vendor_key INTEGER PRIMARY KEY,
		vendor_name VARCHAR NOT NULL
	)`,
	`CREATE TABLE DIM_PAYMENT (
		payment_key INTEGER PRIMARY KEY,
		payment_type_desc VARCHAR NOT NULL
	)`,
	`CREATE TABLE FACT_TAXI_TRIPS (
		trip_id BIGINT PRIMARY KEY,
		vendor_key INTEGER,
		payment_key INTEGER,
		pickup_ts TIMESTAMP,
		dropoff_ts TIMESTAMP,
		passenger_count INTEGER,
		trip_distance DOUBLE,
		tip_amount DOUBLE,
		total_amount DOUBLE
	)`,
	`INSERT INTO DIM_VENDOR VALUES
		(1, 'Creative Mobile Technologies'),
		(2, 'VeriFone Inc.')`,
	`INSERT INTO DIM_PAYMENT VALUES
		(1, 'Credit card'),
		(2, 'Cash'),
		(3, 'No charge'),
		(4, 'Dispute')`,
}

// NewWarehouse creates an in-memory DuckDB database loaded with trips. It is
// closed when the test finishes.
func NewWarehouse(tb testing.TB, trips []Trip) *sql.DB {
	tb.Helper()
	return newWarehouse(tb, "", trips)
}

// NewWarehouseFile is NewWarehouse backed by a file in a temp directory,
// for code paths that open the warehouse by path. The handle is closed
// before the path is returned.
func NewWarehouseFile(tb testing.TB, trips []Trip) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "taxi.duckdb")
	db := newWarehouse(tb, path, trips)
	if err := db.Close(); err != nil {
		tb.Fatalf("close fixture warehouse: %v", err)
	}
	return path
}

func newWarehouse(tb testing.TB, dsn string, trips []Trip) *sql.DB {
	tb.Helper()

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		tb.Fatalf("open duckdb: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	// One connection keeps every statement on the same in-memory database.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			tb.Fatalf("create schema: %v", err)
		}
	}

	insert := `INSERT INTO FACT_TAXI_TRIPS VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, tr := range trips {
		if _, err := db.ExecContext(ctx, insert,
			int64(i+1), tr.VendorKey, tr.PaymentKey, tr.Pickup, tr.Dropoff,
			tr.Passengers, tr.Distance, tr.Tip, tr.Total,
		); err != nil {
			tb.Fatalf("insert trip %d: %v", i, err)
		}
	}

	return db
}

// OpenFunc returns an open function for warehouse.WithOpenFunc that hands
// out db.
func OpenFunc(db *sql.DB) func(context.Context, *config.WarehouseConfig) (*sql.DB, error) {
	return func(context.Context, *config.WarehouseConfig) (*sql.DB, error) {
		return db, nil
	}
}
