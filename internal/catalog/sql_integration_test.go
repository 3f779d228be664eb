// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/taxiboard/internal/cache"
	"github.com/tomtom215/taxiboard/internal/config"
	"github.com/tomtom215/taxiboard/internal/query"
	"github.com/tomtom215/taxiboard/internal/testinfra"
	"github.com/tomtom215/taxiboard/internal/warehouse"
)

// loadAll runs every default panel against an in-memory DuckDB warehouse.
func loadAll(t *testing.T, trips []testinfra.Trip) map[string]*query.Result {
	t.Helper()

	db := testinfra.NewWarehouse(t, trips)
	cfg := testinfra.WarehouseConfig
	provider := warehouse.New(&cfg, warehouse.WithOpenFunc(testinfra.OpenFunc(db)))
	store := cache.New(0)
	t.Cleanup(store.Close)
	exec := query.NewExecutor(provider, store, &config.QueryConfig{
		Timeout:             10 * time.Second,
		BreakerFailureRatio: 1,
		BreakerOpenTimeout:  time.Minute,
	})

	out := make(map[string]*query.Result)
	for _, p := range DefaultPanels() {
		res, err := exec.Load(context.Background(), p.SQL)
		if err != nil {
			t.Fatalf("panel %s: %v", p.ID, err)
		}
		if p.Reshape != nil {
			if res, err = p.Reshape.Reshape(res); err != nil {
				t.Fatalf("panel %s reshape: %v", p.ID, err)
			}
		}
		for _, col := range p.Columns() {
			if !res.HasColumn(col) {
				t.Errorf("panel %s: result has no column %s (have %v)", p.ID, col, res.ColumnNames())
			}
		}
		out[p.ID] = res
	}
	return out
}

func mustFloat(t *testing.T, r *query.Result, i int, col string) float64 {
	t.Helper()
	v, ok := r.Float64(i, col)
	if !ok {
		t.Fatalf("row %d column %s = %v (%T), not numeric", i, col, r.Value(i, col), r.Value(i, col))
	}
	return v
}

func TestScenarioKPIsAndTrend(t *testing.T) {
	t.Parallel()

	results := loadAll(t, testinfra.ScenarioTrips())

	kpis := results["kpis"]
	if kpis.Len() != 1 {
		t.Fatalf("kpi rows = %d", kpis.Len())
	}
	for col, want := range map[string]float64{
		"TOTAL_TRIPS":       3,
		"TOTAL_REVENUE":     60,
		"AVG_FARE":          20,
		"AVG_TRIP_DURATION": 11.67,
	} {
		if got := mustFloat(t, kpis, 0, col); got != want {
			t.Errorf("%s = %v, want %v", col, got, want)
		}
	}

	trend := results["trend"]
	if trend.Len() != 4 {
		t.Fatalf("trend rows = %d, want 2 dates x 2 metrics", trend.Len())
	}
	want := []struct {
		day    int
		metric string
		value  float64
	}{
		{1, "TRIPS", 2}, {1, "REVENUE", 30},
		{2, "TRIPS", 1}, {2, "REVENUE", 30},
	}
	for i, w := range want {
		day, ok := trend.Value(i, "TRIP_DATE").(time.Time)
		if !ok || day.Day() != w.day {
			t.Errorf("row %d TRIP_DATE = %v", i, trend.Value(i, "TRIP_DATE"))
		}
		if trend.Value(i, "METRIC") != w.metric {
			t.Errorf("row %d METRIC = %v, want %s", i, trend.Value(i, "METRIC"), w.metric)
		}
		if got := mustFloat(t, trend, i, "VALUE"); got != w.value {
			t.Errorf("row %d VALUE = %v, want %v", i, got, w.value)
		}
	}
}

func TestBucketPanelsRespectFilters(t *testing.T) {
	t.Parallel()

	results := loadAll(t, testinfra.EdgeTrips())

	distance := results["distance"]
	var distanceTrips float64
	for i := 0; i < distance.Len(); i++ {
		if b := mustFloat(t, distance, i, "DISTANCE_BUCKET"); b < 0 {
			t.Errorf("negative distance bucket %v", b)
		}
		distanceTrips += mustFloat(t, distance, i, "TRIPS")
	}
	if distanceTrips != 27 {
		t.Errorf("distance panel counted %v trips, want 27 (zero distance excluded)", distanceTrips)
	}

	tips := results["tips"]
	var tipTrips float64
	for i := 0; i < tips.Len(); i++ {
		if b := mustFloat(t, tips, i, "TIP_BUCKET"); b < 0 {
			t.Errorf("negative tip bucket %v", b)
		}
		tipTrips += mustFloat(t, tips, i, "TRIPS")
	}
	if tipTrips != 27 {
		t.Errorf("tip panel counted %v trips, want 27 (negative tip excluded)", tipTrips)
	}
	// 2.4 rounds to 2.
	found := false
	for i := 0; i < tips.Len(); i++ {
		if mustFloat(t, tips, i, "TIP_BUCKET") == 2 {
			found = true
		}
	}
	if !found {
		t.Error("expected a $2 tip bucket")
	}

	duration := results["duration"]
	buckets := map[float64]float64{}
	var durationTrips float64
	for i := 0; i < duration.Len(); i++ {
		b := mustFloat(t, duration, i, "DURATION_BUCKET")
		n := mustFloat(t, duration, i, "TRIPS")
		buckets[b] = n
		durationTrips += n
	}
	if durationTrips != 27 {
		t.Errorf("duration panel counted %v trips, want 27 (zero-length trip excluded)", durationTrips)
	}
	if buckets[10] != 1 {
		t.Errorf("13 minute trip should land in bucket 10, buckets = %v", buckets)
	}
	if buckets[5] != 1 {
		t.Errorf("7 minute trip should land in bucket 5, buckets = %v", buckets)
	}
	if buckets[30] != 25 {
		t.Errorf("30 minute trips should land in bucket 30, buckets = %v", buckets)
	}
}

func TestHighValuePanel(t *testing.T) {
	t.Parallel()

	hv := loadAll(t, testinfra.EdgeTrips())["high-value"]

	if hv.Len() != HighValueLimit {
		t.Fatalf("rows = %d, want %d", hv.Len(), HighValueLimit)
	}
	prev := mustFloat(t, hv, 0, "TOTAL_AMOUNT")
	if prev != 124 {
		t.Errorf("top trip = %v, want 124", prev)
	}
	for i := 1; i < hv.Len(); i++ {
		cur := mustFloat(t, hv, i, "TOTAL_AMOUNT")
		if cur > prev {
			t.Errorf("row %d (%v) is larger than row %d (%v)", i, cur, i-1, prev)
		}
		prev = cur
	}
	for _, col := range []string{"PICKUP_TS", "DROPOFF_TS", "PASSENGER_COUNT", "TRIP_DISTANCE", "TOTAL_AMOUNT"} {
		if !hv.HasColumn(col) {
			t.Errorf("missing column %s", col)
		}
	}
}

func TestHighValueTiesFollowTripOrder(t *testing.T) {
	t.Parallel()

	day := func(hour int) time.Time { return time.Date(2024, time.January, 5, hour, 0, 0, 0, time.UTC) }
	trip := func(hour int, total float64) testinfra.Trip {
		return testinfra.Trip{VendorKey: 1, PaymentKey: 1, Pickup: day(hour), Dropoff: day(hour).Add(10 * time.Minute), Passengers: 1, Distance: 1, Total: total}
	}
	// Inserted out of chronological order on purpose.
	hv := loadAll(t, []testinfra.Trip{trip(9, 50), trip(7, 80), trip(3, 50), trip(5, 50)})["high-value"]

	if hv.Len() != 4 {
		t.Fatalf("rows = %d, want 4", hv.Len())
	}
	if got := mustFloat(t, hv, 0, "TOTAL_AMOUNT"); got != 80 {
		t.Errorf("top trip = %v, want 80", got)
	}
	wantHours := []int{7, 3, 5, 9}
	for i, want := range wantHours {
		ts, ok := hv.Value(i, "PICKUP_TS").(time.Time)
		if !ok {
			t.Fatalf("row %d PICKUP_TS = %T, want time.Time", i, hv.Value(i, "PICKUP_TS"))
		}
		if ts.UTC().Hour() != want {
			t.Errorf("row %d pickup hour = %d, want %d", i, ts.UTC().Hour(), want)
		}
	}
}

func TestPickupHourAndJoins(t *testing.T) {
	t.Parallel()

	results := loadAll(t, testinfra.EdgeTrips())

	hours := results["pickup-hour"]
	for i := 0; i < hours.Len(); i++ {
		h := mustFloat(t, hours, i, "PICKUP_HOUR")
		if h < 0 || h > 23 {
			t.Errorf("hour %v out of range", h)
		}
		if i > 0 && h <= mustFloat(t, hours, i-1, "PICKUP_HOUR") {
			t.Error("hours must be ascending")
		}
	}

	vendor := results["vendor"]
	if vendor.Len() != 2 {
		t.Errorf("vendor rows = %d, want 2", vendor.Len())
	}
	payment := results["payment"]
	if payment.Len() != 4 {
		t.Errorf("payment rows = %d, want 4", payment.Len())
	}
}
