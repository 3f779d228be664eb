// Taxiboard - NYC Yellow Taxi Warehouse Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taxiboard

package testinfra

import "time"

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

// ScenarioTrips returns three trips whose dashboard figures are known:
// 3 trips, $60.00 revenue, $20.00 average fare, 11.67 minute average
// duration, and two trip dates with (2 trips, $30) and (1 trip, $30).
func ScenarioTrips() []Trip {
	return []Trip{
		{VendorKey: 1, PaymentKey: 1, Pickup: at(1, 0, 0), Dropoff: at(1, 0, 10), Passengers: 1, Distance: 1.2, Tip: 1, Total: 10},
		{VendorKey: 1, PaymentKey: 2, Pickup: at(1, 0, 0), Dropoff: at(1, 0, 20), Passengers: 2, Distance: 2.6, Tip: 0, Total: 20},
		{VendorKey: 2, PaymentKey: 1, Pickup: at(2, 0, 0), Dropoff: at(2, 0, 5), Passengers: 1, Distance: 0.8, Tip: 4.5, Total: 30},
	}
}

// EdgeTrips returns trips that exercise every bucket filter: a zero
// distance, a negative tip, a zero-length trip, a 13 minute trip and 25
// trips of increasing value for the top-value panel.
func EdgeTrips() []Trip {
	trips := []Trip{
		{VendorKey: 1, PaymentKey: 1, Pickup: at(3, 8, 0), Dropoff: at(3, 8, 13), Passengers: 1, Distance: 0, Tip: 2.4, Total: 15},
		{VendorKey: 2, PaymentKey: 4, Pickup: at(3, 9, 0), Dropoff: at(3, 9, 7), Passengers: 3, Distance: 1.5, Tip: -1, Total: 9},
		{VendorKey: 1, PaymentKey: 2, Pickup: at(3, 10, 0), Dropoff: at(3, 10, 0), Passengers: 2, Distance: 0.4, Tip: 0, Total: 3},
	}
	for i := 0; i < 25; i++ {
		trips = append(trips, Trip{
			VendorKey:  1 + i%2,
			PaymentKey: 1 + i%3,
			Pickup:     at(4, i%24, 0),
			Dropoff:    at(4, i%24, 30),
			Passengers: 1 + i%4,
			Distance:   float64(i) + 0.3,
			Tip:        float64(i % 5),
			Total:      float64(100 + i),
		})
	}
	return trips
}
