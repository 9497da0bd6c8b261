package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2h 30m", 150},
		{"1h 0m", 60},
		{"0h 45m", 45},
		{"5h 0m", 300},
		{"45m", 45},
		{"3h", 180},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationMinutes(tt.in), "input: %q", tt.in)
	}
}

func TestSegmentClocks(t *testing.T) {
	seg := FlightSegment{
		DepartureTime: "2026-09-15T06:45:00",
		ArrivalTime:   "2026-09-15T09:20:00",
	}
	assert.Equal(t, "06:45", seg.DepartureClock())
	assert.Equal(t, "09:20", seg.ArrivalClock())

	empty := FlightSegment{}
	assert.Equal(t, "", empty.DepartureClock())
}

func TestCarrierNames(t *testing.T) {
	offer := FlightOffer{
		Segments: []FlightSegment{
			{CarrierName: "IndiGo"},
			{CarrierName: "Air India"},
			{CarrierName: "IndiGo"},
		},
	}
	// Unique names, first-appearance order
	assert.Equal(t, "IndiGo, Air India", offer.CarrierNames())
}

func TestStopsMatchSegments(t *testing.T) {
	direct := FlightOffer{
		Segments: []FlightSegment{{DepartureAirport: "DEL", ArrivalAirport: "BOM"}},
		Stops:    0,
	}
	assert.Equal(t, len(direct.Segments)-1, direct.Stops)

	oneStop := FlightOffer{
		Segments: []FlightSegment{
			{DepartureAirport: "DEL", ArrivalAirport: "DXB"},
			{DepartureAirport: "DXB", ArrivalAirport: "LHR"},
		},
		Stops: 1,
	}
	assert.Equal(t, len(oneStop.Segments)-1, oneStop.Stops)
}

func TestCheapestPrice(t *testing.T) {
	offers := []FlightOffer{
		{ID: "a", Price: 450},
		{ID: "b", Price: 300},
		{ID: "c", Price: 700},
	}

	price, ok := CheapestPrice(offers)
	assert.True(t, ok)
	assert.Equal(t, 300.0, price)

	_, ok = CheapestPrice(nil)
	assert.False(t, ok)
}

func TestAlternativeDateOffer(t *testing.T) {
	alt := AlternativeDateOffer{
		Date: "2026-09-14",
		Offers: []FlightOffer{
			{ID: "x", Price: 420},
			{ID: "y", Price: 380},
		},
		PriceDifference: -70,
	}

	assert.Equal(t, "y", alt.Cheapest().ID)
	assert.Equal(t, "Monday", alt.Weekday())

	bad := AlternativeDateOffer{Date: "not-a-date"}
	assert.Equal(t, "", bad.Weekday())
}

func TestPassengerFullName(t *testing.T) {
	p := PassengerInfo{FirstName: "John", LastName: "Doe"}
	assert.Equal(t, "John Doe", p.FullName())
}
