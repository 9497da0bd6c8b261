package agents

import (
	"testing"

	"github.com/shahidain/air-ticket-booking-ai-agent/models"
	"github.com/stretchr/testify/assert"
)

func makeOffer(id string, price float64, departure, duration string, stops int, carrier string) models.FlightOffer {
	return models.FlightOffer{
		ID:       id,
		Price:    price,
		Currency: "USD",
		Segments: []models.FlightSegment{{
			DepartureAirport: "DEL",
			ArrivalAirport:   "BOM",
			DepartureTime:    "2026-09-15T" + departure + ":00",
			ArrivalTime:      "2026-09-15T23:59:00",
			CarrierName:      carrier,
			FlightNumber:     "XX100",
		}},
		TotalDuration: duration,
		Stops:         stops,
		BookingClass:  "ECONOMY",
	}
}

func TestDetectSortPreference(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"book me the cheapest flight to Mumbai", SortPriceLow},
		{"I want a business class seat", SortPriceHigh},
		{"early morning flight please", SortTimeEarly},
		{"something in the evening", SortTimeLate},
		{"fastest option from Delhi", SortDurationShort},
		{"non-stop to London", SortDirect},
		{"prefer Emirates", SortAirline},
		{"show me the best overall option", SortBestOverall},
		{"flight from Delhi to Mumbai tomorrow", SortPriceLow},
	}

	for _, tt := range tests {
		got := DetectSortPreference(tt.prompt)
		assert.Equal(t, tt.want, got.Type, "prompt: %s", tt.prompt)
	}
}

func TestDetectSortPreferenceDefaultIsMarked(t *testing.T) {
	got := DetectSortPreference("flight to Goa next week")
	assert.Equal(t, SortPriceLow, got.Type)
	assert.Contains(t, got.Description, "(default)")
}

func TestSortOffersPriceLow(t *testing.T) {
	offers := []models.FlightOffer{
		makeOffer("a", 500, "09:00", "2h 0m", 0, "Air India"),
		makeOffer("b", 300, "11:00", "2h 15m", 0, "IndiGo"),
		makeOffer("c", 700, "07:00", "1h 50m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortPriceLow})

	assert.Equal(t, []string{"b", "a", "c"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	// Input slice is untouched
	assert.Equal(t, "a", offers[0].ID)
}

func TestSortOffersPriceHigh(t *testing.T) {
	offers := []models.FlightOffer{
		makeOffer("a", 500, "09:00", "2h 0m", 0, "Air India"),
		makeOffer("b", 300, "11:00", "2h 15m", 0, "IndiGo"),
		makeOffer("c", 700, "07:00", "1h 50m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortPriceHigh})
	assert.Equal(t, "c", sorted[0].ID)
	assert.Equal(t, "b", sorted[2].ID)
}

func TestSortOffersTimeEarly(t *testing.T) {
	offers := []models.FlightOffer{
		makeOffer("a", 500, "14:30", "2h 0m", 0, "Air India"),
		makeOffer("b", 300, "06:15", "2h 15m", 0, "IndiGo"),
		makeOffer("c", 700, "09:45", "1h 50m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortTimeEarly})
	assert.Equal(t, []string{"b", "c", "a"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})

	late := SortOffers(offers, SortPreference{Type: SortTimeLate})
	assert.Equal(t, "a", late[0].ID)
}

func TestSortOffersDurationShort(t *testing.T) {
	offers := []models.FlightOffer{
		makeOffer("a", 500, "09:00", "5h 0m", 1, "Air India"),
		makeOffer("b", 300, "11:00", "2h 30m", 0, "IndiGo"),
		makeOffer("c", 700, "07:00", "3h 15m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortDurationShort})
	assert.Equal(t, []string{"b", "c", "a"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSortOffersDirect(t *testing.T) {
	offers := []models.FlightOffer{
		makeOffer("a", 200, "09:00", "6h 0m", 2, "Air India"),
		makeOffer("b", 500, "11:00", "2h 30m", 0, "IndiGo"),
		makeOffer("c", 400, "07:00", "2h 45m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortDirect})

	// Direct flights first, price breaks the tie
	assert.Equal(t, []string{"c", "b", "a"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSortOffersStability(t *testing.T) {
	offers := []models.FlightOffer{
		makeOffer("first", 300, "09:00", "2h 0m", 0, "Air India"),
		makeOffer("second", 300, "11:00", "2h 0m", 0, "IndiGo"),
		makeOffer("third", 300, "07:00", "2h 0m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortPriceLow})

	// Equal prices keep their original order
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
}

func TestSortOffersBestOverall(t *testing.T) {
	offers := []models.FlightOffer{
		makeOffer("pricey-direct", 900, "09:00", "2h 0m", 0, "Air India"),
		makeOffer("cheap-slow", 300, "11:00", "8h 0m", 2, "IndiGo"),
		makeOffer("balanced", 450, "07:00", "3h 0m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortBestOverall})
	assert.Equal(t, "balanced", sorted[0].ID)
}

func TestSortOffersBestOverallUniformSet(t *testing.T) {
	// Identical price and duration must not panic or divide by zero
	offers := []models.FlightOffer{
		makeOffer("a", 400, "09:00", "2h 0m", 0, "Air India"),
		makeOffer("b", 400, "11:00", "2h 0m", 1, "IndiGo"),
		makeOffer("c", 400, "07:00", "2h 0m", 0, "Vistara"),
	}

	sorted := SortOffers(offers, SortPreference{Type: SortBestOverall})
	assert.Len(t, sorted, 3)
	// Only stops differentiate; the 1-stop offer goes last
	assert.Equal(t, "b", sorted[2].ID)
}

func TestSortOffersEmpty(t *testing.T) {
	sorted := SortOffers(nil, SortPreference{Type: SortPriceLow})
	assert.Empty(t, sorted)
}
