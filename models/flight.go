// Package models holds the data types threaded through the booking
// pipeline: search queries, flight offers, passengers and confirmations.
package models

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SearchQuery holds the structured flight search parameters produced by
// the search agent. Immutable once created.
type SearchQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"` // YYYY-MM-DD
	DepartureTime string `json:"departure_time,omitempty"`
	Adults        int    `json:"adults"`
	TravelClass   string `json:"travel_class"`
	MaxResults    int    `json:"max_results"`
}

// FlightSegment is a single non-stop flown leg within an offer
type FlightSegment struct {
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	DepartureTime    string `json:"departure_time"` // YYYY-MM-DDTHH:MM:SS
	ArrivalTime      string `json:"arrival_time"`
	Duration         string `json:"duration"` // e.g. "2h 30m"
	CarrierCode      string `json:"carrier_code"`
	CarrierName      string `json:"carrier_name"`
	FlightNumber     string `json:"flight_number"`
	Aircraft         string `json:"aircraft,omitempty"`
}

// DepartureClock returns the HH:MM portion of the segment departure time
func (s FlightSegment) DepartureClock() string {
	if idx := strings.Index(s.DepartureTime, "T"); idx >= 0 && len(s.DepartureTime) >= idx+6 {
		return s.DepartureTime[idx+1 : idx+6]
	}
	return s.DepartureTime
}

// ArrivalClock returns the HH:MM portion of the segment arrival time
func (s FlightSegment) ArrivalClock() string {
	if idx := strings.Index(s.ArrivalTime, "T"); idx >= 0 && len(s.ArrivalTime) >= idx+6 {
		return s.ArrivalTime[idx+1 : idx+6]
	}
	return s.ArrivalTime
}

// FlightOffer is a priced, bookable combination of one or more segments.
// Invariant: Stops == len(Segments)-1, never negative.
type FlightOffer struct {
	ID             string          `json:"id"`
	Price          float64         `json:"price"`
	Currency       string          `json:"currency"`
	Segments       []FlightSegment `json:"segments"`
	TotalDuration  string          `json:"total_duration"`
	Stops          int             `json:"number_of_stops"`
	BookingClass   string          `json:"booking_class"`
	AvailableSeats int             `json:"available_seats,omitempty"`
}

// CarrierNames returns a comma-separated list of unique carrier names,
// in first-appearance order.
func (o FlightOffer) CarrierNames() string {
	seen := make(map[string]bool)
	var names []string
	for _, seg := range o.Segments {
		if !seen[seg.CarrierName] {
			seen[seg.CarrierName] = true
			names = append(names, seg.CarrierName)
		}
	}
	return strings.Join(names, ", ")
}

// DepartureClock returns the departure clock time of the first segment
func (o FlightOffer) DepartureClock() string {
	if len(o.Segments) == 0 {
		return "00:00"
	}
	return o.Segments[0].DepartureClock()
}

var durationPart = regexp.MustCompile(`(\d+)\s*([hm])`)

// DurationMinutes parses a duration like "5h 30m" into total minutes.
// Missing parts default to zero.
func DurationMinutes(duration string) int {
	total := 0
	for _, m := range durationPart.FindAllStringSubmatch(strings.ToLower(duration), -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if m[2] == "h" {
			total += n * 60
		} else {
			total += n
		}
	}
	return total
}

// DurationMinutes returns the offer's total journey time in minutes
func (o FlightOffer) DurationMinutes() int {
	return DurationMinutes(o.TotalDuration)
}

// AlternativeDateOffer holds cheaper offers found on an adjacent date.
// Invariant: PriceDifference < 0, since dates are only recorded when their
// cheapest offer beats the requested date's cheapest offer.
type AlternativeDateOffer struct {
	Date            string        `json:"date"` // YYYY-MM-DD
	Offers          []FlightOffer `json:"offers"`
	PriceDifference float64       `json:"price_difference"`
}

// Cheapest returns the lowest-priced offer for the alternative date
func (a AlternativeDateOffer) Cheapest() FlightOffer {
	best := a.Offers[0]
	for _, o := range a.Offers[1:] {
		if o.Price < best.Price {
			best = o
		}
	}
	return best
}

// Weekday returns the day name for the alternative date, or "" when the
// date does not parse.
func (a AlternativeDateOffer) Weekday() string {
	d, err := time.Parse("2006-01-02", a.Date)
	if err != nil {
		return ""
	}
	return d.Weekday().String()
}

// FlightSearchResult is the complete outcome of one search: offers for
// the requested date plus any cheaper adjacent-date alternatives.
type FlightSearchResult struct {
	OriginalDateOffers []FlightOffer          `json:"original_date_offers"`
	Alternatives       []AlternativeDateOffer `json:"alternative_offers"`
}

// CheapestPrice returns the lowest price among offers, or false when the
// list is empty.
func CheapestPrice(offers []FlightOffer) (float64, bool) {
	if len(offers) == 0 {
		return 0, false
	}
	prices := make([]float64, len(offers))
	for i, o := range offers {
		prices[i] = o.Price
	}
	sort.Float64s(prices)
	return prices[0], true
}

// PassengerInfo holds one traveler's booking details
type PassengerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"` // M or F
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	IDType    string `json:"id_type"` // AADHAAR, PASSPORT, DRIVING_LICENSE
	IDNumber  string `json:"id_number"`
}

// FullName returns the passenger's display name
func (p PassengerInfo) FullName() string {
	return p.FirstName + " " + p.LastName
}

// BookingConfirmation is created once by the booking agent and read-only
// afterwards.
type BookingConfirmation struct {
	BookingReference string          `json:"booking_reference"`
	Status           string          `json:"status"`
	TotalPrice       float64         `json:"total_price"`
	Currency         string          `json:"currency"`
	FlightOffer      *FlightOffer    `json:"flight_offer,omitempty"`
	Passengers       []PassengerInfo `json:"passengers"`
	BookingDate      time.Time       `json:"booking_date"`
}

// PriceBreakdown is the ticket-step price summary. Base, GST and Total
// are each rounded to two decimals independently.
type PriceBreakdown struct {
	Base     float64 `json:"base"`
	GSTRate  float64 `json:"gst_rate"`
	GST      float64 `json:"gst"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
	// Converted reports whether Base was converted from the booking
	// currency into a different display currency.
	Converted bool `json:"converted"`
}
