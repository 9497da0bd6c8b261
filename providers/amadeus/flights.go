package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"encoding/json"

	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/models"
)

// --- Wire structs for the flight-offers search response ---

type flightSearchResponse struct {
	Data         []flightOfferData `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

type flightOfferData struct {
	ID                    string          `json:"id"`
	NumberOfBookableSeats int             `json:"numberOfBookableSeats"`
	Itineraries           []itineraryData `json:"itineraries"`
	Price                 struct {
		Currency string `json:"currency"`
		Total    string `json:"total"`
	} `json:"price"`
	TravelerPricings []struct {
		FareDetailsBySegment []struct {
			Cabin string `json:"cabin"`
		} `json:"fareDetailsBySegment"`
	} `json:"travelerPricings"`
}

type itineraryData struct {
	Duration string        `json:"duration"`
	Segments []segmentData `json:"segments"`
}

type segmentData struct {
	Departure   flightEndPoint `json:"departure"`
	Arrival     flightEndPoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
	Duration string `json:"duration"`
}

type flightEndPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// SearchFlights searches offers for the requested date and then probes
// date-1 and date+1 for cheaper alternatives. An adjacent date is kept
// only when its cheapest offer is strictly below the requested date's
// cheapest offer; at most its 3 cheapest offers are recorded.
func (c *Client) SearchFlights(ctx context.Context, query *models.SearchQuery) (*models.FlightSearchResult, error) {
	log.Infof(ctx, "Searching flights from %s to %s on %s", query.Origin, query.Destination, query.DepartureDate)

	original, err := c.searchFlightsForDate(ctx, query, query.DepartureDate)
	if err != nil {
		return nil, err
	}

	alternatives := c.searchAlternativeDates(ctx, query, original)

	log.Infof(ctx, "Found %d flights for requested date, %d cheaper alternative dates",
		len(original), len(alternatives))

	return &models.FlightSearchResult{
		OriginalDateOffers: original,
		Alternatives:       alternatives,
	}, nil
}

// searchFlightsForDate fetches and parses offers for a single date
func (c *Client) searchFlightsForDate(ctx context.Context, query *models.SearchQuery, date string) ([]models.FlightOffer, error) {
	data := url.Values{}
	data.Set("originLocationCode", query.Origin)
	data.Set("destinationLocationCode", query.Destination)
	data.Set("departureDate", date)
	data.Set("adults", strconv.Itoa(query.Adults))
	data.Set("travelClass", query.TravelClass)
	data.Set("max", strconv.Itoa(query.MaxResults))

	endpoint := fmt.Sprintf("/v2/shopping/flight-offers?%s", data.Encode())
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flight search failed: %s", resp.Status)
	}

	var result flightSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode flight search response: %w", err)
	}

	var offers []models.FlightOffer
	for _, raw := range result.Data {
		offer, err := parseOffer(raw, result.Dictionaries.Carriers)
		if err != nil {
			// Malformed entries are dropped without failing the batch
			log.Warnf(ctx, "Skipping unparsable flight offer %s: %v", raw.ID, err)
			continue
		}
		offers = append(offers, offer)
	}

	return offers, nil
}

// searchAlternativeDates applies the ±1-day cheaper-alternative policy.
// Failures on adjacent dates are logged and skipped; they never fail the
// primary search.
func (c *Client) searchAlternativeDates(ctx context.Context, query *models.SearchQuery, original []models.FlightOffer) []models.AlternativeDateOffer {
	baseline, ok := models.CheapestPrice(original)
	if !ok {
		return nil
	}

	requested, err := time.Parse("2006-01-02", query.DepartureDate)
	if err != nil {
		log.Warnf(ctx, "Cannot derive alternative dates from %q: %v", query.DepartureDate, err)
		return nil
	}

	var alternatives []models.AlternativeDateOffer
	for _, offset := range []int{-1, 1} {
		altDate := requested.AddDate(0, 0, offset).Format("2006-01-02")

		altOffers, err := c.searchFlightsForDate(ctx, query, altDate)
		if err != nil {
			log.Warnf(ctx, "No flights found for %s: %v", altDate, err)
			continue
		}

		cheapest, ok := models.CheapestPrice(altOffers)
		if !ok || cheapest >= baseline {
			continue
		}

		alternatives = append(alternatives, models.AlternativeDateOffer{
			Date:            altDate,
			Offers:          cheapestN(altOffers, 3),
			PriceDifference: cheapest - baseline,
		})
	}

	return alternatives
}

// cheapestN returns the n cheapest offers, preserving input order on ties
func cheapestN(offers []models.FlightOffer, n int) []models.FlightOffer {
	sorted := make([]models.FlightOffer, len(offers))
	copy(sorted, offers)
	// Stable insertion keeps ties in input order
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].Price < sorted[j-1].Price; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// parseOffer maps a raw API offer into the domain model
func parseOffer(raw flightOfferData, carriers map[string]string) (models.FlightOffer, error) {
	price, err := strconv.ParseFloat(raw.Price.Total, 64)
	if err != nil {
		return models.FlightOffer{}, fmt.Errorf("bad price %q: %w", raw.Price.Total, err)
	}

	if len(raw.Itineraries) == 0 || len(raw.Itineraries[0].Segments) == 0 {
		return models.FlightOffer{}, fmt.Errorf("offer has no segments")
	}

	totalDuration := "0h 0m"
	var segments []models.FlightSegment
	for _, itin := range raw.Itineraries {
		totalDuration = FormatISODuration(itin.Duration)
		for _, seg := range itin.Segments {
			carrierName := seg.CarrierCode
			if name, ok := carriers[seg.CarrierCode]; ok {
				carrierName = name
			}
			segments = append(segments, models.FlightSegment{
				DepartureAirport: seg.Departure.IataCode,
				ArrivalAirport:   seg.Arrival.IataCode,
				DepartureTime:    seg.Departure.At,
				ArrivalTime:      seg.Arrival.At,
				Duration:         FormatISODuration(seg.Duration),
				CarrierCode:      seg.CarrierCode,
				CarrierName:      carrierName,
				FlightNumber:     seg.Number,
				Aircraft:         seg.Aircraft.Code,
			})
		}
	}

	bookingClass := "ECONOMY"
	if len(raw.TravelerPricings) > 0 && len(raw.TravelerPricings[0].FareDetailsBySegment) > 0 {
		bookingClass = raw.TravelerPricings[0].FareDetailsBySegment[0].Cabin
	}

	return models.FlightOffer{
		ID:             raw.ID,
		Price:          price,
		Currency:       raw.Price.Currency,
		Segments:       segments,
		TotalDuration:  totalDuration,
		Stops:          len(segments) - 1,
		BookingClass:   bookingClass,
		AvailableSeats: raw.NumberOfBookableSeats,
	}, nil
}

// FormatISODuration converts an ISO 8601 duration like "PT2H30M" into
// the display format "2h 30m". Unrecognized input is returned unchanged.
func FormatISODuration(iso string) string {
	if !strings.HasPrefix(iso, "PT") {
		return iso
	}
	rest := strings.TrimPrefix(iso, "PT")

	hours, minutes := 0, 0
	if idx := strings.Index(rest, "H"); idx >= 0 {
		n, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return iso
		}
		hours = n
		rest = rest[idx+1:]
	}
	if idx := strings.Index(rest, "M"); idx >= 0 {
		n, err := strconv.Atoi(rest[:idx])
		if err != nil {
			return iso
		}
		minutes = n
	}

	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// BookFlight simulates booking the given offer for the passengers.
// Real ticketing needs payment integration, so a local PNR is generated
// and the confirmation mirrors the selected offer's price.
func (c *Client) BookFlight(ctx context.Context, offer *models.FlightOffer, passengers []models.PassengerInfo) (*models.BookingConfirmation, error) {
	if offer == nil {
		return nil, fmt.Errorf("no flight offer selected")
	}
	if len(passengers) == 0 {
		return nil, fmt.Errorf("at least one passenger is required")
	}

	log.Infof(ctx, "Booking flight offer %s for %d passenger(s)", offer.ID, len(passengers))
	log.Warnf(ctx, "DEMO MODE: actual ticketing requires payment integration; returning simulated confirmation")

	now := c.Now()
	return &models.BookingConfirmation{
		BookingReference: "PNR" + now.Format("20060102150405"),
		Status:           "CONFIRMED",
		TotalPrice:       offer.Price,
		Currency:         offer.Currency,
		FlightOffer:      offer,
		Passengers:       passengers,
		BookingDate:      now,
	}, nil
}
