package agents

import (
	"context"

	"github.com/shahidain/air-ticket-booking-ai-agent/models"
	"github.com/shahidain/air-ticket-booking-ai-agent/providers/openai"
)

// LLM is the language-model surface the agents depend on
type LLM interface {
	ChatCompletion(ctx context.Context, system, user string, temperature float64) (string, error)
	FormatResponse(ctx context.Context, data interface{}, instruction string, temperature float64) (string, error)
	GenerateWithTools(ctx context.Context, opts openai.GenerateOptions) (string, error)
}

// FlightProvider searches flight offers for a structured query
type FlightProvider interface {
	SearchFlights(ctx context.Context, query *models.SearchQuery) (*models.FlightSearchResult, error)
}

// Booker completes a booking for a selected offer
type Booker interface {
	BookFlight(ctx context.Context, offer *models.FlightOffer, passengers []models.PassengerInfo) (*models.BookingConfirmation, error)
}

// CityResolver maps an airport IATA code to the city it serves
type CityResolver interface {
	AirportCity(ctx context.Context, iataCode string) string
}

// CurrencyConverter converts amounts between currencies
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, from, to string) (float64, error)
}
