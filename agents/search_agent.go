package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/models"
	"github.com/shahidain/air-ticket-booking-ai-agent/providers/openai"
	"github.com/shahidain/air-ticket-booking-ai-agent/tools"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

const searchSystemPrompt = `You are a flight booking assistant with access to airport lookup tools.

Your task:
1. Identify origin and destination cities from the user request
2. Use the 'get_primary_airport' tool to find IATA codes for both cities
3. Extract departure date and time (if specified)
4. Determine number of passengers and travel class (if specified)

Date handling:
- "today" = current date
- "tomorrow" = current date + 1 day
- "next Monday/Tuesday/etc" = next occurrence of that day
- Specific dates should be in YYYY-MM-DD format

Steps:
1. First, call get_primary_airport for the origin city
2. Then, call get_primary_airport for the destination city
3. After you have both IATA codes, respond with ONLY a JSON object (no markdown, no explanation)

CRITICAL: Your final response must be ONLY a JSON object with these exact fields:
{
  "origin_city": "City name",
  "origin_code": "IATA code from tool",
  "destination_city": "City name",
  "destination_code": "IATA code from tool",
  "departure_date": "YYYY-MM-DD",
  "departure_time": "HH:MM or null",
  "adults": 1,
  "travel_class": "ECONOMY"
}

Do not include any explanation, markdown formatting, or additional text. Return ONLY the JSON object.`

// SearchAgent is the first pipeline step: it parses the free-text
// request with the LLM (using airport lookup tools) and searches for
// flights on the requested date plus cheaper adjacent dates.
type SearchAgent struct {
	llm        LLM
	flights    FlightProvider
	registry   *tools.Registry
	maxResults int
	Now        func() time.Time
}

// NewSearchAgent creates the search agent with airport tools registered.
// maxResults caps the number of offers requested from the provider.
func NewSearchAgent(llm LLM, flights FlightProvider, maxResults int) *SearchAgent {
	if maxResults <= 0 {
		maxResults = 10
	}

	registry := tools.NewRegistry()
	tools.RegisterAirportTools(registry)

	return &SearchAgent{
		llm:        llm,
		flights:    flights,
		registry:   registry,
		maxResults: maxResults,
		Now:        time.Now,
	}
}

// Execute parses the request and runs the flight search
func (a *SearchAgent) Execute(ctx context.Context, state *workflow.State) error {
	parsed, err := a.parseRequest(ctx, state.UserPrompt)
	if err != nil {
		return fmt.Errorf("failed to understand request: %w", err)
	}
	log.Debugf(ctx, "Parsed request: %s -> %s on %s", parsed.OriginCode, parsed.DestinationCode, parsed.DepartureDate)

	query, err := buildSearchQuery(parsed, a.maxResults)
	if err != nil {
		return err
	}

	results, err := a.flights.SearchFlights(ctx, query)
	if err != nil {
		return fmt.Errorf("flight search failed: %w", err)
	}

	state.ParsedRequest = parsed
	state.Query = query
	state.Results = results

	log.Debugf(ctx, "Found %d flights for requested date, %d cheaper alternative dates",
		len(results.OriginalDateOffers), len(results.Alternatives))
	return nil
}

// parseRequest runs the bounded LLM tool-calling loop and decodes the
// final JSON answer.
func (a *SearchAgent) parseRequest(ctx context.Context, userPrompt string) (*workflow.ParsedRequest, error) {
	user := fmt.Sprintf("Current date: %s\n\nUser request: %s", a.Now().Format("2006-01-02"), userPrompt)

	var parsed workflow.ParsedRequest
	_, err := a.llm.GenerateWithTools(ctx, openai.GenerateOptions{
		System:        searchSystemPrompt,
		User:          user,
		Registry:      a.registry,
		MaxIterations: 10,
		Temperature:   0.3,
		Validate: func(content string) error {
			candidate, err := decodeParsedRequest(content)
			if err != nil {
				return err
			}
			parsed = *candidate
			return nil
		},
	})
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}

// decodeParsedRequest extracts and validates the parser's JSON answer
func decodeParsedRequest(content string) (*workflow.ParsedRequest, error) {
	raw, err := openai.ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var parsed workflow.ParsedRequest
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var missing []string
	if parsed.OriginCode == "" {
		missing = append(missing, "origin_code")
	}
	if parsed.DestinationCode == "" {
		missing = append(missing, "destination_code")
	}
	if parsed.DepartureDate == "" {
		missing = append(missing, "departure_date")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing values for: %s; use the airport lookup tools and provide all required fields",
			strings.Join(missing, ", "))
	}

	if parsed.Adults <= 0 {
		parsed.Adults = 1
	}
	if parsed.TravelClass == "" {
		parsed.TravelClass = "ECONOMY"
	}

	return &parsed, nil
}

// buildSearchQuery converts a parsed request into search parameters
func buildSearchQuery(parsed *workflow.ParsedRequest, maxResults int) (*models.SearchQuery, error) {
	if _, err := time.Parse("2006-01-02", parsed.DepartureDate); err != nil {
		return nil, fmt.Errorf("bad departure date %q: %w", parsed.DepartureDate, err)
	}

	departureTime := ""
	if parsed.DepartureTime != "" && !strings.EqualFold(parsed.DepartureTime, "null") {
		if _, err := time.Parse("15:04", parsed.DepartureTime); err == nil {
			departureTime = parsed.DepartureTime
		}
	}

	return &models.SearchQuery{
		Origin:        strings.ToUpper(parsed.OriginCode),
		Destination:   strings.ToUpper(parsed.DestinationCode),
		DepartureDate: parsed.DepartureDate,
		DepartureTime: departureTime,
		Adults:        parsed.Adults,
		TravelClass:   strings.ToUpper(parsed.TravelClass),
		MaxResults:    maxResults,
	}, nil
}
