// Package workflow sequences the booking agents: a fixed-order pipeline
// over one shared state record, with user cancellation as a distinguished
// outcome rather than a failure.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/models"
)

// ErrCancelled is returned when the user aborts the run at a prompt.
// It propagates through every step and is handled by the caller as a
// clean abort, not an error.
var ErrCancelled = errors.New("booking cancelled by user")

// State is the mutable record threaded through all pipeline steps. Each
// step adds its own fields; fields written by earlier steps are never
// removed.
type State struct {
	UserPrompt string

	// Search agent outputs
	ParsedRequest *ParsedRequest
	Query         *models.SearchQuery
	Results       *models.FlightSearchResult

	// Presentation agent outputs
	Presentation    string
	SelectedOffer   *models.FlightOffer
	SelectionNumber int

	// Booking agent outputs
	Passengers   []models.PassengerInfo
	Confirmation *models.BookingConfirmation

	// Ticket agent outputs
	Breakdown       *models.PriceBreakdown
	FormattedTicket string

	// Notification agent outputs
	Complete    bool
	CompletedAt time.Time

	// Messages is an append-only progress log for debugging
	Messages []string
}

// ParsedRequest is the structured interpretation of the user's free-text
// request produced by the search agent.
type ParsedRequest struct {
	OriginCity      string `json:"origin_city"`
	OriginCode      string `json:"origin_code"`
	DestinationCity string `json:"destination_city"`
	DestinationCode string `json:"destination_code"`
	DepartureDate   string `json:"departure_date"`
	DepartureTime   string `json:"departure_time,omitempty"`
	Adults          int    `json:"adults"`
	TravelClass     string `json:"travel_class"`
}

// AddMessage appends a progress note to the state log
func (s *State) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)
}

// Step is one named stage in the pipeline
type Step struct {
	Name string
	Run  func(ctx context.Context, state *State) error
}

// Pipeline executes its steps strictly in order over a shared state
type Pipeline struct {
	steps []Step
}

// New creates a pipeline from the given ordered steps
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes every step in order. The first failing step aborts the
// run and its error is surfaced unmodified; there is no step-level retry.
func (p *Pipeline) Run(ctx context.Context, userPrompt string) (*State, error) {
	state := &State{UserPrompt: userPrompt}
	state.AddMessage("Workflow started")

	for _, step := range p.steps {
		log.Infof(ctx, "Executing %s step...", step.Name)

		if err := step.Run(ctx, state); err != nil {
			if errors.Is(err, ErrCancelled) {
				log.Infof(ctx, "Workflow cancelled by user during %s step", step.Name)
				return state, err
			}
			log.Errorf(ctx, "%s step failed: %v", step.Name, err)
			return state, fmt.Errorf("%s step: %w", step.Name, err)
		}

		state.AddMessage(step.Name + " completed")
	}

	return state, nil
}
