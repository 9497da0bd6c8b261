package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/shahidain/air-ticket-booking-ai-agent/agents"
	"github.com/shahidain/air-ticket-booking-ai-agent/cache"
	"github.com/shahidain/air-ticket-booking-ai-agent/config"
	"github.com/shahidain/air-ticket-booking-ai-agent/providers/amadeus"
	"github.com/shahidain/air-ticket-booking-ai-agent/providers/openai"
	"github.com/shahidain/air-ticket-booking-ai-agent/tools"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

// App holds the initialized components of the application
type App struct {
	Pipeline *workflow.Pipeline
	Prompter *agents.Prompter
	Amadeus  *amadeus.Client
	OpenAI   *openai.Client
}

// Setup initializes the application components based on the configuration
func Setup(_ context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	llm, err := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if err != nil {
		return nil, fmt.Errorf("openai client: %w", err)
	}

	flights, err := amadeus.NewClient(
		cfg.Amadeus.APIKey,
		cfg.Amadeus.APISecret,
		cfg.Amadeus.Production,
		cfg.Amadeus.TimeoutSec,
	)
	if err != nil {
		return nil, fmt.Errorf("amadeus client: %w", err)
	}

	converter := tools.NewConverter(cfg.Pricing.RateAPIBaseURL, cache.New())
	prompter := agents.NewPrompter(in, out)

	searchAgent := agents.NewSearchAgent(llm, flights, cfg.Amadeus.MaxResults)
	presentationAgent := agents.NewPresentationAgent(prompter, flights)
	bookingAgent := agents.NewBookingAgent(flights, prompter)
	ticketAgent := agents.NewTicketAgent(llm, converter, cfg.Pricing)
	notificationAgent := agents.NewNotificationAgent(llm, prompter)

	pipeline := workflow.New(
		workflow.Step{Name: "search", Run: searchAgent.Execute},
		workflow.Step{Name: "presentation", Run: presentationAgent.Execute},
		workflow.Step{Name: "selection", Run: presentationAgent.SelectOffer},
		workflow.Step{Name: "booking", Run: bookingAgent.Execute},
		workflow.Step{Name: "ticketing", Run: ticketAgent.Execute},
		workflow.Step{Name: "notification", Run: notificationAgent.Execute},
	)

	return &App{
		Pipeline: pipeline,
		Prompter: prompter,
		Amadeus:  flights,
		OpenAI:   llm,
	}, nil
}
