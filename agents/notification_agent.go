package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

const confirmationMessageInstruction = `Write a short, warm booking confirmation
message for the traveller. Mention the PNR, the route and the departure date,
wish them a pleasant journey and keep it under 80 words. Plain text only.`

// NotificationAgent is the final pipeline step: it displays the ticket,
// generates a friendly confirmation message and simulates the email
// notification, then marks the workflow complete.
type NotificationAgent struct {
	llm      LLM
	prompter *Prompter
	now      func() time.Time
}

// NewNotificationAgent creates the notification agent
func NewNotificationAgent(llm LLM, prompter *Prompter) *NotificationAgent {
	return &NotificationAgent{llm: llm, prompter: prompter, now: time.Now}
}

// Execute shows the ticket and the simulated notifications
func (a *NotificationAgent) Execute(ctx context.Context, state *workflow.State) error {
	if state.Confirmation == nil {
		return fmt.Errorf("no booking confirmation to notify")
	}

	a.prompter.Printf("\n%s\n", strings.Repeat("=", 70))
	a.prompter.Println("BOOKING CONFIRMED!")
	a.prompter.Printf("%s\n", strings.Repeat("=", 70))

	if state.FormattedTicket != "" {
		a.prompter.Println("\n" + state.FormattedTicket)
	}

	message, err := a.confirmationMessage(ctx, state)
	if err != nil {
		log.Warnf(ctx, "Confirmation message generation failed: %v", err)
		message = fmt.Sprintf("Your booking %s is confirmed. Have a pleasant journey!",
			state.Confirmation.BookingReference)
	}
	a.prompter.Println("\n" + message)

	a.simulateEmail(state)

	state.Complete = true
	state.CompletedAt = a.now()
	log.Infof(ctx, "Workflow complete for PNR %s", state.Confirmation.BookingReference)
	return nil
}

func (a *NotificationAgent) confirmationMessage(ctx context.Context, state *workflow.State) (string, error) {
	data := map[string]interface{}{
		"pnr": state.Confirmation.BookingReference,
	}
	if state.ParsedRequest != nil {
		data["origin"] = state.ParsedRequest.OriginCity
		data["destination"] = state.ParsedRequest.DestinationCity
		data["departure_date"] = state.ParsedRequest.DepartureDate
	}
	return a.llm.FormatResponse(ctx, data, confirmationMessageInstruction, 0.7)
}

// simulateEmail prints the demo email notification. No mail is sent.
func (a *NotificationAgent) simulateEmail(state *workflow.State) {
	a.prompter.Printf("\n%s\n", strings.Repeat("-", 70))
	a.prompter.Println("EMAIL NOTIFICATION (simulated)")
	a.prompter.Printf("%s\n", strings.Repeat("-", 70))
	for _, p := range state.Passengers {
		a.prompter.Printf("  -> Sent e-ticket %s to %s (%s)\n",
			state.Confirmation.BookingReference, p.FullName(), p.Email)
	}
	a.prompter.Printf("%s\n", strings.Repeat("-", 70))
}
