package agents

import (
	"context"
	"fmt"

	"github.com/shahidain/air-ticket-booking-ai-agent/config"
	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/models"
	"github.com/shahidain/air-ticket-booking-ai-agent/tools"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

const ticketFormatInstruction = `Format this flight booking as a clean, professional e-ticket.
Include PNR, passenger names, full flight details (carrier, flight numbers,
departure and arrival airports with times, duration, stops, class) and the
price breakdown with base fare, GST and total in the display currency.
Use plain text with clear sections separated by lines of '=' characters.
Do not invent any details not present in the data.`

// TicketAgent is the fourth pipeline step: it computes the price
// breakdown (optional currency conversion plus GST) and renders the
// e-ticket through the LLM.
type TicketAgent struct {
	llm       LLM
	converter CurrencyConverter
	pricing   config.PricingConfig
}

// NewTicketAgent creates the ticket agent
func NewTicketAgent(llm LLM, converter CurrencyConverter, pricing config.PricingConfig) *TicketAgent {
	return &TicketAgent{llm: llm, converter: converter, pricing: pricing}
}

// Execute computes the breakdown and formats the ticket
func (a *TicketAgent) Execute(ctx context.Context, state *workflow.State) error {
	if state.Confirmation == nil {
		return fmt.Errorf("no booking confirmation to ticket")
	}

	breakdown := a.ComputeBreakdown(ctx, state.Confirmation.TotalPrice, state.Confirmation.Currency)
	state.Breakdown = &breakdown

	ticketData := map[string]interface{}{
		"booking":    state.Confirmation,
		"passengers": state.Passengers,
		"flight":     state.SelectedOffer,
		"pricing":    breakdown,
	}

	ticket, err := a.llm.FormatResponse(ctx, ticketData, ticketFormatInstruction, 0.5)
	if err != nil {
		log.Warnf(ctx, "LLM ticket formatting failed, using plain fallback: %v", err)
		ticket = a.plainTicket(state)
	}
	state.FormattedTicket = ticket

	log.Infof(ctx, "Ticket generated for PNR %s (total %s)", state.Confirmation.BookingReference,
		tools.FormatPrice(breakdown.Total, breakdown.Currency))
	return nil
}

// ComputeBreakdown converts the fare to the display currency when enabled
// and applies GST on top. Conversion failures fall back to the original
// currency rather than aborting the booking. Base, GST and total are each
// rounded independently to two decimals.
func (a *TicketAgent) ComputeBreakdown(ctx context.Context, amount float64, fromCurrency string) models.PriceBreakdown {
	base := amount
	displayCurrency := fromCurrency
	converted := false

	if a.pricing.ConvertCurrency && a.converter != nil && fromCurrency != a.pricing.DisplayCurrency {
		value, err := a.converter.Convert(ctx, amount, fromCurrency, a.pricing.DisplayCurrency)
		if err != nil {
			log.Warnf(ctx, "Currency conversion %s -> %s failed, keeping original: %v",
				fromCurrency, a.pricing.DisplayCurrency, err)
		} else {
			base = value
			displayCurrency = a.pricing.DisplayCurrency
			converted = true
		}
	}

	base = tools.Round2(base)
	gst := tools.Round2(base * a.pricing.GSTRate / 100)
	total := tools.Round2(base + gst)

	return models.PriceBreakdown{
		Base:      base,
		GSTRate:   a.pricing.GSTRate,
		GST:       gst,
		Total:     total,
		Currency:  displayCurrency,
		Converted: converted,
	}
}

// plainTicket renders a minimal ticket without the LLM
func (a *TicketAgent) plainTicket(state *workflow.State) string {
	c := state.Confirmation
	b := state.Breakdown

	names := make([]string, 0, len(state.Passengers))
	for _, p := range state.Passengers {
		names = append(names, p.FullName())
	}

	return fmt.Sprintf(`==================================================
ELECTRONIC TICKET
==================================================
PNR: %s
Status: %s
Passengers: %v
--------------------------------------------------
Base Fare: %s
GST (%.1f%%): %s
Total: %s
==================================================`,
		c.BookingReference, c.Status, names,
		tools.FormatPrice(b.Base, b.Currency),
		b.GSTRate,
		tools.FormatPrice(b.GST, b.Currency),
		tools.FormatPrice(b.Total, b.Currency))
}
