package agents

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/models"
	"github.com/shahidain/air-ticket-booking-ai-agent/tools"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

// PresentationAgent is the second pipeline step: it ranks the offers by
// the preference detected in the request text, renders the results table
// and runs the interactive selection prompt.
type PresentationAgent struct {
	prompter *Prompter
	cities   CityResolver
}

// NewPresentationAgent creates the presentation agent. The city resolver
// is optional; details fall back to bare IATA codes without it.
func NewPresentationAgent(prompter *Prompter, cities CityResolver) *PresentationAgent {
	return &PresentationAgent{prompter: prompter, cities: cities}
}

// Execute sorts the offers and displays the results tables
func (a *PresentationAgent) Execute(ctx context.Context, state *workflow.State) error {
	if state.Results == nil {
		return fmt.Errorf("no search results to present")
	}

	pref := DetectSortPreference(state.UserPrompt)
	a.prompter.Printf("\nSorting flights by: %s\n", pref.Description)

	state.Results.OriginalDateOffers = SortOffers(state.Results.OriginalDateOffers, pref)
	state.Presentation = a.renderPresentation(state.Results, state.ParsedRequest)

	a.prompter.Println("\n" + strings.Repeat("=", 70))
	a.prompter.Println(state.Presentation)
	a.prompter.Println(strings.Repeat("=", 70))

	log.Infof(ctx, "Flight options presented (%d offers)", len(state.Results.OriginalDateOffers))
	return nil
}

// SelectOffer runs the interactive selection loop: a 1-based index books,
// "info N" shows details, a cancel keyword aborts. Invalid input
// re-prompts; the loop only advances on a confirmed valid choice.
func (a *PresentationAgent) SelectOffer(ctx context.Context, state *workflow.State) error {
	offers := state.Results.OriginalDateOffers
	total := len(offers)
	if total == 0 {
		return fmt.Errorf("no flights available for selection")
	}

	for {
		input, err := a.prompter.Ask(fmt.Sprintf(
			"\nEnter your choice (1-%d), 'info X' for details, or 'cancel' to exit: ", total))
		if err != nil {
			return err
		}
		input = strings.ToLower(input)

		if rest, ok := strings.CutPrefix(input, "info "); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil || n < 1 || n > total {
				a.prompter.Printf("Invalid format. Use 'info X' where X is between 1 and %d\n", total)
				continue
			}
			a.showDetails(ctx, offers[n-1], n)
			continue
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > total {
			a.prompter.Printf("Please enter a number between 1 and %d, 'info X', or 'cancel'\n", total)
			continue
		}

		selected := offers[n-1]
		a.showConfirmation(selected, n)

		answer, err := a.prompter.AskDefault("\nConfirm this selection? (y/n) [y]: ", "y")
		if err != nil {
			return err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			state.SelectedOffer = &selected
			state.SelectionNumber = n
			log.Infof(ctx, "User selected option %d: %s", n, selected.ID)
			return nil
		default:
			a.prompter.Println("Selection cancelled. Please choose again.")
		}
	}
}

// renderPresentation builds the full results view: route header, main
// offers table, cheaper-alternatives table and the selection help text.
func (a *PresentationAgent) renderPresentation(results *models.FlightSearchResult, parsed *workflow.ParsedRequest) string {
	var sb strings.Builder

	sb.WriteString("\nFLIGHT SEARCH RESULTS\n")
	if parsed != nil {
		fmt.Fprintf(&sb, "\nRoute: %s (%s) -> %s (%s)\n",
			parsed.OriginCity, parsed.OriginCode, parsed.DestinationCity, parsed.DestinationCode)
		fmt.Fprintf(&sb, "Date: %s\n", parsed.DepartureDate)
	}
	sb.WriteString("\n")

	if len(results.OriginalDateOffers) > 0 {
		a.renderOffersTable(&sb, results.OriginalDateOffers)
	} else {
		sb.WriteString("No flights found for the requested date.\n")
	}

	if len(results.Alternatives) > 0 {
		a.renderAlternativesTable(&sb, results.Alternatives)
	}

	sb.WriteString("\n" + strings.Repeat("=", 70) + "\n")
	sb.WriteString("FLIGHT SELECTION\n")
	sb.WriteString(strings.Repeat("=", 70) + "\n")
	sb.WriteString("Available commands:\n")
	sb.WriteString("  - Enter number (1-N) = Select flight\n")
	sb.WriteString("  - 'info X' = Get detailed info about option X\n")
	sb.WriteString("  - 'cancel' = Exit program\n")

	return sb.String()
}

func (a *PresentationAgent) renderOffersTable(sb *strings.Builder, offers []models.FlightOffer) {
	line := "+" + strings.Repeat("-", 120) + "+"
	sb.WriteString(line + "\n")
	fmt.Fprintf(sb, "| %-3s | %-22s | %-14s | %-14s | %-10s | %-9s | %-8s | %-16s | %-5s |\n",
		"#", "Carrier", "Departure", "Arrival", "Duration", "Stops", "Class", "Price", "Seats")
	sb.WriteString(line + "\n")

	for i, offer := range offers {
		first := offer.Segments[0]
		last := offer.Segments[len(offer.Segments)-1]

		carrier := truncate(offer.CarrierNames(), 22)

		seats := "N/A"
		if offer.AvailableSeats > 0 {
			seats = strconv.Itoa(offer.AvailableSeats)
		}

		fmt.Fprintf(sb, "| %-3d | %-22s | %-14s | %-14s | %-10s | %-9s | %-8s | %-16s | %-5s |\n",
			i+1,
			carrier,
			first.DepartureClock()+" "+first.DepartureAirport,
			last.ArrivalClock()+" "+last.ArrivalAirport,
			offer.TotalDuration,
			stopsText(offer.Stops),
			truncate(offer.BookingClass, 8),
			fmt.Sprintf("%s %.2f", offer.Currency, offer.Price),
			seats)
	}

	sb.WriteString(line + "\n")
}

func (a *PresentationAgent) renderAlternativesTable(sb *strings.Builder, alternatives []models.AlternativeDateOffer) {
	sb.WriteString("\nCHEAPER ALTERNATIVES ON NEARBY DATES\n")
	sb.WriteString("  (Consider these dates to save money!)\n")

	line := "+" + strings.Repeat("-", 104) + "+"
	sb.WriteString(line + "\n")
	fmt.Fprintf(sb, "| %-12s | %-10s | %-12s | %-20s | %-10s | %-9s | %-16s |\n",
		"Date", "Day", "Savings", "Carrier", "Duration", "Stops", "Price")
	sb.WriteString(line + "\n")

	for _, alt := range alternatives {
		cheapest := alt.Cheapest()
		fmt.Fprintf(sb, "| %-12s | %-10s | %-12s | %-20s | %-10s | %-9s | %-16s |\n",
			alt.Date,
			truncate(alt.Weekday(), 10),
			fmt.Sprintf("-%.2f", -alt.PriceDifference),
			truncate(cheapest.CarrierNames(), 20),
			cheapest.TotalDuration,
			stopsText(cheapest.Stops),
			fmt.Sprintf("%s %.2f", cheapest.Currency, cheapest.Price))
	}

	sb.WriteString(line + "\n")
	sb.WriteString("\nTip: alternative dates show flights cheaper than your requested date.\n")
	sb.WriteString("You can book these by running the search again with the new date.\n")
}

// airportLabel renders "DEL (New Delhi)" when the resolver knows the
// city, otherwise just the code
func (a *PresentationAgent) airportLabel(ctx context.Context, code string) string {
	if a.cities == nil {
		return code
	}
	city := a.cities.AirportCity(ctx, code)
	if city == "" || city == code {
		return code
	}
	return fmt.Sprintf("%s (%s)", code, city)
}

// showDetails prints the per-segment breakdown for one offer
func (a *PresentationAgent) showDetails(ctx context.Context, offer models.FlightOffer, optionNum int) {
	a.prompter.Printf("\n%s\n", strings.Repeat("=", 60))
	a.prompter.Printf("DETAILED INFO - OPTION %d\n", optionNum)
	a.prompter.Printf("%s\n", strings.Repeat("=", 60))

	a.prompter.Printf("Carrier: %s\n", offer.CarrierNames())
	a.prompter.Printf("Price: %s\n", tools.FormatPrice(offer.Price, offer.Currency))
	a.prompter.Printf("Class: %s\n", offer.BookingClass)
	a.prompter.Printf("Total Duration: %s\n", offer.TotalDuration)
	a.prompter.Printf("Stops: %d\n", offer.Stops)
	if offer.AvailableSeats > 0 {
		a.prompter.Printf("Available Seats: %d\n", offer.AvailableSeats)
	}

	a.prompter.Println("\nFlight Segments:")
	for i, seg := range offer.Segments {
		a.prompter.Printf("  Segment %d: %s %s\n", i+1, seg.CarrierName, seg.FlightNumber)
		a.prompter.Printf("  %s %s -> %s %s\n",
			a.airportLabel(ctx, seg.DepartureAirport), seg.DepartureClock(),
			a.airportLabel(ctx, seg.ArrivalAirport), seg.ArrivalClock())
		a.prompter.Printf("  Duration: %s\n", seg.Duration)
		if seg.Aircraft != "" {
			a.prompter.Printf("  Aircraft: %s\n", seg.Aircraft)
		}
		a.prompter.Println()
	}
}

// showConfirmation prints the selection summary before the y/n prompt
func (a *PresentationAgent) showConfirmation(offer models.FlightOffer, optionNum int) {
	first := offer.Segments[0]
	last := offer.Segments[len(offer.Segments)-1]

	a.prompter.Printf("\n%s\n", strings.Repeat("=", 70))
	a.prompter.Printf("SELECTION CONFIRMATION - OPTION %d\n", optionNum)
	a.prompter.Printf("%s\n", strings.Repeat("=", 70))
	a.prompter.Printf("Airline: %s\n", offer.CarrierNames())
	a.prompter.Printf("Route: %s -> %s\n", first.DepartureAirport, last.ArrivalAirport)
	a.prompter.Printf("Departure: %s\n", first.DepartureClock())
	a.prompter.Printf("Arrival: %s\n", last.ArrivalClock())
	a.prompter.Printf("Duration: %s\n", offer.TotalDuration)
	a.prompter.Printf("Stops: %s\n", stopsText(offer.Stops))
	a.prompter.Printf("Class: %s\n", offer.BookingClass)
	a.prompter.Printf("Total Price: %s\n", tools.FormatPrice(offer.Price, offer.Currency))
	a.prompter.Printf("%s\n", strings.Repeat("=", 70))
}

func stopsText(stops int) string {
	if stops == 0 {
		return "Direct"
	}
	if stops == 1 {
		return "1 stop"
	}
	return fmt.Sprintf("%d stops", stops)
}

// truncate cuts on rune boundaries so multi-byte carrier names stay
// valid UTF-8.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) > max {
		return string(r[:max])
	}
	return s
}
