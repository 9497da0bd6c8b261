package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/models"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

// ID document types supported at passenger collection
const (
	IDTypeAadhaar        = "AADHAAR"
	IDTypePassport       = "PASSPORT"
	IDTypeDrivingLicense = "DRIVING_LICENSE"
)

// BookingAgent is the third pipeline step: it collects passenger details
// interactively and places the simulated booking for the selected offer.
type BookingAgent struct {
	booker   Booker
	prompter *Prompter
}

// NewBookingAgent creates the booking agent
func NewBookingAgent(booker Booker, prompter *Prompter) *BookingAgent {
	return &BookingAgent{booker: booker, prompter: prompter}
}

// Execute collects passengers and books the selected flight
func (a *BookingAgent) Execute(ctx context.Context, state *workflow.State) error {
	if state.SelectedOffer == nil {
		return fmt.Errorf("no flight selected for booking")
	}

	adults := 1
	if state.Query != nil && state.Query.Adults > 0 {
		adults = state.Query.Adults
	}

	passengers, err := a.collectPassengers(adults)
	if err != nil {
		return err
	}
	state.Passengers = passengers

	confirmation, err := a.booker.BookFlight(ctx, state.SelectedOffer, passengers)
	if err != nil {
		return fmt.Errorf("booking flight: %w", err)
	}
	state.Confirmation = confirmation

	log.Infof(ctx, "Booking confirmed: PNR %s for %d passenger(s)", confirmation.BookingReference, len(passengers))
	return nil
}

// collectPassengers prompts for each passenger's details. Empty answers
// fall back to demo defaults so the flow can be exercised end to end
// without typing.
func (a *BookingAgent) collectPassengers(count int) ([]models.PassengerInfo, error) {
	a.prompter.Printf("\n%s\n", strings.Repeat("=", 70))
	a.prompter.Println("PASSENGER DETAILS")
	a.prompter.Printf("%s\n", strings.Repeat("=", 70))
	a.prompter.Printf("Please provide details for %d passenger(s).\n", count)
	a.prompter.Println("Press Enter to use demo defaults, or type 'cancel' to exit.")

	passengers := make([]models.PassengerInfo, 0, count)
	for i := 1; i <= count; i++ {
		a.prompter.Printf("\n--- Passenger %d of %d ---\n", i, count)

		firstName, err := a.prompter.AskDefault(fmt.Sprintf("First name [%s]: ", "John"), "John")
		if err != nil {
			return nil, err
		}
		lastName, err := a.prompter.AskDefault(fmt.Sprintf("Last name [%s]: ", "Doe"), "Doe")
		if err != nil {
			return nil, err
		}
		gender, err := a.collectGender()
		if err != nil {
			return nil, err
		}
		email, err := a.prompter.AskDefault("Email [john.doe@example.com]: ", "john.doe@example.com")
		if err != nil {
			return nil, err
		}
		phone, err := a.prompter.AskDefault("Phone [+91-9876543210]: ", "+91-9876543210")
		if err != nil {
			return nil, err
		}

		idType, idNumber, err := a.collectID()
		if err != nil {
			return nil, err
		}

		passengers = append(passengers, models.PassengerInfo{
			FirstName: firstName,
			LastName:  lastName,
			Gender:    gender,
			Email:     email,
			Phone:     phone,
			IDType:    idType,
			IDNumber:  idNumber,
		})
	}

	return passengers, nil
}

func (a *BookingAgent) collectGender() (string, error) {
	for {
		g, err := a.prompter.AskDefault("Gender (M/F) [M]: ", "M")
		if err != nil {
			return "", err
		}
		switch strings.ToUpper(strings.TrimSpace(g)) {
		case "M":
			return "M", nil
		case "F":
			return "F", nil
		default:
			a.prompter.Println("Please enter M or F")
		}
	}
}

// collectID prompts for the ID document type and number. Aadhaar numbers
// are validated and re-rendered in the canonical grouped format; the
// prompt loops until the number is valid.
func (a *BookingAgent) collectID() (string, string, error) {
	a.prompter.Println("\nID document type:")
	a.prompter.Println("  1. Aadhaar")
	a.prompter.Println("  2. Passport")
	a.prompter.Println("  3. Driving License")

	var idType string
	for {
		choice, err := a.prompter.AskDefault("Select ID type (1-3) [1]: ", "1")
		if err != nil {
			return "", "", err
		}
		switch strings.TrimSpace(choice) {
		case "1":
			idType = IDTypeAadhaar
		case "2":
			idType = IDTypePassport
		case "3":
			idType = IDTypeDrivingLicense
		default:
			a.prompter.Println("Please enter 1, 2 or 3")
			continue
		}
		break
	}

	for {
		def := defaultIDNumber(idType)
		number, err := a.prompter.AskDefault(fmt.Sprintf("%s number [%s]: ", idTypeLabel(idType), def), def)
		if err != nil {
			return "", "", err
		}

		if idType == IDTypeAadhaar {
			formatted, err := FormatAadhaar(number)
			if err != nil {
				a.prompter.Printf("Invalid Aadhaar number: %v\n", err)
				continue
			}
			return idType, formatted, nil
		}

		number = strings.TrimSpace(number)
		if number == "" {
			a.prompter.Println("ID number cannot be empty")
			continue
		}
		return idType, number, nil
	}
}

// FormatAadhaar validates a 12-digit Aadhaar number and renders it in the
// grouped XXXX-XXXX-XXXX format. Spaces and dashes in the input are
// ignored; any other character or a wrong digit count is an error.
func FormatAadhaar(number string) (string, error) {
	var digits strings.Builder
	for _, r := range number {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-':
			// separator, skip
		default:
			return "", fmt.Errorf("unexpected character %q", r)
		}
	}

	d := digits.String()
	if len(d) != 12 {
		return "", fmt.Errorf("expected 12 digits, got %d", len(d))
	}

	return d[0:4] + "-" + d[4:8] + "-" + d[8:12], nil
}

func defaultIDNumber(idType string) string {
	switch idType {
	case IDTypeAadhaar:
		return "0000-0000-0000"
	case IDTypePassport:
		return "A1234567"
	default:
		return "DL-0420110012345"
	}
}

func idTypeLabel(idType string) string {
	switch idType {
	case IDTypeAadhaar:
		return "Aadhaar"
	case IDTypePassport:
		return "Passport"
	default:
		return "Driving License"
	}
}
