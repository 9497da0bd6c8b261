package agents

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shahidain/air-ticket-booking-ai-agent/models"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
	"github.com/stretchr/testify/assert"
)

type fakeBooker struct {
	lastOffer      *models.FlightOffer
	lastPassengers []models.PassengerInfo
}

func (f *fakeBooker) BookFlight(_ context.Context, offer *models.FlightOffer, passengers []models.PassengerInfo) (*models.BookingConfirmation, error) {
	f.lastOffer = offer
	f.lastPassengers = passengers
	return &models.BookingConfirmation{
		BookingReference: "PNR20260915103045",
		Status:           "CONFIRMED",
		TotalPrice:       offer.Price,
		Currency:         offer.Currency,
		FlightOffer:      offer,
		Passengers:       passengers,
	}, nil
}

func TestFormatAadhaar(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"123456789012", "1234-5678-9012", false},
		{"1234-5678-9012", "1234-5678-9012", false},
		{"1234 5678 9012", "1234-5678-9012", false},
		{"12345678901", "", true},
		{"1234567890123", "", true},
		{"1234-5678-90AB", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := FormatAadhaar(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input: %q", tt.in)
		} else {
			assert.NoError(t, err, "input: %q", tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestBookingAgentDefaults(t *testing.T) {
	// Blank lines take every demo default for one passenger
	input := strings.Repeat("\n", 8)
	prompter := NewPrompter(strings.NewReader(input), &bytes.Buffer{})
	booker := &fakeBooker{}
	agent := NewBookingAgent(booker, prompter)

	state := &workflow.State{
		SelectedOffer: &models.FlightOffer{ID: "1", Price: 4500, Currency: "INR"},
		Query:         &models.SearchQuery{Adults: 1},
	}

	err := agent.Execute(context.Background(), state)
	assert.NoError(t, err)
	assert.Len(t, state.Passengers, 1)

	p := state.Passengers[0]
	assert.Equal(t, "John", p.FirstName)
	assert.Equal(t, "Doe", p.LastName)
	assert.Equal(t, "M", p.Gender)
	assert.Equal(t, IDTypeAadhaar, p.IDType)
	assert.Equal(t, "0000-0000-0000", p.IDNumber)

	assert.NotNil(t, state.Confirmation)
	assert.Equal(t, "PNR20260915103045", state.Confirmation.BookingReference)
}

func TestBookingAgentKeyedInput(t *testing.T) {
	lines := []string{
		"Priya",              // first name
		"Sharma",             // last name
		"f",                  // gender
		"priya@example.com",  // email
		"+91-9000000000",     // phone
		"1",                  // ID type: Aadhaar
		"9876 5432 1098",     // Aadhaar with spaces
	}
	prompter := NewPrompter(strings.NewReader(strings.Join(lines, "\n")+"\n"), &bytes.Buffer{})
	booker := &fakeBooker{}
	agent := NewBookingAgent(booker, prompter)

	state := &workflow.State{
		SelectedOffer: &models.FlightOffer{ID: "1", Price: 4500, Currency: "INR"},
		Query:         &models.SearchQuery{Adults: 1},
	}

	err := agent.Execute(context.Background(), state)
	assert.NoError(t, err)

	p := state.Passengers[0]
	assert.Equal(t, "Priya", p.FirstName)
	assert.Equal(t, "F", p.Gender)
	assert.Equal(t, "9876-5432-1098", p.IDNumber)
}

func TestBookingAgentInvalidAadhaarReprompts(t *testing.T) {
	lines := []string{
		"", "", "", "", "", // name, gender, email, phone defaults
		"1",           // Aadhaar
		"12345",       // too short, re-prompted
		"123456789012",
	}
	prompter := NewPrompter(strings.NewReader(strings.Join(lines, "\n")+"\n"), &bytes.Buffer{})
	agent := NewBookingAgent(&fakeBooker{}, prompter)

	state := &workflow.State{
		SelectedOffer: &models.FlightOffer{ID: "1", Price: 100, Currency: "USD"},
	}

	err := agent.Execute(context.Background(), state)
	assert.NoError(t, err)
	assert.Equal(t, "1234-5678-9012", state.Passengers[0].IDNumber)
}

func TestBookingAgentCancelAtName(t *testing.T) {
	prompter := NewPrompter(strings.NewReader("cancel\n"), &bytes.Buffer{})
	agent := NewBookingAgent(&fakeBooker{}, prompter)

	state := &workflow.State{
		SelectedOffer: &models.FlightOffer{ID: "1", Price: 100, Currency: "USD"},
	}

	err := agent.Execute(context.Background(), state)
	assert.True(t, errors.Is(err, workflow.ErrCancelled))
	assert.Nil(t, state.Confirmation)
}

func TestBookingAgentNoSelection(t *testing.T) {
	agent := NewBookingAgent(&fakeBooker{}, NewPrompter(strings.NewReader(""), &bytes.Buffer{}))

	err := agent.Execute(context.Background(), &workflow.State{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, workflow.ErrCancelled))
}

func TestBookingAgentMultiplePassengers(t *testing.T) {
	// Two passengers, all defaults: 7 prompts each
	input := strings.Repeat("\n", 16)
	prompter := NewPrompter(strings.NewReader(input), &bytes.Buffer{})
	booker := &fakeBooker{}
	agent := NewBookingAgent(booker, prompter)

	state := &workflow.State{
		SelectedOffer: &models.FlightOffer{ID: "1", Price: 9000, Currency: "INR"},
		Query:         &models.SearchQuery{Adults: 2},
	}

	err := agent.Execute(context.Background(), state)
	assert.NoError(t, err)
	assert.Len(t, state.Passengers, 2)
	assert.Len(t, booker.lastPassengers, 2)
}
