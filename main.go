package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shahidain/air-ticket-booking-ai-agent/agents"
	"github.com/shahidain/air-ticket-booking-ai-agent/bootstrap"
	"github.com/shahidain/air-ticket-booking-ai-agent/config"
	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/logcontext"
	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

func main() {
	// .env is optional, real env vars win
	_ = godotenv.Load()

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle Ctrl+C (SIGINT)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT)
	go func() {
		<-sigChan
		log.Info(context.Background(), "\nProgram terminated externally. Exiting...")
		cancel()
		os.Exit(130)
	}()

	// 0. Load Config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(ctx, "Failed to load config: %v", err)
	}
	log.Init(cfg.Log.Level)

	if err := cfg.Validate(); err != nil {
		log.Fatalf(ctx, "Invalid configuration: %v", err)
	}

	// 1. Init App Components using Bootstrap
	app, err := bootstrap.Setup(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		log.Fatalf(ctx, "Setup failed: %v", err)
	}

	// 2. Run the booking workflow for one request
	requestID := logcontext.NewRequestID()
	ctx = logcontext.WithRequestID(ctx, requestID)

	printWelcome(app.Prompter)

	request, err := app.Prompter.Ask("\nYour request: ")
	if err != nil {
		reportOutcome(ctx, app.Prompter, err)
		return
	}
	if strings.TrimSpace(request) == "" {
		app.Prompter.Println("No request entered. Exiting.")
		return
	}

	log.Infof(ctx, "Received booking request: %s", request)

	state, err := app.Pipeline.Run(ctx, request)
	if err != nil {
		reportOutcome(ctx, app.Prompter, err)
		if code := exitCode(err); code != 0 {
			os.Exit(code)
		}
		return
	}

	app.Prompter.Printf("\nAll done! Your booking reference is %s.\n", state.Confirmation.BookingReference)
	log.Infof(ctx, "Session finished at %s", state.CompletedAt.Format("2006-01-02 15:04:05"))
}

func printWelcome(p *agents.Prompter) {
	p.Println(strings.Repeat("=", 70))
	p.Println("   AI FLIGHT BOOKING ASSISTANT")
	p.Println(strings.Repeat("=", 70))
	p.Println("\nDescribe the flight you want in plain language, for example:")
	p.Println("  - Book me the cheapest flight from Delhi to Mumbai tomorrow")
	p.Println("  - Find a direct flight from Bangalore to London on 2026-09-15")
	p.Println("  - I need an early morning flight from Hyderabad to Dubai next Friday")
	p.Println("\nType 'cancel' at any prompt to exit.")
}

// exitCode maps a workflow outcome to the process exit status. A user
// cancellation ends the session cleanly and is not a failure.
func exitCode(err error) int {
	if err == nil || errors.Is(err, workflow.ErrCancelled) {
		return 0
	}
	return 1
}

func reportOutcome(ctx context.Context, p *agents.Prompter, err error) {
	if errors.Is(err, workflow.ErrCancelled) {
		p.Println("\nBooking cancelled. See you next time!")
		log.Info(ctx, "Workflow cancelled by user")
		return
	}
	p.Println(fmt.Sprintf("\nSorry, something went wrong: %v", err))
	log.Errorf(ctx, "Workflow failed: %v", err)
}
