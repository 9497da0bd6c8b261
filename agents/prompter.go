package agents

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
)

// cancelWords are the inputs that abort the run at any prompt
var cancelWords = map[string]bool{
	"cancel": true,
	"exit":   true,
	"quit":   true,
	"q":      true,
}

// Prompter reads interactive input line by line. The reader and writer
// are injectable so tests can script a whole session.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewPrompter creates a Prompter over the given streams
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Printf writes a formatted message to the prompter's output
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the prompter's output
func (p *Prompter) Println(args ...interface{}) {
	fmt.Fprintln(p.out, args...)
}

// Ask prints a prompt and returns the trimmed input line. Typing a
// cancel keyword returns workflow.ErrCancelled; end of input does too,
// so a closed stdin aborts cleanly instead of looping.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("error reading input: %w", err)
		}
		return "", workflow.ErrCancelled
	}

	line := strings.TrimSpace(p.in.Text())
	if IsCancel(line) {
		return "", workflow.ErrCancelled
	}
	return line, nil
}

// AskDefault prints a prompt and substitutes a default for blank input
func (p *Prompter) AskDefault(prompt, def string) (string, error) {
	line, err := p.Ask(prompt)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

// IsCancel reports whether the input is a cancel keyword
func IsCancel(input string) bool {
	return cancelWords[strings.ToLower(strings.TrimSpace(input))]
}
