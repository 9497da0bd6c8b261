package agents

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shahidain/air-ticket-booking-ai-agent/workflow"
	"github.com/stretchr/testify/assert"
)

func TestPrompterAsk(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("  DEL to BOM  \n"), &out)

	got, err := p.Ask("Your request: ")
	assert.NoError(t, err)
	assert.Equal(t, "DEL to BOM", got)
	assert.Contains(t, out.String(), "Your request: ")
}

func TestPrompterAskCancelKeywords(t *testing.T) {
	for _, word := range []string{"cancel", "exit", "quit", "q", "CANCEL", " Quit "} {
		p := NewPrompter(strings.NewReader(word+"\n"), &bytes.Buffer{})

		_, err := p.Ask("> ")
		assert.True(t, errors.Is(err, workflow.ErrCancelled), "word: %q", word)
	}
}

func TestPrompterAskEOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Ask("> ")
	assert.True(t, errors.Is(err, workflow.ErrCancelled))
}

func TestPrompterAskDefault(t *testing.T) {
	p := NewPrompter(strings.NewReader("\nJane\n"), &bytes.Buffer{})

	got, err := p.AskDefault("First name [John]: ", "John")
	assert.NoError(t, err)
	assert.Equal(t, "John", got)

	got, err = p.AskDefault("First name [John]: ", "John")
	assert.NoError(t, err)
	assert.Equal(t, "Jane", got)
}

func TestIsCancel(t *testing.T) {
	assert.True(t, IsCancel("cancel"))
	assert.True(t, IsCancel("  Q  "))
	assert.False(t, IsCancel("cancellation"))
	assert.False(t, IsCancel(""))
}
