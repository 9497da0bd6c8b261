// Package openai wraps the OpenAI chat completions API for the agents:
// plain text generation, JSON-shaped structured output with a bounded
// corrective retry policy, and function calling against a tool registry.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/shahidain/air-ticket-booking-ai-agent/log"
	"github.com/shahidain/air-ticket-booking-ai-agent/tools"
)

// Client handles OpenAI chat completion requests
type Client struct {
	api   openai.Client
	Model string
}

// NewClient creates a new OpenAI API client
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &Client{
		api:   openai.NewClient(option.WithAPIKey(apiKey)),
		Model: model,
	}, nil
}

// ChatCompletion sends a single system+user exchange and returns the text
func (c *Client) ChatCompletion(ctx context.Context, system, user string, temperature float64) (string, error) {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// FormatResponse renders arbitrary data into text following the given
// formatting instruction. Used for ticket and confirmation rendering.
func (c *Client) FormatResponse(ctx context.Context, data interface{}, instruction string, temperature float64) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode data for formatting: %w", err)
	}
	return c.ChatCompletion(ctx, instruction, string(payload), temperature)
}

// GenerateOptions controls a tool-calling generation loop
type GenerateOptions struct {
	System        string
	User          string
	Registry      *tools.Registry
	MaxIterations int
	Temperature   float64
	// Validate inspects a candidate final answer. A non-nil error puts
	// its message back into the conversation as a corrective user turn
	// and the loop tries again, in JSON mode with tools disabled.
	Validate func(content string) error
}

// GenerateWithTools runs a conversation in which the model may invoke
// registered tools before producing its final answer. The loop is
// bounded: after MaxIterations the last error is surfaced to the caller.
func (c *Client) GenerateWithTools(ctx context.Context, opts GenerateOptions) (string, error) {
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 6
	}

	var toolParams []openai.ChatCompletionToolParam
	if opts.Registry != nil {
		for _, def := range opts.Registry.Definitions() {
			toolParams = append(toolParams, openai.ChatCompletionToolParam{
				Function: shared.FunctionDefinitionParam{
					Name:        def.Name,
					Description: openai.String(def.Description),
					Parameters:  shared.FunctionParameters(def.Parameters),
				},
			})
		}
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(opts.System),
		openai.UserMessage(opts.User),
	}

	jsonMode := false
	var lastErr error

	for i := 0; i < maxIterations; i++ {
		params := openai.ChatCompletionNewParams{
			Model:       openai.ChatModel(c.Model),
			Messages:    messages,
			Temperature: openai.Float(opts.Temperature),
		}
		if jsonMode {
			params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
				OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
			}
		} else if len(toolParams) > 0 {
			params.Tools = toolParams
		}

		resp, err := c.api.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		message := resp.Choices[0].Message
		messages = append(messages, message.ToParam())

		if len(message.ToolCalls) > 0 && !jsonMode {
			log.Debugf(ctx, "Model requested %d tool call(s)", len(message.ToolCalls))

			for _, call := range message.ToolCalls {
				result, err := c.executeToolCall(ctx, opts.Registry, call)
				if err != nil {
					result = fmt.Sprintf("Error: %v", err)
				}
				messages = append(messages, openai.ToolMessage(result, call.ID))
			}
			continue
		}

		content := message.Content
		if opts.Validate == nil {
			return content, nil
		}
		if err := opts.Validate(content); err != nil {
			lastErr = err
			log.Warnf(ctx, "Model output rejected, re-prompting: %v", err)
			messages = append(messages, openai.UserMessage(
				fmt.Sprintf("Error: %v. Respond with ONLY the corrected JSON object, no explanation or formatting.", err)))
			jsonMode = true
			continue
		}
		return content, nil
	}

	if lastErr != nil {
		return "", fmt.Errorf("gave up after %d attempts: %w", maxIterations, lastErr)
	}
	return "", fmt.Errorf("gave up after %d attempts without a final answer", maxIterations)
}

// executeToolCall decodes a tool call's arguments and runs it through
// the registry.
func (c *Client) executeToolCall(ctx context.Context, registry *tools.Registry, call openai.ChatCompletionMessageToolCall) (string, error) {
	if registry == nil {
		return "", fmt.Errorf("no tools registered")
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return "", fmt.Errorf("bad arguments for %s: %w", call.Function.Name, err)
	}

	log.Debugf(ctx, "Calling tool %s with args %v", call.Function.Name, args)
	return registry.Execute(ctx, call.Function.Name, args)
}

var (
	fencedJSON = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")
	looseJSON  = regexp.MustCompile(`(?s)\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}`)
)

// ExtractJSON pulls a JSON object out of model output that may be wrapped
// in markdown fences or surrounding prose.
func ExtractJSON(content string) (string, error) {
	content = strings.TrimSpace(content)

	if json.Valid([]byte(content)) && strings.HasPrefix(content, "{") {
		return content, nil
	}
	if m := fencedJSON.FindStringSubmatch(content); m != nil && json.Valid([]byte(m[1])) {
		return m[1], nil
	}
	if m := looseJSON.FindString(content); m != "" && json.Valid([]byte(m)) {
		return m, nil
	}

	return "", fmt.Errorf("no JSON object found in model output")
}
