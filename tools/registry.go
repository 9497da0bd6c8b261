// Package tools provides the local tools the agents call during a run:
// the airport directory exposed to the LLM through function calling, and
// the currency converter used for the ticket price breakdown.
package tools

import (
	"context"
	"fmt"
)

// Executor is the function signature for executing a tool
type Executor func(ctx context.Context, args map[string]interface{}) (string, error)

// Definition describes a callable tool in the shape OpenAI function
// calling expects: a name, a description and a JSON-schema parameter map.
type Definition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Registry manages tool definitions and their executors
type Registry struct {
	defs      []Definition
	executors map[string]Executor
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		executors: make(map[string]Executor),
	}
}

// Register adds a tool to the registry with its executor
func (r *Registry) Register(def Definition, executor Executor) {
	r.defs = append(r.defs, def)
	r.executors[def.Name] = executor
}

// Definitions returns all registered tool definitions
func (r *Registry) Definitions() []Definition {
	return r.defs
}

// Execute runs a registered tool by name
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (string, error) {
	executor, ok := r.executors[name]
	if !ok {
		return "", fmt.Errorf("tool not found: %s", name)
	}
	return executor(ctx, args)
}
