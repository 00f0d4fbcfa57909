// Package model defines the boundary to the language-model completion
// service. The orchestrator treats a Model as an opaque agent-turn producer:
// given instructions, history and tool definitions it returns one message,
// possibly carrying tool calls. Complete is the system's only suspension
// point; everything around it is synchronous.
package model

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Message is one normalized conversation entry sent to a model.
// Role is "user", "assistant" or "tool"; Name carries the speaker for
// multi-agent relays and the tool name for tool results.
type Message struct {
	Role       string     `json:"role"`
	Name       string     `json:"name,omitempty"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider branching.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// Definition declaratively exposes a callable tool to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset expected).
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input for one completion.
type Request struct {
	Instructions string       `json:"instructions"`
	Messages     []Message    `json:"messages"`
	Tools        []Definition `json:"tools,omitempty"`
}

// Response is the completed model output for one request.
type Response struct {
	Content      string     `json:"content"`
	ToolCalls    []ToolCall `json:"tool_calls,omitempty"`
	FinishReason string     `json:"finish_reason"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive an agent turn.
type Model interface {
	// Complete produces the next assistant message for the given request.
	Complete(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
// Responses are consumed from a FIFO script; once the script is exhausted a
// deterministic echo of the last message is returned. All requests are
// recorded for assertions.
type MockModel struct {
	info  Info
	mu    sync.Mutex
	queue []func(Request) (Response, error)

	// Calls records every request passed to Complete, in order.
	Calls []Request
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{Name: name, Provider: "mock", SupportsTools: true},
	}
}

// Enqueue appends a fixed response (or error) to the script.
func (m *MockModel) Enqueue(resp Response, err error) {
	m.EnqueueFunc(func(Request) (Response, error) { return resp, err })
}

// EnqueueFunc appends a computed response to the script. The function sees
// the live request, which makes scripted tool-call round trips possible.
func (m *MockModel) EnqueueFunc(fn func(Request) (Response, error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, fn)
}

// Complete implements Model.
func (m *MockModel) Complete(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	var fn func(Request) (Response, error)
	if len(m.queue) > 0 {
		fn = m.queue[0]
		m.queue = m.queue[1:]
	}
	m.mu.Unlock()

	if fn != nil {
		return fn(req)
	}

	var last string
	if n := len(req.Messages); n > 0 {
		last = req.Messages[n-1].Content
	}
	return Response{
		Content:      fmt.Sprintf("Mock response to: %s", last),
		FinishReason: "stop",
	}, nil
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
