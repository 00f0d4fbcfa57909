// Package tool defines the capability interface handed to conversational
// agents. A Tool produces a human-readable string outcome rather than a raw
// value: the consumer is a conversational participant, so success and failure
// are both communicated as text.
package tool

import (
	"context"
	"fmt"
)

// Tool is a named, callable capability bound to agents by the registry.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define a JSON-schema shaped parameter map for function calling
//   - Return descriptive text on expected failures (missing file, bad input)
//   - Reserve the error return for genuine faults; the registry wraps every
//     tool in SoftFail, which renders such faults as text as well
type Tool interface {
	// Name returns the unique identifier for this tool within a registry.
	Name() string

	// Description returns a human-readable description of what this tool does.
	// It is shown to the model and embedded in agent system prompts.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Invoke executes the tool with arguments parsed from a model tool call.
	Invoke(ctx context.Context, args map[string]any) (string, error)
}

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`    // Name of the tool that failed
	Message string `json:"message"` // Error message
	Code    string `json:"code"`    // Error code for categorization
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a new ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}

// StringArg extracts a string argument from a tool call argument map.
// Missing or non-string values yield the fallback.
func StringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
