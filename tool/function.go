package tool

import "context"

// Func is a generic adapter that exposes a plain Go function as a Tool.
//
// It holds a lightweight JSON-Schema-like parameter specification alongside
// the implementation. A Func has no internal mutable state after construction
// and is safe for concurrent use.
type Func struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (string, error)
}

// NewFunc constructs a Func tool from explicit schema and function.
//
// Example:
//
//	echo := tool.NewFunc(
//	  "echo",
//	  "echo(text): Repeat the given text",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "text": map[string]any{"type": "string"},
//	    },
//	    "required": []string{"text"},
//	  },
//	  func(ctx context.Context, args map[string]any) (string, error) {
//	    return tool.StringArg(args, "text", ""), nil
//	  },
//	)
func NewFunc(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (string, error),
) *Func {
	return &Func{name: name, description: description, parameters: parameters, fn: fn}
}

// Name returns the unique tool name used in function call declarations and routing.
func (t *Func) Name() string { return t.name }

// Description returns the short natural language description exposed to models.
func (t *Func) Description() string { return t.description }

// Parameters returns the JSON schema describing expected arguments.
func (t *Func) Parameters() map[string]any { return t.parameters }

// Invoke runs the wrapped function.
func (t *Func) Invoke(ctx context.Context, args map[string]any) (string, error) {
	return t.fn(ctx, args)
}
