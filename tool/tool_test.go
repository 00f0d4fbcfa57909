package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ Tool = (*Func)(nil)
	_ Tool = (*softFailTool)(nil)
)

func echoTool() *Func {
	return NewFunc(
		"echo",
		"echo(text): Repeat the given text",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"text": map[string]any{"type": "string"},
			},
			"required": []string{"text"},
		},
		func(ctx context.Context, args map[string]any) (string, error) {
			return StringArg(args, "text", ""), nil
		},
	)
}

func TestFunc(t *testing.T) {
	e := echoTool()
	assert.Equal(t, "echo", e.Name())
	assert.Contains(t, e.Description(), "echo(text)")
	assert.Equal(t, "object", e.Parameters()["type"])

	out, err := e.Invoke(context.Background(), map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
}

func TestToolError(t *testing.T) {
	err := NewToolError("readFile", "boom", "EXECUTION_ERROR")
	assert.Equal(t, "tool error [EXECUTION_ERROR] in readFile: boom", err.Error())

	err = &ToolError{Tool: "readFile", Message: "boom"}
	assert.Equal(t, "tool error in readFile: boom", err.Error())
}

func TestSoftFailPassesSuccessThrough(t *testing.T) {
	out, err := SoftFail(echoTool()).Invoke(context.Background(), map[string]any{"text": "ok"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestSoftFailConvertsErrors(t *testing.T) {
	failing := NewFunc("broken", "broken(): Always fails", map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (string, error) {
			return "", errors.New("disk on fire")
		})

	out, err := SoftFail(failing).Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Tool broken failed: disk on fire", out)
}

func TestSoftFailRecoversPanics(t *testing.T) {
	panicky := NewFunc("panicky", "panicky(): Panics", map[string]any{"type": "object"},
		func(ctx context.Context, args map[string]any) (string, error) {
			panic("nil map write")
		})

	out, err := SoftFail(panicky).Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Tool panicky failed")
	assert.Contains(t, out, "nil map write")
}

func TestStringArg(t *testing.T) {
	args := map[string]any{"a": "x", "n": 3, "empty": ""}
	assert.Equal(t, "x", StringArg(args, "a", "d"))
	assert.Equal(t, "d", StringArg(args, "n", "d"))
	assert.Equal(t, "d", StringArg(args, "empty", "d"))
	assert.Equal(t, "d", StringArg(args, "missing", "d"))
}
