package tool

import (
	"context"
	"fmt"
)

// SoftFail wraps a Tool so that Invoke never returns a non-nil error.
// Internal faults and panics are converted into descriptive text results.
// An orchestrator turn must never abort because a tool failed; the failure
// becomes conversational content the agent can react to.
func SoftFail(t Tool) Tool {
	return &softFailTool{inner: t}
}

type softFailTool struct {
	inner Tool
}

func (t *softFailTool) Name() string               { return t.inner.Name() }
func (t *softFailTool) Description() string        { return t.inner.Description() }
func (t *softFailTool) Parameters() map[string]any { return t.inner.Parameters() }

// Invoke delegates to the wrapped tool, rendering any error or panic as a
// result string.
func (t *softFailTool) Invoke(ctx context.Context, args map[string]any) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Tool %s failed: %v", t.inner.Name(), r)
			err = nil
		}
	}()

	out, callErr := t.inner.Invoke(ctx, args)
	if callErr != nil {
		return fmt.Sprintf("Tool %s failed: %v", t.inner.Name(), callErr), nil
	}
	return out, nil
}
