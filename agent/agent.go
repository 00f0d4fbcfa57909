// Package agent builds the immutable descriptors the orchestrator schedules.
// A descriptor binds a name, a role, a synthesized system prompt, an ordered
// set of registry tool references and an opaque model client. Tool binding is
// fail-fast: an unresolvable tool name aborts creation, unlike runtime tool
// failures, which are soft.
package agent

import (
	"fmt"
	"strings"
	"sync"

	"roundtable/logging"
	"roundtable/model"
	"roundtable/registry"
	"roundtable/tool"
)

// collaborateInstruction is appended to every synthesized system prompt.
const collaborateInstruction = "Always collaborate effectively with other agents and provide clear, actionable responses."

// DuplicateAgentError reports two agents sharing a name within one session.
type DuplicateAgentError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicateAgentError) Error() string {
	return fmt.Sprintf("duplicate agent name %q", e.Name)
}

// Descriptor is an immutable agent binding. Bound tools are non-owning
// references into the registry, fixed in order at creation time.
type Descriptor struct {
	name         string
	role         string
	systemPrompt string
	tools        []tool.Tool
	llm          model.Model
}

// Name returns the session-unique agent name.
func (d *Descriptor) Name() string { return d.name }

// Role returns the descriptive role of the agent.
func (d *Descriptor) Role() string { return d.role }

// SystemPrompt returns the synthesized system prompt.
func (d *Descriptor) SystemPrompt() string { return d.systemPrompt }

// Tools returns the bound tools in binding order.
func (d *Descriptor) Tools() []tool.Tool {
	tools := make([]tool.Tool, len(d.tools))
	copy(tools, d.tools)
	return tools
}

// Model returns the opaque model-client handle.
func (d *Descriptor) Model() model.Model { return d.llm }

// FactoryOptions configure a Factory instance.
type FactoryOptions struct {
	Logger logging.Logger
}

// Factory creates agent descriptors against one registry and enforces
// session-wide name uniqueness.
type Factory struct {
	registry *registry.Registry
	logger   logging.Logger

	mu    sync.Mutex
	names map[string]struct{}
}

// NewFactory creates a Factory bound to the given registry.
func NewFactory(reg *registry.Registry, optFns ...func(o *FactoryOptions)) *Factory {
	opts := FactoryOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Factory{
		registry: reg,
		logger:   opts.Logger,
		names:    make(map[string]struct{}),
	}
}

// Create resolves the requested tool names, synthesizes the effective system
// prompt and returns an immutable descriptor. An unresolvable tool name fails
// the whole creation with the registry's capability error; a reused agent
// name fails with *DuplicateAgentError.
func (f *Factory) Create(name, role, basePrompt string, toolNames []string, llm model.Model) (*Descriptor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.names[name]; exists {
		return nil, &DuplicateAgentError{Name: name}
	}

	tools := make([]tool.Tool, 0, len(toolNames))
	for _, tn := range toolNames {
		t, err := f.registry.Resolve(tn)
		if err != nil {
			return nil, fmt.Errorf("create agent %q: %w", name, err)
		}
		tools = append(tools, t)
	}

	f.names[name] = struct{}{}
	f.logger.Info("agent.created", "agent", name, "role", role, "tools", len(tools))

	return &Descriptor{
		name:         name,
		role:         role,
		systemPrompt: synthesizePrompt(basePrompt, tools),
		tools:        tools,
		llm:          llm,
	}, nil
}

// CreateTeam builds one descriptor per preset, in order, all sharing the same
// tool set and model client.
func (f *Factory) CreateTeam(presets []Preset, toolNames []string, llm model.Model) ([]*Descriptor, error) {
	descriptors := make([]*Descriptor, 0, len(presets))
	for _, p := range presets {
		d, err := f.Create(p.Name, p.Role, p.BasePrompt, toolNames, llm)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// synthesizePrompt appends the tool catalog (in binding order, one usage hint
// per tool) and the standing collaboration instruction to the base prompt.
func synthesizePrompt(basePrompt string, tools []tool.Tool) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(basePrompt))
	if len(tools) > 0 {
		b.WriteString("\n\nYou can use these tools to accomplish tasks:\n")
		for _, t := range tools {
			fmt.Fprintf(&b, "- %s\n", t.Description())
		}
	}
	b.WriteString("\n")
	b.WriteString(collaborateInstruction)
	return b.String()
}
