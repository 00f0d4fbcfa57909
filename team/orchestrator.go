// Package team runs a round-robin conversation over an ordered list of agent
// descriptors until a termination condition is met. Turns execute strictly
// sequentially: the model call inside a turn is the only suspension point,
// cancellation is honored only at turn boundaries, and tool side effects of
// turn k are visible to every later turn.
package team

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"roundtable/agent"
	"roundtable/logging"
	"roundtable/model"
	"roundtable/tool"
)

// State is the orchestrator lifecycle state.
type State int

const (
	// StateIdle is the initial state before Run is called.
	StateIdle State = iota
	// StateRunning means the turn loop is executing.
	StateRunning
	// StateTerminated means the termination condition was met or an external
	// service failed.
	StateTerminated
	// StateCancelled means a cancel signal stopped the loop between turns.
	StateCancelled
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ExternalServiceError reports a model-client failure during a turn. It ends
// the session: the orchestrator transitions to Terminated and returns the log
// accumulated so far alongside this error.
type ExternalServiceError struct {
	Agent string
	Err   error
}

// Error implements the error interface.
func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service error during turn of %q: %v", e.Agent, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ExternalServiceError) Unwrap() error { return e.Err }

// Options configure an Orchestrator.
type Options struct {
	// Logger receives per-turn diagnostics.
	Logger logging.Logger
	// MaxToolRounds bounds tool-call round trips within one turn.
	MaxToolRounds int
}

// Orchestrator drives the conversation loop. It is single-threaded by
// design: exactly one agent turn is in flight at any time, so the log and
// the workspace need no locking. Cancel may be called from another
// goroutine; it takes effect at the next turn boundary.
type Orchestrator struct {
	agents        []*agent.Descriptor
	cond          TerminationCondition
	log           *ConversationLog
	logger        logging.Logger
	maxToolRounds int

	mu        sync.Mutex
	state     State
	cancelled atomic.Bool
}

// New creates an orchestrator in the Idle state. The agent list must be
// non-empty and the condition non-nil.
func New(agents []*agent.Descriptor, cond TerminationCondition, optFns ...func(o *Options)) (*Orchestrator, error) {
	if len(agents) == 0 {
		return nil, fmt.Errorf("orchestrator requires at least one agent")
	}
	if cond == nil {
		return nil, fmt.Errorf("orchestrator requires a termination condition")
	}

	opts := Options{
		Logger:        logging.NoOpLogger{},
		MaxToolRounds: 8,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Orchestrator{
		agents:        agents,
		cond:          cond,
		log:           NewConversationLog(),
		logger:        opts.Logger,
		maxToolRounds: opts.MaxToolRounds,
		state:         StateIdle,
	}, nil
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

// Cancel requests cooperative cancellation. A turn already started always
// completes and is appended before cancellation takes effect.
func (o *Orchestrator) Cancel() {
	o.cancelled.Store(true)
}

// Log returns the conversation log accumulated so far.
func (o *Orchestrator) Log() *ConversationLog { return o.log }

// Run executes the turn loop until the termination condition is satisfied,
// a cancel signal is observed at a turn boundary, or a model call fails.
// The returned log is never nil; on *ExternalServiceError it holds the
// partial conversation.
func (o *Orchestrator) Run(ctx context.Context, task string) (*ConversationLog, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return o.log, fmt.Errorf("orchestrator already started (state %s)", o.state)
	}
	o.state = StateRunning
	o.mu.Unlock()

	o.logger.Info("orchestrator.start", "agents", len(o.agents), "task_len", len(task))

	for turn := 0; ; turn++ {
		if o.cancelled.Load() || ctx.Err() != nil {
			o.setState(StateCancelled)
			o.logger.Info("orchestrator.cancelled", "messages", o.log.Len())
			return o.log, nil
		}

		current := o.agents[turn%len(o.agents)]

		content, err := o.runTurn(ctx, current, task)
		if err != nil {
			o.setState(StateTerminated)
			o.logger.Error("orchestrator.turn_failed", "agent", current.Name(), "error", err.Error())
			return o.log, &ExternalServiceError{Agent: current.Name(), Err: err}
		}

		msg := o.log.Append(current.Name(), content)
		o.logger.Info("orchestrator.turn", "agent", current.Name(), "seq", msg.SequenceNumber)

		if o.cond.ShouldTerminate(o.log.Len(), &msg) {
			o.setState(StateTerminated)
			o.logger.Info("orchestrator.terminated", "messages", o.log.Len())
			return o.log, nil
		}
	}
}

// runTurn performs one agent turn: a model call, plus bounded tool-call
// round trips. Tool faults never propagate; the model-call error return is
// the caller's signal for ExternalServiceError.
func (o *Orchestrator) runTurn(ctx context.Context, current *agent.Descriptor, task string) (string, error) {
	msgs := o.buildHistory(current, task)
	defs := toolDefinitions(current.Tools())

	for round := 0; ; round++ {
		resp, err := current.Model().Complete(ctx, model.Request{
			Instructions: current.SystemPrompt(),
			Messages:     msgs,
			Tools:        defs,
		})
		if err != nil {
			return "", err
		}

		if len(resp.ToolCalls) == 0 || round >= o.maxToolRounds {
			return resp.Content, nil
		}

		msgs = append(msgs, model.Message{
			Role:      "assistant",
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})
		for _, tc := range resp.ToolCalls {
			result := o.invokeTool(ctx, current, tc)
			msgs = append(msgs, model.Message{
				Role:       "tool",
				Name:       tc.Name,
				Content:    result,
				ToolCallID: tc.ID,
			})
		}
	}
}

// buildHistory renders the task plus the log so far from the perspective of
// the current agent: own messages become assistant turns, other speakers are
// relayed as attributed user turns.
func (o *Orchestrator) buildHistory(current *agent.Descriptor, task string) []model.Message {
	msgs := []model.Message{{Role: "user", Content: task}}
	for _, m := range o.log.Messages() {
		if m.Speaker == current.Name() {
			msgs = append(msgs, model.Message{Role: "assistant", Content: m.Content})
			continue
		}
		msgs = append(msgs, model.Message{
			Role:    "user",
			Name:    m.Speaker,
			Content: fmt.Sprintf("%s: %s", m.Speaker, m.Content),
		})
	}
	return msgs
}

// invokeTool resolves a tool call against the agent's bound tools and runs
// it. Every failure mode is rendered as text.
func (o *Orchestrator) invokeTool(ctx context.Context, current *agent.Descriptor, tc model.ToolCall) string {
	var target tool.Tool
	for _, t := range current.Tools() {
		if t.Name() == tc.Name {
			target = t
			break
		}
	}
	if target == nil {
		o.logger.Warn("orchestrator.tool_unbound", "agent", current.Name(), "tool", tc.Name)
		return fmt.Sprintf("Tool not available: %s", tc.Name)
	}

	args := map[string]any{}
	if len(tc.Arguments) > 0 {
		if err := json.Unmarshal(tc.Arguments, &args); err != nil {
			return fmt.Sprintf("Tool %s failed: invalid arguments: %v", tc.Name, err)
		}
	}

	result, err := target.Invoke(ctx, args)
	if err != nil {
		// Registry tools are soft-fail wrapped; this guards direct bindings.
		return fmt.Sprintf("Tool %s failed: %v", tc.Name, err)
	}
	o.logger.Debug("orchestrator.tool_call", "agent", current.Name(), "tool", tc.Name)
	return result
}

// toolDefinitions exposes bound tools to the model in binding order.
func toolDefinitions(tools []tool.Tool) []model.Definition {
	if len(tools) == 0 {
		return nil
	}
	defs := make([]model.Definition, len(tools))
	for i, t := range tools {
		defs[i] = model.Definition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		}
	}
	return defs
}
