package team

// TerminationCondition decides when the turn loop stops. It is evaluated
// after every append, never mid-turn.
type TerminationCondition interface {
	ShouldTerminate(messageCount int, last *Message) bool
}

// maxMessages terminates once the log holds at least the configured number
// of messages.
type maxMessages struct {
	limit int
}

// MaxMessages returns the shipped termination condition, satisfied when the
// message count reaches n. Values below 1 are clamped to 1.
func MaxMessages(n int) TerminationCondition {
	if n < 1 {
		n = 1
	}
	return maxMessages{limit: n}
}

// ShouldTerminate implements TerminationCondition.
func (m maxMessages) ShouldTerminate(messageCount int, _ *Message) bool {
	return messageCount >= m.limit
}

// ConditionFunc adapts a plain predicate to a TerminationCondition.
type ConditionFunc func(messageCount int, last *Message) bool

// ShouldTerminate implements TerminationCondition.
func (f ConditionFunc) ShouldTerminate(messageCount int, last *Message) bool {
	return f(messageCount, last)
}
