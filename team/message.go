package team

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Message is one conversation entry. SequenceNumber reflects real turn order
// and is strictly increasing from 0.
type Message struct {
	ID             string    `json:"id"`
	Speaker        string    `json:"speaker"`
	Content        string    `json:"content"`
	SequenceNumber int       `json:"sequence_number"`
	Timestamp      time.Time `json:"timestamp"`
}

// ConversationLog is the append-only, ordered record of a session. Insertion
// order is the conversational order and is never reordered on persistence or
// replay. The orchestrator is its sole writer; readers get defensive copies.
type ConversationLog struct {
	messages []Message
}

// NewConversationLog creates an empty log.
func NewConversationLog() *ConversationLog {
	return &ConversationLog{}
}

// FromMessages rebuilds a log from persisted records, validating the
// sequence-number invariant.
func FromMessages(msgs []Message) (*ConversationLog, error) {
	for i, m := range msgs {
		if m.SequenceNumber != i {
			return nil, fmt.Errorf("message %d has sequence number %d, want %d", i, m.SequenceNumber, i)
		}
	}
	log := &ConversationLog{messages: make([]Message, len(msgs))}
	copy(log.messages, msgs)
	return log, nil
}

// Append adds a message with the next sequence number and returns it.
func (l *ConversationLog) Append(speaker, content string) Message {
	msg := Message{
		ID:             uuid.NewString(),
		Speaker:        speaker,
		Content:        content,
		SequenceNumber: len(l.messages),
		Timestamp:      time.Now().UTC(),
	}
	l.messages = append(l.messages, msg)
	return msg
}

// Messages returns a copy of all messages in sequence order.
func (l *ConversationLog) Messages() []Message {
	msgs := make([]Message, len(l.messages))
	copy(msgs, l.messages)
	return msgs
}

// Len returns the number of messages.
func (l *ConversationLog) Len() int { return len(l.messages) }

// Last returns the most recent message, or nil for an empty log.
func (l *ConversationLog) Last() *Message {
	if len(l.messages) == 0 {
		return nil
	}
	msg := l.messages[len(l.messages)-1]
	return &msg
}
