package team

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationLogSequence(t *testing.T) {
	log := NewConversationLog()
	assert.Equal(t, 0, log.Len())
	assert.Nil(t, log.Last())

	first := log.Append("A", "hello")
	second := log.Append("B", "world")

	assert.Equal(t, 0, first.SequenceNumber)
	assert.Equal(t, 1, second.SequenceNumber)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Timestamp.IsZero())

	require.Equal(t, 2, log.Len())
	assert.Equal(t, "world", log.Last().Content)
}

func TestMessagesReturnsCopy(t *testing.T) {
	log := NewConversationLog()
	log.Append("A", "one")

	msgs := log.Messages()
	msgs[0].Content = "tampered"

	assert.Equal(t, "one", log.Messages()[0].Content)
}

func TestFromMessages(t *testing.T) {
	log := NewConversationLog()
	log.Append("A", "one")
	log.Append("B", "two")

	rebuilt, err := FromMessages(log.Messages())
	require.NoError(t, err)
	assert.Equal(t, log.Messages(), rebuilt.Messages())

	bad := log.Messages()
	bad[1].SequenceNumber = 5
	_, err = FromMessages(bad)
	require.Error(t, err)
}

func TestMaxMessages(t *testing.T) {
	cond := MaxMessages(3)
	assert.False(t, cond.ShouldTerminate(2, nil))
	assert.True(t, cond.ShouldTerminate(3, nil))
	assert.True(t, cond.ShouldTerminate(4, nil))

	// Values below 1 clamp instead of never terminating.
	assert.True(t, MaxMessages(0).ShouldTerminate(1, nil))
}

func TestConditionFunc(t *testing.T) {
	stopWord := ConditionFunc(func(_ int, last *Message) bool {
		return last != nil && last.Content == "TERMINATE"
	})
	assert.False(t, stopWord.ShouldTerminate(10, &Message{Content: "keep going"}))
	assert.True(t, stopWord.ShouldTerminate(1, &Message{Content: "TERMINATE"}))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "terminated", StateTerminated.String())
	assert.Equal(t, "cancelled", StateCancelled.String())
	assert.Equal(t, "unknown", State(42).String())
}
