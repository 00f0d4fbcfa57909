package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Model = (*MockModel)(nil)

func TestMockModelEcho(t *testing.T) {
	m := NewMockModel("test")
	assert.Equal(t, "mock", m.Info().Provider)

	resp, err := m.Complete(context.Background(), Request{
		Messages: []Message{{Role: "user", Content: "ping"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: ping", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
}

func TestMockModelScript(t *testing.T) {
	m := NewMockModel("test")
	m.Enqueue(Response{Content: "first", FinishReason: "stop"}, nil)
	m.Enqueue(Response{}, errors.New("rate limited"))

	resp, err := m.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Content)

	_, err = m.Complete(context.Background(), Request{})
	require.EqualError(t, err, "rate limited")

	// Script exhausted: back to echo, and every call was recorded.
	resp, err = m.Complete(context.Background(), Request{Messages: []Message{{Role: "user", Content: "x"}}})
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: x", resp.Content)
	assert.Len(t, m.Calls, 3)
}

func TestMockModelHonorsContext(t *testing.T) {
	m := NewMockModel("test")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Complete(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
}
