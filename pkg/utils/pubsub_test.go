package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopic(t *testing.T) {
	topic := NewTopic[int](2)
	a := topic.Subscribe()
	b := topic.Subscribe()
	require.Equal(t, 2, topic.Subscribers())

	topic.Publish(1)
	topic.Publish(2)
	// Neither subscriber is reading, so this one is dropped for both.
	topic.Publish(3)

	assert.Equal(t, uint64(2), topic.Dropped())
	assert.Equal(t, 1, <-a.Recv())
	assert.Equal(t, 2, <-a.Recv())
	assert.Equal(t, 1, <-b.Recv())

	a.Done()
	a.Done()
	assert.Equal(t, 1, topic.Subscribers())

	_, ok := <-a.Recv()
	assert.False(t, ok)

	topic.Publish(4)
	assert.Equal(t, 2, <-b.Recv())
	assert.Equal(t, 4, <-b.Recv())
}

func TestTopicUnbuffered(t *testing.T) {
	topic := NewTopic[string](-1)
	sub := topic.Subscribe()
	defer sub.Done()

	topic.Publish("nobody listening")
	assert.Equal(t, uint64(1), topic.Dropped())
}
