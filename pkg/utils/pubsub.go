package utils

import (
	"github.com/sasha-s/go-deadlock"
)

// Topic fans published values out to every subscriber. Publish never
// blocks: a subscriber whose buffer is full misses the value.
type Topic[T any] struct {
	subscribers map[chan T]struct{}
	mutex       deadlock.Mutex
	buffer      int
	dropped     uint64
}

func NewTopic[T any](buffer int) *Topic[T] {
	if buffer < 0 {
		buffer = 0
	}
	return &Topic[T]{
		subscribers: make(map[chan T]struct{}),
		buffer:      buffer,
	}
}

func (t *Topic[T]) Publish(value T) {
	t.mutex.Lock()
	for subscriber := range t.subscribers {
		select {
		case subscriber <- value:
		default:
			t.dropped++
		}
	}
	t.mutex.Unlock()
}

// Dropped is the number of deliveries skipped because a subscriber was
// too slow.
func (t *Topic[T]) Dropped() uint64 {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return t.dropped
}

func (t *Topic[T]) Subscribers() int {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	return len(t.subscribers)
}

type Subscriber[T any] struct {
	channel chan T
	topic   *Topic[T]
}

func (t *Topic[T]) Subscribe() *Subscriber[T] {
	channel := make(chan T, t.buffer)
	t.mutex.Lock()
	t.subscribers[channel] = struct{}{}
	t.mutex.Unlock()

	return &Subscriber[T]{channel, t}
}

func (s *Subscriber[T]) Recv() <-chan T {
	return s.channel
}

// Done unsubscribes and closes the channel. Calling it twice is harmless.
func (s *Subscriber[T]) Done() {
	topic := s.topic
	topic.mutex.Lock()
	if _, ok := topic.subscribers[s.channel]; ok {
		delete(topic.subscribers, s.channel)
		close(s.channel)
	}
	topic.mutex.Unlock()
}
