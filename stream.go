package opencodesdk

import (
	"iter"
	"sync"

	"github.com/wagiedev/opencode-sdk-go/internal/stream"
	"github.com/wagiedev/opencode-sdk-go/internal/transport"
)

// EventStream delivers typed server events from a dedicated subscription.
// Next blocks until an event arrives or the stream is closed; All exposes
// the same sequence as a single-use iterator.
type EventStream struct {
	events *stream.Stream[Event]
	tr     *transport.Transport

	mu  sync.Mutex
	err error

	closeOnce sync.Once
}

// Next returns the next event. It blocks until one is available and
// returns ok=false once the stream is closed and drained.
func (s *EventStream) Next() (Event, bool) {
	return s.events.Next()
}

// All returns a single-use iterator over the remaining events.
func (s *EventStream) All() iter.Seq[Event] {
	return s.events.All()
}

// Err returns the subscription error that ended the stream, if any.
// Meaningful once Next has returned ok=false.
func (s *EventStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Close tears down the subscription and wakes all blocked consumers.
// Already buffered events remain readable. Safe to call more than once,
// but not from inside an event consumer that the subscription is currently
// delivering to.
func (s *EventStream) Close() {
	s.closeOnce.Do(func() {
		s.tr.StopSSE()
		s.events.Close()
	})
}

func (s *EventStream) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err == nil {
		s.err = err
	}
}

// MessageStream delivers the parts of one in-flight message as the server
// streams them, then the completed message.
type MessageStream struct {
	parts *stream.Stream[Part]
	tr    *transport.Transport
	done  chan struct{}

	mu     sync.Mutex
	result MessageWithParts
	err    error

	closeOnce sync.Once
}

// Next returns the next streamed part. It blocks until one is available
// and returns ok=false once the message completed and the buffer drained.
func (s *MessageStream) Next() (Part, bool) {
	return s.parts.Next()
}

// Parts returns a single-use iterator over the remaining streamed parts.
func (s *MessageStream) Parts() iter.Seq[Part] {
	return s.parts.All()
}

// Result blocks until the send completes and returns the final message.
func (s *MessageStream) Result() (MessageWithParts, error) {
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result, s.err
}

// Close abandons the stream. The underlying send is not aborted; use
// Client.AbortSession for that.
func (s *MessageStream) Close() {
	s.closeOnce.Do(func() {
		s.tr.StopSSE()
		s.parts.Close()
	})
}

func (s *MessageStream) finish(result MessageWithParts, err error) {
	s.mu.Lock()
	s.result = result
	s.err = err
	s.mu.Unlock()

	close(s.done)
}
