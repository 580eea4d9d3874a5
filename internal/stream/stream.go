// Package stream provides a generic blocking FIFO stream shared between a
// background producer and a synchronous consumer.
//
// The queue, closed flag, and condition variable form the one block of
// state that genuinely crosses goroutines; it is only ever touched under
// the stream's lock. The queue is unbounded: streams carry short-lived,
// human-paced interactive traffic, so a stalled consumer growing the queue
// is an accepted tradeoff over backpressure.
package stream

import (
	"iter"
	"sync"
)

// Stream is a closeable FIFO of T with a blocking pull API.
//
// One producer pushes, one consumer pulls. Items are observed in exactly
// push order. After Close, remaining items can still be drained; further
// pushes are discarded.
type Stream[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []T
	closed bool
}

// New creates an empty, open stream.
func New[T any]() *Stream[T] {
	s := &Stream[T]{}
	s.cond = sync.NewCond(&s.mu)

	return s
}

// Push appends item to the tail of the queue and wakes one waiting
// consumer. Pushes after Close are discarded.
func (s *Stream[T]) Push(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.items = append(s.items, item)
	s.cond.Signal()
}

// Next blocks until an item is available or the stream is closed and
// drained. The second return value is false only when no more items will
// ever arrive.
func (s *Stream[T]) Next() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.items) == 0 && !s.closed {
		s.cond.Wait()
	}

	if len(s.items) == 0 {
		var zero T

		return zero, false
	}

	item := s.items[0]
	s.items = s.items[1:]

	return item, true
}

// Close marks the stream closed and wakes every blocked consumer so none
// can be stranded. Close is idempotent; items already queued remain
// consumable.
func (s *Stream[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.closed = true
	s.cond.Broadcast()
}

// Closed reports whether Close has been called.
func (s *Stream[T]) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// All returns a single-use iterator view over the stream. Ranging over it
// blocks on each step like Next and ends when the stream is closed and
// drained.
func (s *Stream[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := s.Next()
			if !ok {
				return
			}

			if !yield(item) {
				return
			}
		}
	}
}
