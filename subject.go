package eddy

import (
	"maps"
	"slices"
	"sync"

	"github.com/gordian-engine/eddy/edispose"
	"github.com/gordian-engine/eddy/elock"
)

// Subject is both an Observer and an Observable:
// every event it receives is multicast to all current subscribers.
//
// Events may be sent from multiple goroutines;
// they are delivered one at a time, in the order the lock admits them.
// A subscriber that synchronously sends another event to the Subject
// from within its own callback has that event queued,
// and delivered to every subscriber once the current event
// has reached all of them,
// ahead of any event waiting on another goroutine.
//
// After a terminal event, new subscribers receive only that terminal event.
type Subject[T any] struct {
	// Serializes delivery.
	deliver elock.Recursive

	// Only accessed while holding deliver.
	// Events sent from inside a callback wait here
	// until the outermost On drains them.
	reentrant queue[Event[T]]
	draining  bool

	// Guards the fields below.
	// Never held while calling an observer,
	// so unsubscribing from inside any callback is always safe.
	mu sync.Mutex

	observers map[uint64]Observer[T]
	nextID    uint64

	stopped  bool
	terminal Event[T]
}

// NewSubject returns a Subject with no subscribers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{
		observers: make(map[uint64]Observer[T]),
	}
}

func (s *Subject[T]) On(e Event[T]) {
	s.deliver.Do(func() {
		s.reentrant.push(e)
		if s.draining {
			return
		}

		s.draining = true
		defer func() {
			s.draining = false
			s.reentrant = queue[Event[T]]{}
		}()

		for s.reentrant.len() > 0 {
			s.deliverOne(s.reentrant.pop())
		}
	})
}

func (s *Subject[T]) deliverOne(e Event[T]) {
	// snapshot rejects anything after a terminal event,
	// including one queued by a callback of the terminal delivery itself.
	obs, ok := s.snapshot(e)
	if !ok {
		return
	}

	for _, o := range obs {
		o.On(e)
	}
}

// snapshot returns the observers to deliver e to, in subscription order,
// and records e if it is terminal.
// It reports false if the Subject has already stopped.
func (s *Subject[T]) snapshot(e Event[T]) ([]Observer[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, false
	}

	ids := slices.Sorted(maps.Keys(s.observers))
	obs := make([]Observer[T], 0, len(ids))
	for _, id := range ids {
		obs = append(obs, s.observers[id])
	}

	if e.IsStop() {
		s.stopped = true
		s.terminal = e
		clear(s.observers)
	}

	return obs, true
}

func (s *Subject[T]) Subscribe(o Observer[T]) edispose.Disposable {
	s.mu.Lock()
	if s.stopped {
		terminal := s.terminal
		s.mu.Unlock()

		o.On(terminal)
		return edispose.Nop()
	}

	s.nextID++
	id := s.nextID
	s.observers[id] = o
	s.mu.Unlock()

	return edispose.Func(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	})
}

// HasObservers reports whether any subscriber is currently attached.
func (s *Subject[T]) HasObservers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers) > 0
}
