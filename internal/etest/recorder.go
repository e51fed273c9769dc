package etest

import (
	"sync"

	"github.com/gordian-engine/eddy"
)

// Recorder is an Observer that records every event it receives.
// It is safe for concurrent use, so it can also detect
// operators that deliver events after a terminal one.
type Recorder[T any] struct {
	mu sync.Mutex

	events []eddy.Event[T]

	// Count of events received after a terminal event.
	afterStop int

	terminated chan struct{}
}

// NewRecorder returns an empty Recorder.
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{
		terminated: make(chan struct{}),
	}
}

func (r *Recorder[T]) On(e eddy.Event[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case <-r.terminated:
		r.afterStop++
	default:
	}

	r.events = append(r.events, e)

	if e.IsStop() && r.afterStop == 0 {
		close(r.terminated)
	}
}

// Terminated returns a channel that is closed
// when the first terminal event is recorded.
func (r *Recorder[T]) Terminated() <-chan struct{} {
	return r.terminated
}

// Events returns a copy of every recorded event.
func (r *Recorder[T]) Events() []eddy.Event[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]eddy.Event[T](nil), r.events...)
}

// Values returns the values of every recorded next event.
func (r *Recorder[T]) Values() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []T
	for _, e := range r.events {
		if e.Kind() == eddy.KindNext {
			out = append(out, e.Value())
		}
	}
	return out
}

// Last returns the most recently recorded event,
// and false if nothing has been recorded.
func (r *Recorder[T]) Last() (eddy.Event[T], bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.events) == 0 {
		return eddy.Event[T]{}, false
	}
	return r.events[len(r.events)-1], true
}

// AfterStop reports how many events arrived after the first terminal event.
// A well-behaved Observable always yields zero.
func (r *Recorder[T]) AfterStop() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.afterStop
}
