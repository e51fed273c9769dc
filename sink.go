package eddy

import (
	"sync/atomic"

	"github.com/gordian-engine/eddy/edispose"
)

// Sink couples a single downstream Observer
// to the upstream subscriptions of one operator instance.
//
// Events forwarded after the Sink is disposed are dropped silently,
// because the consumer has already released its interest.
type Sink[T any] struct {
	observer Observer[T]

	upstream *edispose.SingleAssignment

	disposed atomic.Bool
}

// NewSink returns an active Sink delivering to observer.
func NewSink[T any](observer Observer[T]) *Sink[T] {
	return &Sink[T]{
		observer: observer,
		upstream: edispose.NewSingleAssignment(),
	}
}

// SetUpstream binds the disposable released when s is disposed.
// If s is already disposed, d is disposed immediately.
// SetUpstream must be called at most once.
func (s *Sink[T]) SetUpstream(d edispose.Disposable) {
	s.upstream.Set(d)
}

// ForwardOn delivers e to the downstream observer unless s is disposed.
//
// The disposed flag is checked immediately before delivery,
// so a concurrent Dispose on another goroutine
// stops all forwarding that has not yet begun.
func (s *Sink[T]) ForwardOn(e Event[T]) {
	if s.disposed.Load() {
		return
	}
	s.observer.On(e)
}

// Dispose marks s disposed and releases its upstream subscriptions.
func (s *Sink[T]) Dispose() {
	if s.disposed.Swap(true) {
		return
	}
	s.upstream.Dispose()
}

// Disposed reports whether Dispose has been called.
func (s *Sink[T]) Disposed() bool {
	return s.disposed.Load()
}
