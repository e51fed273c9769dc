package eddy

import (
	"sync/atomic"

	"github.com/gordian-engine/eddy/edispose"
)

// Observable is a producer of a sequence of events.
//
// Subscribe attaches o and returns the Disposable that detaches it.
// The caller owns the returned Disposable.
type Observable[T any] interface {
	Subscribe(o Observer[T]) edispose.Disposable
}

// ObservableFunc adapts a plain subscribe function to the [Observable] interface.
// Unlike [Create], it adds no enforcement of the event grammar.
type ObservableFunc[T any] func(Observer[T]) edispose.Disposable

func (f ObservableFunc[T]) Subscribe(o Observer[T]) edispose.Disposable {
	return f(o)
}

// Create returns an Observable that calls subscribe for each subscriber.
//
// The Observer handed to subscribe enforces the event grammar:
// anything emitted after a terminal event is dropped,
// and the Disposable returned by subscribe is disposed
// as soon as a terminal event is emitted or the subscriber disposes.
// The subscribe function must not call On concurrently.
// A synchronous subscribe function should stop emitting
// once the Observer reports Disposed.
func Create[T any](subscribe func(Observer[T]) edispose.Disposable) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) edispose.Disposable {
		s := &createSink[T]{Sink: NewSink(o)}
		s.SetUpstream(subscribe(s))
		return s
	})
}

type createSink[T any] struct {
	*Sink[T]

	stopped atomic.Bool
}

// Disposed also reports true once the downstream observer
// reports that it was disposed.
func (s *createSink[T]) Disposed() bool {
	return s.Sink.Disposed() || observerDisposed(s.observer)
}

func (s *createSink[T]) On(e Event[T]) {
	if e.Kind() == KindNext {
		if !s.stopped.Load() {
			s.ForwardOn(e)
		}
		return
	}

	if s.stopped.Swap(true) {
		return
	}
	s.ForwardOn(e)
	s.Dispose()
}
