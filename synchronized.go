package eddy

import "github.com/gordian-engine/eddy/elock"

// Synchronize returns an Observer that handles every event
// inside a critical section of l.
//
// All observers sharing one operator instance's state
// should be synchronized with the same lock.
// Because l is reentrant, an event emitted synchronously
// from within another event's handling on the same goroutine
// is processed immediately instead of deadlocking.
func Synchronize[T any](l *elock.Recursive, o Observer[T]) Observer[T] {
	return synchronized[T]{l: l, o: o}
}

type synchronized[T any] struct {
	l *elock.Recursive
	o Observer[T]
}

func (s synchronized[T]) On(e Event[T]) {
	s.l.Do(func() {
		s.o.On(e)
	})
}

func (s synchronized[T]) Disposed() bool {
	return observerDisposed(s.o)
}
