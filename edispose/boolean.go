package edispose

import "sync/atomic"

// Boolean is a Disposable whose only effect is to record that it was disposed.
//
// It is the non-owning liveness handle used when a piece of scheduled work
// needs to detect its own cancellation
// without holding a reference to the resource it guards;
// each firing of a periodic unit in esched checks one before running.
type Boolean struct {
	disposed atomic.Bool
}

// NewBoolean returns a Boolean in the active state.
func NewBoolean() *Boolean {
	return new(Boolean)
}

func (b *Boolean) Dispose() {
	b.disposed.Store(true)
}

// Disposed reports whether Dispose has been called.
func (b *Boolean) Disposed() bool {
	return b.disposed.Load()
}
