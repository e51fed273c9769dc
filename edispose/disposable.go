package edispose

import "sync"

// Disposable is a one-shot, idempotent release capability.
type Disposable interface {
	Dispose()
}

// Func returns a Disposable that calls fn the first time it is disposed.
// Subsequent calls to Dispose do nothing.
// A nil fn is permitted and behaves like [Nop].
func Func(fn func()) Disposable {
	return &funcDisposable{fn: fn}
}

type funcDisposable struct {
	once sync.Once
	fn   func()
}

func (d *funcDisposable) Dispose() {
	d.once.Do(func() {
		if d.fn != nil {
			d.fn()
		}

		// Drop the closure so anything it captured can be collected.
		d.fn = nil
	})
}

// Nop returns a Disposable with no release action.
func Nop() Disposable {
	return nopDisposable{}
}

type nopDisposable struct{}

func (nopDisposable) Dispose() {}
