// Package elock contains the reentrant lock
// that serializes event handling inside a single operator instance.
//
// Go has no built-in notion of a reentrant mutex,
// because the standard library does not expose goroutine identity.
// Reactive operators need one anyway:
// an observer handling a value may synchronously cause
// another event on the same stream, on the same goroutine,
// and that nested event must be processed in order rather than deadlock.
//
// Only the critical-section form [*Recursive.Do] is exported,
// so callers never hold a raw lock across an exit path.
package elock

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Recursive is a mutual-exclusion lock
// that the owning goroutine may re-acquire without blocking.
//
// The zero value is an unlocked Recursive, ready to use.
type Recursive struct {
	mu sync.Mutex

	// Goroutine ID of the current holder, or zero when unlocked.
	owner atomic.Int64

	// Only read or written by the holder.
	depth int
}

// Do runs fn while holding l.
// If the calling goroutine already holds l, fn runs immediately
// as a nested critical section.
//
// The lock is released when fn returns, including when fn panics.
func (l *Recursive) Do(fn func()) {
	l.lock()
	defer l.unlock()

	fn()
}

func (l *Recursive) lock() {
	id := goid.Get()

	// Only this goroutine can store its own ID in owner,
	// so a match here cannot be a stale read.
	if l.owner.Load() == id {
		l.depth++
		return
	}

	l.mu.Lock()
	l.owner.Store(id)
	l.depth = 1
}

func (l *Recursive) unlock() {
	l.depth--
	if l.depth > 0 {
		return
	}

	l.owner.Store(0)
	l.mu.Unlock()
}
