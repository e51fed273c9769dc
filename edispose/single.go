package edispose

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAlreadyAssigned is wrapped by the panic value
// when [*SingleAssignment.Set] is called more than once.
var ErrAlreadyAssigned = errors.New("disposable already assigned")

// SingleAssignment is a Disposable whose underlying resource
// is bound once, possibly after the SingleAssignment was handed out.
//
// If the SingleAssignment is disposed before Set is called,
// the value passed to Set is disposed immediately.
type SingleAssignment struct {
	mu sync.Mutex

	current  Disposable
	assigned bool
	disposed bool
}

// NewSingleAssignment returns an unassigned, active SingleAssignment.
func NewSingleAssignment() *SingleAssignment {
	return new(SingleAssignment)
}

// Set binds d as the underlying disposable.
//
// Set panics if called twice on the same SingleAssignment;
// that is a programming error with no safe recovery.
func (s *SingleAssignment) Set(d Disposable) {
	s.mu.Lock()

	if s.assigned {
		s.mu.Unlock()
		panic(fmt.Errorf("BUG: SingleAssignment.Set called twice: %w", ErrAlreadyAssigned))
	}
	s.assigned = true

	if s.disposed {
		s.mu.Unlock()
		if d != nil {
			d.Dispose()
		}
		return
	}

	s.current = d
	s.mu.Unlock()
}

func (s *SingleAssignment) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	d := s.current
	s.current = nil
	s.mu.Unlock()

	// Release outside the lock,
	// since the release action may call back into code
	// that holds a reference to s.
	if d != nil {
		d.Dispose()
	}
}

// Disposed reports whether Dispose has been called.
func (s *SingleAssignment) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}
