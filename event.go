package eddy

import "fmt"

// Kind identifies which of the three event variants an [Event] holds.
type Kind uint8

const (
	// The zero Kind is invalid,
	// so that a zero Event is never mistaken for a real one.
	_ Kind = iota

	KindNext
	KindError
	KindCompleted
)

func (k Kind) String() string {
	switch k {
	case KindNext:
		return "next"
	case KindError:
		return "error"
	case KindCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Event is a tagged value with exactly three variants:
// next carrying a value, error carrying a failure, and completed.
type Event[T any] struct {
	kind Kind
	val  T
	err  error
}

// Next returns a next event carrying v.
func Next[T any](v T) Event[T] {
	return Event[T]{kind: KindNext, val: v}
}

// Error returns a terminal error event carrying err.
func Error[T any](err error) Event[T] {
	return Event[T]{kind: KindError, err: err}
}

// Completed returns a terminal completion event.
func Completed[T any]() Event[T] {
	return Event[T]{kind: KindCompleted}
}

func (e Event[T]) Kind() Kind { return e.kind }

// Value returns the carried value for a next event,
// and the zero value otherwise.
func (e Event[T]) Value() T { return e.val }

// Err returns the carried failure for an error event,
// and nil otherwise.
func (e Event[T]) Err() error { return e.err }

// IsStop reports whether e is terminal.
func (e Event[T]) IsStop() bool {
	return e.kind == KindError || e.kind == KindCompleted
}

func (e Event[T]) String() string {
	switch e.kind {
	case KindNext:
		return fmt.Sprintf("next(%v)", e.val)
	case KindError:
		return fmt.Sprintf("error(%v)", e.err)
	default:
		return e.kind.String()
	}
}
