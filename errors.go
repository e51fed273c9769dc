package eddy

import "fmt"

// PanicError is the error delivered downstream
// when a caller-supplied function, such as a Zip joiner, panics.
// The panic is converted to a terminal error event
// instead of escaping the operator.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("recovered panic: %v", e.Value)
}

// Unwrap returns the panic value if it was an error, or nil otherwise.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// callSafe runs fn, converting a panic into a *PanicError.
func callSafe[R any](fn func() (R, error)) (r R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p}
		}
	}()

	return fn()
}
