package edispose

import "sync/atomic"

// NewBinary returns a Disposable that releases exactly a and b.
// It is the fixed-arity form of [Composite], without the key map.
// Either argument may be nil.
func NewBinary(a, b Disposable) Disposable {
	return &binary{a: a, b: b}
}

type binary struct {
	disposed atomic.Bool
	a, b     Disposable
}

func (d *binary) Dispose() {
	if d.disposed.Swap(true) {
		return
	}

	if d.a != nil {
		d.a.Dispose()
	}
	if d.b != nil {
		d.b.Dispose()
	}
}
