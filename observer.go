package eddy

// Observer receives the events of a sequence.
//
// An Observable delivers events to a single Observer one at a time;
// implementations need not be safe for concurrent calls to On
// unless they are shared by multiple sources,
// in which case they must synchronize, see [Synchronize].
type Observer[T any] interface {
	On(Event[T])
}

// ObserverFunc adapts a plain function to the [Observer] interface.
type ObserverFunc[T any] func(Event[T])

func (f ObserverFunc[T]) On(e Event[T]) { f(e) }

// Callbacks returns an Observer that dispatches each event variant
// to the corresponding callback.
// Any nil callback ignores its events.
func Callbacks[T any](onNext func(T), onError func(error), onCompleted func()) Observer[T] {
	return ObserverFunc[T](func(e Event[T]) {
		switch e.Kind() {
		case KindNext:
			if onNext != nil {
				onNext(e.Value())
			}
		case KindError:
			if onError != nil {
				onError(e.Err())
			}
		case KindCompleted:
			if onCompleted != nil {
				onCompleted()
			}
		}
	})
}

// observerDisposed reports whether o is known to have lost interest.
// Observers may report this through a Disposed method,
// which lets a synchronous source stop before its subscription handle
// has even been returned.
func observerDisposed[T any](o Observer[T]) bool {
	d, ok := o.(interface{ Disposed() bool })
	return ok && d.Disposed()
}
