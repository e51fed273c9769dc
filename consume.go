package eddy

import (
	"context"
	"sync"

	"github.com/gordian-engine/eddy/edispose"
)

// SubscribeFunc subscribes to src with the given callbacks.
// Any nil callback ignores its events.
func SubscribeFunc[T any](
	src Observable[T], onNext func(T), onError func(error), onCompleted func(),
) edispose.Disposable {
	return src.Subscribe(Callbacks(onNext, onError, onCompleted))
}

// Collect subscribes to src and blocks until it terminates,
// returning every emitted value.
//
// The returned error is the stream's terminal error, if any.
// If ctx is canceled before src terminates,
// the subscription is disposed and the context's cause is returned
// along with the values gathered so far.
func Collect[T any](ctx context.Context, src Observable[T]) ([]T, error) {
	var (
		mu      sync.Mutex
		vals    []T
		err     error
		stopped bool
	)
	done := make(chan struct{})

	d := src.Subscribe(ObserverFunc[T](func(e Event[T]) {
		mu.Lock()
		defer mu.Unlock()

		if stopped {
			return
		}

		switch e.Kind() {
		case KindNext:
			vals = append(vals, e.Value())
		case KindError:
			err = e.Err()
			stopped = true
			close(done)
		case KindCompleted:
			stopped = true
			close(done)
		}
	}))
	defer d.Dispose()

	select {
	case <-done:
	case <-ctx.Done():
		mu.Lock()
		defer mu.Unlock()
		return vals, context.Cause(ctx)
	}

	mu.Lock()
	defer mu.Unlock()
	return vals, err
}
