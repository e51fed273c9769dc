package eddy

import (
	"context"

	"github.com/gordian-engine/eddy/edispose"
	"github.com/gordian-engine/eddy/epubsub"
)

// FromChannel returns an Observable that, for each subscriber,
// starts a goroutine reading values from ch and emitting them.
//
// The subscription completes when ch is closed,
// and fails with the context's cause if ctx is canceled first.
// Multiple subscribers compete for the values of ch;
// use [FromStream] to share one sequence among many subscribers.
func FromChannel[T any](ctx context.Context, ch <-chan T) Observable[T] {
	return Create(func(o Observer[T]) edispose.Disposable {
		stop := make(chan struct{})
		go runChannel(ctx, ch, o, stop)
		return edispose.Func(func() { close(stop) })
	})
}

func runChannel[T any](
	ctx context.Context,
	ch <-chan T,
	o Observer[T],
	stop <-chan struct{},
) {
	for {
		select {
		case <-stop:
			return

		case <-ctx.Done():
			o.On(Error[T](context.Cause(ctx)))
			return

		case v, ok := <-ch:
			if !ok {
				o.On(Completed[T]())
				return
			}
			o.On(Next(v))
		}
	}
}

// FromStream returns an Observable that emits the values of the stream
// starting at head, followed by its terminal event once head's list is closed.
//
// Every subscriber reads the same list independently, at its own pace,
// on its own goroutine.
func FromStream[T any](head *epubsub.Stream[T]) Observable[T] {
	return Create(func(o Observer[T]) edispose.Disposable {
		stop := make(chan struct{})
		go runStream(head, o, stop)
		return edispose.Func(func() { close(stop) })
	})
}

func runStream[T any](s *epubsub.Stream[T], o Observer[T], stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case <-s.Ready:
			if s.Closed {
				if s.Err != nil {
					o.On(Error[T](s.Err))
				} else {
					o.On(Completed[T]())
				}
				return
			}

			o.On(Next(s.Val))
			s = s.Next
		}
	}
}
