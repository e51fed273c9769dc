package epubsub

import "context"

// Stream is a linked list of event-driven values.
// The list has a single writer and many readers.
// Readers can each consume the list at their own pace.
//
// Each node is either a value node, created by [*Stream.Publish],
// or a terminal node, created by [*Stream.Close].
// A terminal node has a nil Next.
//
// If readers do not actively consume the list,
// the node they observe will never be garbage collected,
// which is a memory leak.
type Stream[T any] struct {
	Ready chan struct{}

	Next *Stream[T]
	Val  T

	// Set only on a terminal node.
	// A nil Err on a terminal node means the stream completed normally.
	Closed bool
	Err    error
}

// NewStream returns an initialized pubsub stream.
func NewStream[T any]() *Stream[T] {
	return &Stream[T]{
		Ready: make(chan struct{}),
	}
}

// Publish assigns s's value and initializes s.Next.
// Then s.Ready is closed, notifying any observers that
// s.Val can now be safely read.
//
// If Publish or Close has already been called for s, Publish panics.
func (s *Stream[T]) Publish(t T) {
	s.Val = t
	s.Next = NewStream[T]()
	close(s.Ready)
}

// Close marks s as the terminal node of the list, with the given error.
// Readers observing s.Ready will see s.Closed set and s.Next nil.
//
// If Publish or Close has already been called for s, Close panics.
func (s *Stream[T]) Close(err error) {
	s.Closed = true
	s.Err = err
	close(s.Ready)
}

// RunChannelToStream starts a background goroutine
// that reads values from ch and publishes them to the returned Stream.
//
// If ch is closed, the stream is closed with a nil error.
// If ctx is canceled first, the stream is closed with the context's cause.
// The returned done channel is closed when the goroutine stops.
func RunChannelToStream[T any](ctx context.Context, ch <-chan T) (
	s *Stream[T], done <-chan struct{},
) {
	s = NewStream[T]()
	doneCh := make(chan struct{})

	go runChannelToStream(ctx, ch, s, doneCh)

	return s, doneCh
}

func runChannelToStream[T any](
	ctx context.Context,
	ch <-chan T,
	s *Stream[T],
	done chan<- struct{},
) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			s.Close(context.Cause(ctx))
			return

		case v, ok := <-ch:
			if !ok {
				s.Close(nil)
				return
			}
			s.Publish(v)
			s = s.Next
		}
	}
}
