package eddy

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/eddy/edispose"
	"github.com/gordian-engine/eddy/elock"
)

// ZipSlice combines the sources element-wise:
// the k-th output is join applied to the k-th value of every source.
//
// The output completes as soon as a completed source
// has no buffered value left to join,
// since no further join is possible from that point on.
// An error from any source is forwarded immediately
// and every other source is disposed.
// If join returns an error or panics, that becomes the terminal error.
//
// Each call to join receives a freshly allocated slice,
// which join may retain.
// Zipping zero sources completes immediately.
func ZipSlice[T, R any](sources []Observable[T], join func([]T) (R, error)) Observable[R] {
	return ObservableFunc[R](func(o Observer[R]) edispose.Disposable {
		bufs := &zipSliceBuffers[T, R]{
			qs:   make([]queue[T], len(sources)),
			join: join,
		}
		z := newZipSink(o, len(sources), bufs)

		subs := z.start()
		for i, src := range sources {
			if z.Disposed() {
				// A synchronous source already terminated the group.
				break
			}
			subs[i].Set(subscribeZipSource(z, i, src, bufs.qs[i].push))
		}

		return z
	})
}

type zipSliceBuffers[T, R any] struct {
	qs   []queue[T]
	join func([]T) (R, error)
}

func (b *zipSliceBuffers[T, R]) hasValue(i int) bool {
	return b.qs[i].len() > 0
}

func (b *zipSliceBuffers[T, R]) joinNext() (R, error) {
	vals := make([]T, len(b.qs))
	for i := range b.qs {
		vals[i] = b.qs[i].pop()
	}
	return b.join(vals)
}

// zipBuffers holds the per-source buffered values of one zip instance.
// It is only accessed while holding the zip's lock.
type zipBuffers[R any] interface {
	// hasValue reports whether source i has a value waiting to be joined.
	hasValue(i int) bool

	// joinNext consumes one value from every source and joins them.
	joinNext() (R, error)
}

// zipSink is the arity-independent core shared by every zip variant.
type zipSink[R any] struct {
	*Sink[R]

	lock elock.Recursive

	arity int
	bufs  zipBuffers[R]

	// Bit i is set once source i has completed.
	done *bitset.BitSet
}

func newZipSink[R any](o Observer[R], arity int, bufs zipBuffers[R]) *zipSink[R] {
	return &zipSink[R]{
		Sink: NewSink(o),

		arity: arity,
		bufs:  bufs,

		done: bitset.MustNew(uint(arity)),
	}
}

// start binds the sink's upstream to one single-assignment slot per source,
// and returns those slots for the caller to fill as it subscribes.
// Binding before subscribing means that a source failing synchronously
// still disposes every sibling subscription made afterward.
func (z *zipSink[R]) start() []*edispose.SingleAssignment {
	subs := make([]*edispose.SingleAssignment, z.arity)
	ds := make([]edispose.Disposable, z.arity)
	for i := range subs {
		subs[i] = edispose.NewSingleAssignment()
		ds[i] = subs[i]
	}
	z.SetUpstream(edispose.NewComposite(ds...))

	if z.arity == 0 {
		z.complete()
	}

	return subs
}

// next is called under the lock after a source buffered a value.
func (z *zipSink[R]) next() {
	for i := range z.arity {
		if !z.bufs.hasValue(i) {
			return
		}
	}

	res, err := callSafe(z.bufs.joinNext)
	if err != nil {
		z.fail(err)
		return
	}

	z.ForwardOn(Next(res))

	// The join may have drained the last value of a completed source.
	z.checkTermination()
}

// fail is called under the lock when a source errors or the join fails.
func (z *zipSink[R]) fail(err error) {
	z.ForwardOn(Error[R](err))
	z.Dispose()
}

// sourceDone is called under the lock when source i completes.
func (z *zipSink[R]) sourceDone(i int) {
	z.done.Set(uint(i))
	z.checkTermination()
}

// checkTermination completes the output if any completed source
// has nothing buffered, as that source can never supply another value
// and so no further join can happen.
func (z *zipSink[R]) checkTermination() {
	if z.Disposed() {
		return
	}

	for i, ok := z.done.NextSet(0); ok; i, ok = z.done.NextSet(i + 1) {
		if !z.bufs.hasValue(int(i)) {
			z.complete()
			return
		}
	}
}

func (z *zipSink[R]) complete() {
	z.ForwardOn(Completed[R]())
	z.Dispose()
}

// zipObserver is the per-source observer of a zip.
// It is subscribed wrapped in [Synchronize] with the parent's lock.
type zipObserver[T, R any] struct {
	parent *zipSink[R]
	index  int

	push func(T)

	// This source's own subscription,
	// released as soon as the source terminates.
	this *edispose.SingleAssignment
}

func subscribeZipSource[T, R any](
	z *zipSink[R], i int, src Observable[T], push func(T),
) edispose.Disposable {
	this := edispose.NewSingleAssignment()
	this.Set(src.Subscribe(Synchronize[T](&z.lock, &zipObserver[T, R]{
		parent: z,
		index:  i,
		push:   push,
		this:   this,
	})))
	return this
}

// Disposed lets a synchronous source stop emitting
// once the zip has terminated.
func (o *zipObserver[T, R]) Disposed() bool {
	return o.parent.Disposed()
}

// On is always called under the parent's lock.
func (o *zipObserver[T, R]) On(e Event[T]) {
	if o.parent.Disposed() {
		return
	}

	switch e.Kind() {
	case KindNext:
		o.push(e.Value())
		o.parent.next()

	case KindError:
		o.this.Dispose()
		o.parent.fail(e.Err())

	case KindCompleted:
		o.this.Dispose()
		o.parent.sourceDone(o.index)
	}
}
