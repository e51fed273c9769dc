package eddy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gordian-engine/eddy"
	"github.com/gordian-engine/eddy/edispose"
	"github.com/gordian-engine/eddy/internal/etest"
	"github.com/stretchr/testify/require"
)

func TestCreate_enforcesGrammar(t *testing.T) {
	t.Parallel()

	var released int
	src := eddy.Create(func(o eddy.Observer[int]) edispose.Disposable {
		o.On(eddy.Next(1))
		o.On(eddy.Completed[int]())
		o.On(eddy.Next(2))
		o.On(eddy.Error[int](errors.New("late")))
		return edispose.Func(func() { released++ })
	})

	r := etest.NewRecorder[int]()
	d := src.Subscribe(r)

	require.Equal(t, []eddy.Event[int]{
		eddy.Next(1),
		eddy.Completed[int](),
	}, r.Events())

	// The upstream was released on the terminal event,
	// even though it was returned after the event was emitted.
	require.Equal(t, 1, released)

	d.Dispose()
	require.Equal(t, 1, released)
}

func TestCreate_disposeReleasesUpstream(t *testing.T) {
	t.Parallel()

	var emit eddy.Observer[int]
	var released int
	src := eddy.Create(func(o eddy.Observer[int]) edispose.Disposable {
		emit = o
		return edispose.Func(func() { released++ })
	})

	r := etest.NewRecorder[int]()
	d := src.Subscribe(r)

	emit.On(eddy.Next(1))
	d.Dispose()
	emit.On(eddy.Next(2))

	require.Equal(t, []int{1}, r.Values())
	require.Equal(t, 1, released)
}

func TestFromSlice_remainderDroppedAfterZipCompletes(t *testing.T) {
	t.Parallel()

	vals := make([]int, 1000)
	for i := range vals {
		vals[i] = i
	}

	got, err := eddy.Collect(context.Background(), eddy.Zip2(
		eddy.Just(1, 2),
		eddy.FromSlice(vals),
		func(a, b int) (int, error) { return a + b, nil },
	))
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, got)
}

func TestEmptyFailNever(t *testing.T) {
	t.Parallel()

	vals, err := eddy.Collect(context.Background(), eddy.Empty[int]())
	require.NoError(t, err)
	require.Empty(t, vals)

	errBoom := errors.New("boom")
	_, err = eddy.Collect(context.Background(), eddy.Fail[int](errBoom))
	require.ErrorIs(t, err, errBoom)

	r := etest.NewRecorder[int]()
	eddy.Never[int]().Subscribe(r).Dispose()
	require.Empty(t, r.Events())
}

func TestCollect_contextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := eddy.Collect(ctx, eddy.Never[int]())
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubscribeFunc(t *testing.T) {
	t.Parallel()

	var got []int
	var completed bool
	eddy.SubscribeFunc(eddy.Just(1, 2, 3),
		func(v int) { got = append(got, v) },
		func(error) { t.Error("unexpected error") },
		func() { completed = true },
	)

	require.Equal(t, []int{1, 2, 3}, got)
	require.True(t, completed)

	var gotErr error
	errBoom := errors.New("boom")
	eddy.SubscribeFunc(eddy.Fail[int](errBoom), nil, func(err error) { gotErr = err }, nil)
	require.ErrorIs(t, gotErr, errBoom)
}

// limitedObserver records values and reports itself disposed
// once it has seen limit of them.
type limitedObserver struct {
	*etest.Recorder[int]
	limit int
}

func (o limitedObserver) Disposed() bool {
	return len(o.Values()) >= o.limit
}

func TestFromSlice_stopsOnceSubscriberDisposed(t *testing.T) {
	t.Parallel()

	vals := make([]int, 1000)
	for i := range vals {
		vals[i] = i
	}

	o := limitedObserver{Recorder: etest.NewRecorder[int](), limit: 3}
	eddy.FromSlice(vals).Subscribe(o)

	require.Equal(t, []int{0, 1, 2}, o.Values())
	etest.NotSending(t, o.Terminated())
}

func TestFromSlice_zipStopsReadingAfterCompletion(t *testing.T) {
	t.Parallel()

	var read int
	counted := eddy.ObservableFunc[int](func(o eddy.Observer[int]) edispose.Disposable {
		// Wrap FromSlice's observer to count how much of the slice was consumed.
		return eddy.FromSlice(make([]int, 1000)).Subscribe(countingObserver{o: o, n: &read})
	})

	got, err := eddy.Collect(context.Background(), eddy.Zip2(
		eddy.Just(1, 2),
		counted,
		func(a, b int) (int, error) { return a + b, nil },
	))
	require.NoError(t, err)
	require.Equal(t, []int{1, 3}, got)
	require.Equal(t, 2, read)
}

type countingObserver struct {
	o eddy.Observer[int]
	n *int
}

func (c countingObserver) On(e eddy.Event[int]) {
	if e.Kind() == eddy.KindNext {
		*c.n++
	}
	c.o.On(e)
}

func (c countingObserver) Disposed() bool {
	d, ok := c.o.(interface{ Disposed() bool })
	return ok && d.Disposed()
}
