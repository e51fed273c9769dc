package edispose_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gordian-engine/eddy/edispose"
	"github.com/stretchr/testify/require"
)

// counter is a Disposable that counts how many times
// its release action actually ran.
type counter struct {
	n atomic.Int32
}

func (c *counter) Dispose() { c.n.Add(1) }

func (c *counter) Count() int { return int(c.n.Load()) }

func TestFunc_idempotent(t *testing.T) {
	t.Parallel()

	var n int
	d := edispose.Func(func() { n++ })

	for range 5 {
		d.Dispose()
	}

	require.Equal(t, 1, n)
}

func TestFunc_concurrentDisposeRunsOnce(t *testing.T) {
	t.Parallel()

	var n atomic.Int32
	d := edispose.Func(func() { n.Add(1) })

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Dispose()
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), n.Load())
}

func TestFunc_nil(t *testing.T) {
	t.Parallel()

	require.NotPanics(t, func() {
		edispose.Func(nil).Dispose()
		edispose.Nop().Dispose()
	})
}

func TestBoolean(t *testing.T) {
	t.Parallel()

	b := edispose.NewBoolean()
	require.False(t, b.Disposed())

	b.Dispose()
	require.True(t, b.Disposed())

	b.Dispose()
	require.True(t, b.Disposed())
}

func TestSingleAssignment_setThenDispose(t *testing.T) {
	t.Parallel()

	var c counter
	s := edispose.NewSingleAssignment()
	s.Set(&c)
	require.Zero(t, c.Count())

	s.Dispose()
	s.Dispose()
	require.Equal(t, 1, c.Count())
	require.True(t, s.Disposed())
}

func TestSingleAssignment_disposeThenSet(t *testing.T) {
	t.Parallel()

	var c counter
	s := edispose.NewSingleAssignment()
	s.Dispose()

	s.Set(&c)
	require.Equal(t, 1, c.Count())
}

func TestSingleAssignment_setTwicePanics(t *testing.T) {
	t.Parallel()

	s := edispose.NewSingleAssignment()
	s.Set(edispose.Nop())

	require.PanicsWithError(t,
		"BUG: SingleAssignment.Set called twice: disposable already assigned",
		func() { s.Set(edispose.Nop()) },
	)
}

func TestSingleAssignment_setTwiceAfterDisposePanics(t *testing.T) {
	t.Parallel()

	s := edispose.NewSingleAssignment()
	s.Dispose()
	s.Set(edispose.Nop())

	require.Panics(t, func() { s.Set(edispose.Nop()) })
}

func TestBinary(t *testing.T) {
	t.Parallel()

	var a, b counter
	d := edispose.NewBinary(&a, &b)

	d.Dispose()
	d.Dispose()

	require.Equal(t, 1, a.Count())
	require.Equal(t, 1, b.Count())
}

func TestBinary_nilChild(t *testing.T) {
	t.Parallel()

	var a counter
	d := edispose.NewBinary(&a, nil)

	require.NotPanics(t, d.Dispose)
	require.Equal(t, 1, a.Count())
}
