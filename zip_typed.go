package eddy

import "github.com/gordian-engine/eddy/edispose"

// Zip2 is [ZipSlice] for two sources of different element types.
func Zip2[A, B, R any](
	a Observable[A], b Observable[B], join func(A, B) (R, error),
) Observable[R] {
	return ObservableFunc[R](func(o Observer[R]) edispose.Disposable {
		bufs := &zip2Buffers[A, B, R]{join: join}
		z := newZipSink(o, 2, bufs)

		subs := z.start()
		subs[0].Set(subscribeZipSource(z, 0, a, bufs.a.push))
		if !z.Disposed() {
			subs[1].Set(subscribeZipSource(z, 1, b, bufs.b.push))
		}

		return z
	})
}

type zip2Buffers[A, B, R any] struct {
	a    queue[A]
	b    queue[B]
	join func(A, B) (R, error)
}

func (z *zip2Buffers[A, B, R]) hasValue(i int) bool {
	switch i {
	case 0:
		return z.a.len() > 0
	default:
		return z.b.len() > 0
	}
}

func (z *zip2Buffers[A, B, R]) joinNext() (R, error) {
	return z.join(z.a.pop(), z.b.pop())
}

// Zip3 is [ZipSlice] for three sources of different element types.
func Zip3[A, B, C, R any](
	a Observable[A], b Observable[B], c Observable[C], join func(A, B, C) (R, error),
) Observable[R] {
	return ObservableFunc[R](func(o Observer[R]) edispose.Disposable {
		bufs := &zip3Buffers[A, B, C, R]{join: join}
		z := newZipSink(o, 3, bufs)

		subs := z.start()
		subs[0].Set(subscribeZipSource(z, 0, a, bufs.a.push))
		if !z.Disposed() {
			subs[1].Set(subscribeZipSource(z, 1, b, bufs.b.push))
		}
		if !z.Disposed() {
			subs[2].Set(subscribeZipSource(z, 2, c, bufs.c.push))
		}

		return z
	})
}

type zip3Buffers[A, B, C, R any] struct {
	a    queue[A]
	b    queue[B]
	c    queue[C]
	join func(A, B, C) (R, error)
}

func (z *zip3Buffers[A, B, C, R]) hasValue(i int) bool {
	switch i {
	case 0:
		return z.a.len() > 0
	case 1:
		return z.b.len() > 0
	default:
		return z.c.len() > 0
	}
}

func (z *zip3Buffers[A, B, C, R]) joinNext() (R, error) {
	return z.join(z.a.pop(), z.b.pop(), z.c.pop())
}
