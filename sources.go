package eddy

import "github.com/gordian-engine/eddy/edispose"

// Just returns an Observable that synchronously emits each of vs,
// then completes.
func Just[T any](vs ...T) Observable[T] {
	return FromSlice(vs)
}

// FromSlice returns an Observable that synchronously emits
// each element of vs in order, then completes.
// Emission stops early once the subscriber is disposed,
// as when a Zip completes partway through the slice.
// The slice is not copied; it must not be modified while subscribed.
func FromSlice[T any](vs []T) Observable[T] {
	return Create(func(o Observer[T]) edispose.Disposable {
		for _, v := range vs {
			if observerDisposed(o) {
				return edispose.Nop()
			}
			o.On(Next(v))
		}
		o.On(Completed[T]())
		return edispose.Nop()
	})
}

// Empty returns an Observable that completes immediately.
func Empty[T any]() Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) edispose.Disposable {
		o.On(Completed[T]())
		return edispose.Nop()
	})
}

// Fail returns an Observable that immediately emits err as its terminal event.
func Fail[T any](err error) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) edispose.Disposable {
		o.On(Error[T](err))
		return edispose.Nop()
	})
}

// Never returns an Observable that emits nothing, ever.
func Never[T any]() Observable[T] {
	return ObservableFunc[T](func(Observer[T]) edispose.Disposable {
		return edispose.Nop()
	})
}
