package eddy

import (
	"sync"
	"time"

	"github.com/gordian-engine/eddy/edispose"
	"github.com/gordian-engine/eddy/esched"
)

// Interval returns an Observable that emits 0, 1, 2, ...
// on s, one value every period, starting one period after subscription.
// It never completes on its own.
func Interval(s esched.Scheduler, period time.Duration) Observable[int64] {
	return Create(func(o Observer[int64]) edispose.Disposable {
		return esched.SchedulePeriodicState(s, int64(0), period, period, func(n int64) int64 {
			o.On(Next(n))
			return n + 1
		})
	})
}

// Timer returns an Observable that emits a single 0 on s after delay,
// then completes.
func Timer(s esched.Scheduler, delay time.Duration) Observable[int64] {
	return Create(func(o Observer[int64]) edispose.Disposable {
		return s.ScheduleRelative(delay, func() edispose.Disposable {
			o.On(Next(int64(0)))
			o.On(Completed[int64]())
			return nil
		})
	})
}

// SubscribeOn returns an Observable that subscribes to src on s,
// rather than on the goroutine calling Subscribe.
//
// Disposing before the subscription happens prevents it;
// disposing afterward disposes the subscription.
func SubscribeOn[T any](src Observable[T], s esched.Scheduler) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) edispose.Disposable {
		return s.Schedule(func() edispose.Disposable {
			return src.Subscribe(o)
		})
	})
}

// ObserveOn returns an Observable that delivers every event of src
// through s, preserving their order.
//
// Events are buffered while a delivery run is in progress,
// and at most one delivery run is scheduled at a time,
// so even a concurrent scheduler never reorders events
// or delivers two of them at once.
//
// If s has stopped and refuses a delivery run,
// the buffered events are dropped and src is disposed.
func ObserveOn[T any](src Observable[T], s esched.Scheduler) Observable[T] {
	return ObservableFunc[T](func(o Observer[T]) edispose.Disposable {
		sink := &observeOnSink[T]{
			Sink:  NewSink(o),
			sched: s,
		}
		sink.SetUpstream(src.Subscribe(sink))
		return sink
	})
}

type observeOnSink[T any] struct {
	*Sink[T]

	sched esched.Scheduler

	mu      sync.Mutex
	pending queue[Event[T]]
	running bool
}

func (s *observeOnSink[T]) On(e Event[T]) {
	if s.Disposed() {
		return
	}

	s.mu.Lock()
	s.pending.push(e)
	start := !s.running
	s.running = true
	s.mu.Unlock()

	if !start {
		return
	}

	run := s.sched.Schedule(s.drain)
	if d, ok := run.(interface{ Disposed() bool }); ok && d.Disposed() && !s.Disposed() {
		// Nothing disposes the run handle except a refused submission.
		s.mu.Lock()
		s.pending = queue[Event[T]]{}
		s.mu.Unlock()

		s.Dispose()
	}
}

func (s *observeOnSink[T]) drain() edispose.Disposable {
	for {
		if s.Disposed() {
			return nil
		}

		s.mu.Lock()
		if s.pending.len() == 0 {
			s.running = false
			s.mu.Unlock()
			return nil
		}
		e := s.pending.pop()
		s.mu.Unlock()

		s.ForwardOn(e)
		if e.IsStop() {
			s.Dispose()
			return nil
		}
	}
}
