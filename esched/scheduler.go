package esched

import (
	"errors"
	"fmt"
	"time"

	"github.com/gordian-engine/eddy/edispose"
)

// ErrNilAction is wrapped by the panic value
// when a nil action is passed to any schedule method.
var ErrNilAction = errors.New("nil scheduled action")

// Scheduler is a place where work runs.
type Scheduler interface {
	// Now reports the scheduler's notion of the current wall-clock time.
	Now() time.Time

	// Schedule runs action at the earliest opportunity.
	//
	// Disposing the returned value before action starts prevents it from running.
	// Disposing it afterward disposes whatever action returned.
	// If the scheduler has already stopped, action never runs
	// and the returned value is already disposed.
	Schedule(action func() edispose.Disposable) edispose.Disposable

	// ScheduleRelative runs action once, after delay has elapsed
	// from the time of the call.
	// A non-positive delay is the same as calling Schedule.
	//
	// Disposing the returned value before the delay elapses cancels the unit.
	// Disposing it afterward disposes whatever action returned.
	ScheduleRelative(delay time.Duration, action func() edispose.Disposable) edispose.Disposable

	// SchedulePeriodic runs action first after initialDelay,
	// then every period until the returned value is disposed.
	// A negative period is treated as zero,
	// which runs action back to back as fast as the scheduler allows.
	//
	// Firings of a single periodic unit never overlap.
	// Disposing stops future firings; a firing already in progress completes.
	SchedulePeriodic(initialDelay, period time.Duration, action func()) edispose.Disposable
}

// ScheduleState is [Scheduler.Schedule] with an explicit state value
// passed through to action.
func ScheduleState[S any](
	s Scheduler, state S, action func(S) edispose.Disposable,
) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("ScheduleState"))
	}
	return s.Schedule(func() edispose.Disposable {
		return action(state)
	})
}

// ScheduleRelativeState is [Scheduler.ScheduleRelative] with an explicit state value
// passed through to action.
func ScheduleRelativeState[S any](
	s Scheduler, state S, delay time.Duration, action func(S) edispose.Disposable,
) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("ScheduleRelativeState"))
	}
	return s.ScheduleRelative(delay, func() edispose.Disposable {
		return action(state)
	})
}

// SchedulePeriodicState is [Scheduler.SchedulePeriodic]
// where each firing receives the state returned by the previous firing,
// starting with state.
func SchedulePeriodicState[S any](
	s Scheduler, state S, initialDelay, period time.Duration, action func(S) S,
) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("SchedulePeriodicState"))
	}

	// Firings are serialized by the scheduler,
	// so cur needs no further synchronization.
	cur := state
	return s.SchedulePeriodic(initialDelay, period, func() {
		cur = action(cur)
	})
}

func nilActionPanic(caller string) error {
	return fmt.Errorf("BUG: %s called with nil action: %w", caller, ErrNilAction)
}

var (
	_ Scheduler = (*Concurrent)(nil)
	_ Scheduler = immediate{}
)
