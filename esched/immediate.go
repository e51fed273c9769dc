package esched

import (
	"context"
	"time"

	"github.com/gordian-engine/eddy/edispose"
)

// Immediate returns a [Scheduler] that runs Schedule actions
// synchronously on the calling goroutine.
//
// Relative and periodic units still wait on timers,
// and run on the timer's goroutine when they fire.
func Immediate() Scheduler {
	return immediate{}
}

type immediate struct{}

func (immediate) Now() time.Time {
	return time.Now()
}

func (immediate) Schedule(action func() edispose.Disposable) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("Immediate.Schedule"))
	}
	return scheduleNow(runInline, action)
}

func (immediate) ScheduleRelative(
	delay time.Duration, action func() edispose.Disposable,
) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("Immediate.ScheduleRelative"))
	}
	return scheduleRelative(runInline, delay, action)
}

func (immediate) SchedulePeriodic(
	initialDelay, period time.Duration, action func(),
) edispose.Disposable {
	if action == nil {
		panic(nilActionPanic("Immediate.SchedulePeriodic"))
	}
	return schedulePeriodic(context.Background(), runInline, initialDelay, period, action)
}

func runInline(fn func()) bool {
	fn()
	return true
}
