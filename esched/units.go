package esched

import (
	"context"
	"time"

	"github.com/gordian-engine/eddy/edispose"
)

// submitFunc hands fn to an execution substrate.
// It reports false if the substrate has stopped and fn will never run.
type submitFunc func(fn func()) bool

func scheduleNow(submit submitFunc, action func() edispose.Disposable) edispose.Disposable {
	cancel := edispose.NewSingleAssignment()

	ok := submit(func() {
		if cancel.Disposed() {
			return
		}

		// If cancel is disposed between the check and here,
		// Set disposes the action's result immediately.
		cancel.Set(action())
	})
	if !ok {
		// The action will never run; report that through the handle.
		cancel.Dispose()
	}

	return cancel
}

func scheduleRelative(
	submit submitFunc, delay time.Duration, action func() edispose.Disposable,
) edispose.Disposable {
	if delay <= 0 {
		return scheduleNow(submit, action)
	}

	c := edispose.NewComposite()

	timer := time.AfterFunc(delay, func() {
		submit(func() {
			if c.Disposed() {
				return
			}
			c.Add(action())
		})
	})

	c.Add(edispose.Func(func() {
		timer.Stop()
	}))

	return c
}

func schedulePeriodic(
	ctx context.Context,
	submit submitFunc,
	initialDelay, period time.Duration,
	action func(),
) edispose.Disposable {
	stop := make(chan struct{})
	cancelled := edispose.NewBoolean()

	go runPeriodic(ctx, submit, stop, cancelled, initialDelay, max(period, 0), action)

	// The flag is set before stop closes,
	// so a firing already queued on the substrate sees it.
	return edispose.NewBinary(cancelled, edispose.Func(func() {
		close(stop)
	}))
}

// runPeriodic drives a single periodic unit.
// It waits for each firing to finish before arming the next one,
// which is what lets SchedulePeriodicState thread its state without locking.
func runPeriodic(
	ctx context.Context,
	submit submitFunc,
	stop <-chan struct{},
	cancelled *edispose.Boolean,
	initialDelay, period time.Duration,
	action func(),
) {
	timer := time.NewTimer(max(initialDelay, 0))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-stop:
		return
	case <-timer.C:
	}

	// Nil for a zero period, so the tick case below is never selected.
	var tick <-chan time.Time
	if period > 0 {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		fired := make(chan struct{})
		ok := submit(func() {
			defer close(fired)

			if cancelled.Disposed() {
				return
			}

			action()
		})
		if !ok {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-fired:
		}

		if tick == nil {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			default:
				continue
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-tick:
		}
	}
}
