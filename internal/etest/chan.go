package etest

import (
	"testing"
	"time"
)

// ScheduleTimeout is the upper bound used by the "soon" helpers.
// It is generous so that slow CI machines do not cause spurious failures.
const ScheduleTimeout = 2 * time.Second

// SendSoon sends v on ch, failing t if the send does not complete
// within [ScheduleTimeout].
func SendSoon[T any](t testing.TB, ch chan<- T, v T) {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout)
	defer timer.Stop()

	select {
	case ch <- v:
	case <-timer.C:
		t.Fatalf("timed out after %s sending %v", ScheduleTimeout, v)
	}
}

// ReceiveSoon returns the next value from ch, failing t if nothing arrives
// within [ScheduleTimeout].
// A closed channel counts as a receive and yields the zero value.
func ReceiveSoon[T any](t testing.TB, ch <-chan T) T {
	t.Helper()

	timer := time.NewTimer(ScheduleTimeout)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v
	case <-timer.C:
		t.Fatalf("timed out after %s waiting to receive", ScheduleTimeout)
	}

	panic("unreachable")
}

// IsSending fails t if ch does not have a value (or is not closed)
// ready to receive right now.
func IsSending[T any](t testing.TB, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	default:
		t.Fatal("channel was not sending")
	}

	panic("unreachable")
}

// NotSending fails t if ch has a value ready to receive right now.
func NotSending[T any](t testing.TB, ch <-chan T) {
	t.Helper()

	select {
	case v := <-ch:
		t.Fatalf("expected no value, got %v", v)
	default:
	}
}

// NotSendingFor fails t if ch yields a value within d.
func NotSendingFor[T any](t testing.TB, ch <-chan T, d time.Duration) {
	t.Helper()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case v := <-ch:
		t.Fatalf("expected no value within %s, got %v", d, v)
	case <-timer.C:
	}
}
