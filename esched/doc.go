// Package esched decouples when work runs from what work runs.
//
// A [Scheduler] accepts a unit of work to run as soon as possible,
// after a delay, or repeatedly on a period,
// and always returns an [edispose.Disposable] that cancels the unit.
// Schedule calls never block the caller.
//
// [Concurrent] runs work on a shared pool of worker goroutines,
// with no ordering between two units.
// [NewSerial] returns a Concurrent with a single worker,
// which runs units one at a time in submission order;
// that is the way to pin an observer's callbacks to a designated
// execution context.
// [Immediate] runs non-delayed work inline on the calling goroutine.
//
// Scheduled actions must not panic across the scheduler boundary.
// An action that needs to signal failure should do so
// by emitting an error event downstream.
package esched
