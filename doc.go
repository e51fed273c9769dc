// Package eddy is a reactive-stream engine:
// a library for composing asynchronous, push-based sequences of values
// with deterministic resource cleanup.
//
// An [Observable] produces a sequence of [Event] values to an [Observer].
// Every event is one of next(value), error(failure), or completed;
// error and completed are terminal, and nothing follows them.
// Subscribing returns an [edispose.Disposable];
// the subscriber owns it and disposes it when it loses interest.
//
// Operators couple their downstream observer to their upstream subscriptions
// through a [Sink], which silently drops anything forwarded after disposal.
// Operators with state shared across several upstream sources
// serialize their event handling with an [elock.Recursive],
// usually through [Synchronize].
// [ZipSlice], [Zip2], and [Zip3] are the canonical multi-source operators
// built this way: each source's observer is wrapped in [Synchronize]
// with the zip's lock.
//
// Time-based sources such as [Interval] and [Timer],
// and the [ObserveOn] and [SubscribeOn] operators,
// consult an [esched.Scheduler] to decide where and when callbacks run.
package eddy
