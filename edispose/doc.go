// Package edispose contains the resource-release primitives
// that every subscription and scheduled unit in eddy hands back to its caller.
//
// A [Disposable] has exactly one state transition, from active to disposed.
// Calling Dispose more than once has no further effect.
// Whoever receives a Disposable from a subscribe or schedule call owns it,
// and is responsible for disposing it once the work is no longer needed.
//
// The [Composite] and [NewBinary] containers group disposables
// so that a set of resources is released together.
// Once a container is disposed, anything later added to it
// is disposed immediately.
package edispose
