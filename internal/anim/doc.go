// Package anim provides the algorithm-animation engine.
//
// The package turns a plain sorting or searching routine into a cancellable,
// pausable, speed-controlled sequence of observable steps:
//
//   - [StepEvent]: one observable unit of progress (compare, mutate, highlight,
//     mark-sorted, found, not-found)
//   - [Sequence]: a lazy, finite stream of StepEvents for one invocation
//   - [Session]: array, counters, speed and selected algorithm for one lifecycle
//   - [Controller]: the Idle/Running/Paused/Completed state machine
//   - [Renderer]: the consumer of events, counters and snapshots
//
// # Example
//
//	reg := catalog.NewRegistry()
//	ctrl := anim.NewController(reg, renderer, anim.WithClock(anim.RealClock{}))
//	_ = ctrl.LoadArray([]int{5, 3, 8, 1})
//	err := ctrl.Start(ctx)
//
// # Concurrency
//
// Start blocks on the calling goroutine until the run completes, pauses,
// resets or fails. Pause, Reset and the selection commands may be called from
// any goroutine. Renderer callbacks run on the Start goroutine while the
// Controller lock is held, so a Renderer must not call back into the
// Controller synchronously.
package anim
