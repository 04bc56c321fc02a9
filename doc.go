// Package coopsched implements a lightweight cooperative threading runtime:
// a fixed-capacity pool of named tasks, sharing one scheduler, that yield to
// each other at explicit points and may suspend for timed idle or for
// notification on a semaphore-like integer id.
//
// Unlike the library it is modelled on (a single-core embedded C runtime
// that multiplexes task stacks over one physical stack via setjmp/longjmp),
// this port gives every task its own goroutine. The scheduler still only
// ever runs one task at a time — control is handed off explicitly via
// Yield, Idle, WaitCond or return, never preempted — but the "stack" each
// task runs on is a real Go stack, managed by the Go runtime. See
// SPEC_FULL.md for the full rationale.
package coopsched
