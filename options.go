package coopsched

import (
	"fmt"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

const (
	// DefaultMaxThreads mirrors CONFIG_MAX_THREADS.
	DefaultMaxThreads = 5

	// DefaultScratchSize mirrors CONFIG_DEFAULT_STACK_SIZE, repurposed as
	// the default size of a task's optional water-mark scratch buffer.
	DefaultScratchSize = 0x100
)

type (
	// Option configures a Scheduler, for use with New.
	Option func(c *config)

	config struct {
		maxThreads    int
		scratchSize   int
		noExitStatic  bool
		logger        *logiface.Logger[*stumpy.Event]
		platform      Platform
		traceRates    map[time.Duration]int
	}
)

func newConfig(opts []Option) *config {
	c := &config{
		maxThreads:  DefaultMaxThreads,
		scratchSize: DefaultScratchSize,
		platform:    defaultPlatform{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// WithMaxThreads sets the fixed capacity of the thread pool. Corresponds to
// CONFIG_MAX_THREADS. Panics if n is not positive.
func WithMaxThreads(n int) Option {
	if n <= 0 {
		panic(fmt.Errorf(`coopsched: invalid max threads: %d`, n))
	}
	return func(c *config) { c.maxThreads = n }
}

// WithScratchSize sets the default size, in bytes, of the scratch buffer
// each thread is given on its first suspension, used for stack water-mark
// tracking (see TaskContext.Scratch and StackWaterMark). Corresponds to
// CONFIG_DEFAULT_STACK_SIZE. Panics if n is not positive.
func WithScratchSize(n int) Option {
	if n <= 0 {
		panic(fmt.Errorf(`coopsched: invalid scratch size: %d`, n))
	}
	return func(c *config) { c.scratchSize = n }
}

// WithNoExitStatic configures the scheduler for a fixed, static population
// of threads that are never expected to terminate. It corresponds to
// CONFIG_NOEXIT_STATIC_THREADS: no depth or Hole bookkeeping is done, and a
// thread returning from its proc is a fatal invariant violation that makes
// Service panic. Use only when all threads admitted for the lifetime of the
// scheduler are known ahead of time.
func WithNoExitStatic(enabled bool) Option {
	return func(c *config) { c.noExitStatic = enabled }
}

// WithLogger attaches a logiface logger used for debug/trace instrumentation
// of scheduler internals (admission, first-dispatch and termination state
// transitions, dispatch decisions, scheduler idle, and notify events as
// gated by WithNotifyTraceRates). Suspensions via Yield, Idle or WaitCond
// are not logged. Corresponds to COOP_DEBUG plus coop_dbg_log_cb. A nil
// logger (the default) disables all instrumentation.
func WithLogger(logger *logiface.Logger[*stumpy.Event]) Option {
	return func(c *config) { c.logger = logger }
}

// WithPlatform overrides the tick source and idle hook used by the
// scheduler. Corresponds to CONFIG_TICK_CB_ALT / CONFIG_IDLE_CB_ALT /
// coop_tick_cb / coop_idle_cb. The default Platform uses the real wall
// clock and a real sleep.
func WithPlatform(p Platform) Option {
	if p == nil {
		panic(fmt.Errorf(`coopsched: nil platform`))
	}
	return func(c *config) { c.platform = p }
}

// WithNotifyTraceRates bounds how often Notify/NotifyAll may emit trace-level
// log events, keyed by semaphore id, via an internal sliding-window limiter.
// This exists because Notify/NotifyAll must remain safe to call from
// interrupt-like contexts (e.g. a goroutine servicing a hardware event),
// where unbounded logging is not acceptable. Rates follow the same shape
// accepted by a sliding-window rate limiter: a map of window duration to
// maximum event count, requiring shorter windows to carry counts no larger
// than longer ones. A nil/empty map (the default) disables trace logging
// from notify paths entirely, regardless of WithLogger.
func WithNotifyTraceRates(rates map[time.Duration]int) Option {
	return func(c *config) { c.traceRates = rates }
}
