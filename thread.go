package coopsched

// slot is one row of the scheduler's thread table (spec §3 ThreadContext).
// Every field is owned by the dispatcher goroutine except notif and state,
// which Notify/NotifyAll may also write from an arbitrary goroutine; those
// writes are made under Scheduler.mu (see notify.go and the dispatch loop).
type slot struct {
	proc  func(*TaskContext)
	name  string
	arg   any
	state ThreadState

	scratchSize int
	scratch     []byte

	// depth is this slot's 1-based position in admission order among the
	// slots currently live or Hole; see terminate in scheduler.go.
	depth int

	idleUntil Tick

	waitUntil Tick
	semID     int
	predicate func(cv any) bool
	cv        any
	notif     bool
	inf       bool

	switchTick Tick

	baton       *baton
	finished    bool
	abortReturn bool
}

// TaskContext is the handle a task's proc function uses to suspend itself
// and interact with its own slot. It corresponds to the implicit
// "current thread" the original library's task-facing API operates on.
type TaskContext struct {
	sched *Scheduler
	idx   int
}

func (tc *TaskContext) slot() *slot { return &tc.sched.slots[tc.idx] }

// Name returns the name the task was admitted with, or "" if none was
// given.
func (tc *TaskContext) Name() string { return tc.slot().name }

// Arg returns the opaque argument the task was admitted with.
func (tc *TaskContext) Arg() any { return tc.slot().arg }

// Scheduler returns the scheduler this task runs under.
func (tc *TaskContext) Scheduler() *Scheduler { return tc.sched }

// Scratch returns the task's scratch buffer, lazily allocated (and filled
// with the guard byte) on first suspension. A task that never suspends
// never gets one; Scratch returns nil in that case. See StackWaterMark.
func (tc *TaskContext) Scratch() []byte { return tc.slot().scratch }

// StackWaterMark returns the heuristic high-water estimate over the task's
// Scratch buffer, per spec §4.10. Returns 0 if the task has not yet
// suspended (and so has no scratch buffer).
func (tc *TaskContext) StackWaterMark() int {
	return stackWaterMark(tc.slot().scratch)
}

// suspendAs is the common tail of Yield/Idle/WaitCond: lazily carve the
// scratch buffer, record the new state, and hand control back to the
// dispatcher until it is handed back.
func (tc *TaskContext) suspendAs(state ThreadState) {
	sl := tc.slot()
	if sl.scratch == nil {
		sl.scratch = newScratch(sl.scratchSize)
	}
	s := tc.sched
	s.mu.Lock()
	sl.state = state
	s.mu.Unlock()
	sl.baton.suspend()
}

// Yield transfers control to the scheduler and returns once this task is
// next dispatched. Corresponds to yield().
func (tc *TaskContext) Yield() {
	tc.suspendAs(Run)
}

// Idle suspends the task until at least period ticks have elapsed. A
// period of 0 is equivalent to Yield. Corresponds to idle(period).
func (tc *TaskContext) Idle(period Tick) {
	if period == 0 {
		tc.Yield()
		return
	}
	s := tc.sched
	sl := tc.slot()
	now := s.platform.Tick()
	s.mu.Lock()
	sl.idleUntil = now + period
	s.idleN++
	s.mu.Unlock()
	s.instr.idleEnter(period)
	tc.suspendAs(Idle)
}

// YieldAfter yields only if at least period ticks have elapsed since
// *after was last updated by this call; otherwise it returns immediately
// without suspending. On yielding, *after is advanced by period measured
// from the tick at resume, not from the tick at which the check was made,
// matching yield_after's re-read of the tick callback after its own
// _yield() call returns (coop_threads.c). Corresponds to
// yield_after(&after, period): a helper for bounding in-task run time in a
// hot loop without yielding every single iteration.
func (tc *TaskContext) YieldAfter(after *Tick, period Tick) {
	if !isTickOver(tc.sched.platform.Tick(), *after) {
		return
	}
	tc.Yield()
	*after = tc.sched.platform.Tick() + period
}

// WaitCond suspends the task until a matching Notify/NotifyAll wakes it (a
// call for which predicate is nil, or returns true when invoked with cv,
// evaluated at notify time, not here), or until timeout ticks have
// elapsed. A timeout of 0 waits indefinitely. Returns nil on notification,
// ErrTimeout on timeout. Corresponds to wait_cond(sem_id, timeout, predic,
// cv).
func (tc *TaskContext) WaitCond(semID int, timeout Tick, predicate func(cv any) bool, cv any) error {
	s := tc.sched
	sl := tc.slot()

	s.mu.Lock()
	sl.semID = semID
	sl.predicate = predicate
	sl.cv = cv
	sl.notif = false
	if timeout != 0 {
		sl.waitUntil = s.platform.Tick() + timeout
		sl.inf = false
	} else {
		sl.inf = true
	}
	s.idleN++
	s.mu.Unlock()

	tc.suspendAs(Wait)

	s.mu.Lock()
	notified := sl.notif
	s.mu.Unlock()
	if notified {
		return nil
	}
	return ErrTimeout
}

// Wait is WaitCond with no predicate: an unconditional binary-semaphore
// wait. Corresponds to wait(sem_id, timeout).
func (tc *TaskContext) Wait(semID int, timeout Tick) error {
	return tc.WaitCond(semID, timeout, nil, nil)
}
