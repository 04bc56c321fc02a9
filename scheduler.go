package coopsched

import "sync"

// Scheduler is a fixed-capacity pool of cooperative tasks plus the
// round-robin dispatcher that runs them. It corresponds to the process-wide
// SchedulerContext singleton of spec §3, made into an explicit value per
// §9's "better-factored design" note: callers may run any number of
// independent Scheduler values, each with its own thread table.
type Scheduler struct {
	mu sync.Mutex

	slots   []slot
	curThrd int
	busyN   int
	holeN   int
	idleN   int
	depth   int

	defaultScratchSize int
	noExitStatic       bool

	platform Platform
	instr    instrumentation
	trace    *traceRing
}

// New constructs a Scheduler. It does not start dispatching until Service
// is called.
func New(opts ...Option) *Scheduler {
	c := newConfig(opts)
	return &Scheduler{
		slots:              make([]slot, c.maxThreads),
		curThrd:            -1,
		defaultScratchSize: c.scratchSize,
		noExitStatic:       c.noExitStatic,
		platform:           c.platform,
		instr:              newInstrumentation(c),
		trace:              newTraceRing(64),
	}
}

// RecentTrace returns a snapshot of the scheduler's most recent dispatch
// events, oldest first, as "name:new" (first dispatch) or "name:run"
// (subsequent dispatch) entries. Corresponds to SPEC_FULL §D.4's
// introspection hook; safe to call concurrently with Service.
func (s *Scheduler) RecentTrace() []string {
	return s.trace.Snapshot()
}

// Admit adds a new task to the pool. proc must be non-nil. name is purely
// descriptive. scratchSize, if <= 0, defaults to the scheduler's configured
// default (see WithScratchSize). arg is passed through opaque, retrievable
// via TaskContext.Arg. Returns ErrInvalidArg if proc is nil, ErrLimit if
// the pool has no free slot. Corresponds to sched_thread(...).
func (s *Scheduler) Admit(proc func(*TaskContext), name string, scratchSize int, arg any) error {
	if proc == nil {
		return ErrInvalidArg
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busyN >= len(s.slots) {
		return ErrLimit
	}

	idx := -1
	for i := range s.slots {
		if s.slots[i].state == Empty {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrLimit
	}

	sz := scratchSize
	if sz <= 0 {
		sz = s.defaultScratchSize
	}

	s.slots[idx] = slot{
		proc:        proc,
		name:        name,
		arg:         arg,
		state:       New,
		scratchSize: sz,
		baton:       newBaton(),
	}
	s.busyN++

	go s.taskMain(idx)

	s.instr.stateChange(idx, name, Empty, New)
	return nil
}

// taskMain is the body of the goroutine backing one thread-table slot. It
// blocks until the dispatcher first hands it control, then runs proc to
// completion and reports its termination back to the dispatcher.
func (s *Scheduler) taskMain(idx int) {
	sl := &s.slots[idx]
	sl.baton.awaitFirstRun()

	tc := &TaskContext{sched: s, idx: idx}
	sl.proc(tc)

	// CONFIG_NOEXIT_STATIC_THREADS: a thread admitted under this mode is
	// assumed never to return; returning anyway is a fatal invariant
	// violation, not a normal termination to unwind. The panic itself is
	// raised back on the dispatcher's goroutine (see dispatchOne), so it
	// surfaces at the Service call site rather than crashing silently out
	// of this task goroutine.
	sl.abortReturn = s.noExitStatic

	sl.finished = true
	sl.baton.finish()
}

// Service runs the dispatcher loop until every admitted task (including
// any admitted by other tasks along the way) has terminated. Corresponds
// to coop_sched_service().
func (s *Scheduler) Service() {
	for {
		s.mu.Lock()
		busy := s.busyN
		s.mu.Unlock()
		if busy == 0 {
			break
		}

		s.consolidateIdle()

		s.curThrd = (s.curThrd + 1) % len(s.slots)
		s.dispatchOne(s.curThrd)
	}

	*s = Scheduler{
		slots:              make([]slot, len(s.slots)),
		curThrd:            -1,
		defaultScratchSize: s.defaultScratchSize,
		noExitStatic:       s.noExitStatic,
		platform:           s.platform,
		instr:              s.instr,
		trace:              s.trace,
	}
}

// dispatchOne handles one slot's turn in the round-robin loop (spec §4.6
// step 3).
func (s *Scheduler) dispatchOne(i int) {
	sl := &s.slots[i]
	now := s.platform.Tick()

	s.mu.Lock()
	state := sl.state
	switch state {
	case Idle:
		if isTickOver(now, sl.idleUntil) {
			sl.state = Run
			s.idleN--
			state = Run
		}
	case Wait:
		if !sl.inf && isTickOver(now, sl.waitUntil) {
			sl.state = Run
			s.idleN--
			state = Run
		}
	}
	s.mu.Unlock()

	switch state {
	case Empty, Hole:
		return
	case Idle, Wait:
		return
	case New:
		if !s.noExitStatic {
			s.depth++
			sl.depth = s.depth
		}
		sl.switchTick = now
		s.instr.stateChange(i, sl.name, New, Run)
		s.trace.push(sl.name + ":new")
		sl.baton.run()
	case Run:
		sl.switchTick = now
		s.instr.dispatch(i, sl.name)
		s.trace.push(sl.name + ":run")
		sl.baton.run()
	default:
		return
	}

	if sl.finished {
		if sl.abortReturn {
			panic(`coopsched: task "` + sl.name + `" returned under NoExitStatic`)
		}
		s.terminate(i)
	}
}

// terminate implements the unwind/HOLE protocol of spec §4.4, adapted from
// real stack reclamation to slot-state bookkeeping: depth is still
// assigned on first dispatch and still gates whether a terminating slot
// becomes a Hole (waiting on shallower siblings) or triggers an immediate
// collapse of any trailing Holes.
func (s *Scheduler) terminate(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl := &s.slots[i]

	if sl.depth < s.depth {
		sl.state = Hole
		s.holeN++
		s.instr.stateChange(i, sl.name, Run, Hole)
		return
	}

	// most shallow live slot: collapse.
	sl.state = Empty
	s.busyN--
	s.instr.stateChange(i, sl.name, Run, Empty)

	// Only slots that have actually started (Run/Idle/Wait) count towards
	// the new depth: a Hole is itself dead weight pending collapse, not a
	// live occupant of the arena.
	newDepth := 0
	for j := range s.slots {
		st := s.slots[j].state
		if (st == Run || st == Idle || st == Wait) && s.slots[j].depth > newDepth {
			newDepth = s.slots[j].depth
		}
	}

	if newDepth+1 < s.depth {
		for j := range s.slots {
			if s.slots[j].state == Hole && s.slots[j].depth >= newDepth+1 {
				s.slots[j].state = Empty
				s.holeN--
				s.busyN--
				s.instr.stateChange(j, s.slots[j].name, Hole, Empty)
			}
		}
	}

	s.depth = newDepth
}
