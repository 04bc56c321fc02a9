package coopsched

// This file ports the __TEST__-gated introspection functions at the
// bottom of coop_threads.c (coop_test_is_shallow, coop_test_get_cur_thrd,
// coop_test_set_cur_thrd, coop_test_get_stack/coop_test_set_stack) as
// unexported methods: not part of the public API, but available to this
// package's own _test.go files for scenarios (like forcing a specific
// round-robin cursor, or pre-seeding a task's scratch buffer) that the
// public Admit/Yield/Wait surface has no other way to set up.

// testIsShallow reports whether the task currently holding the baton is
// the shallowest live task, i.e. whether its own termination would
// collapse immediately rather than become a Hole. Always false under
// NoExitStatic, matching coop_test_is_shallow's #ifdef
// CONFIG_NOEXIT_STATIC_THREADS branch (such a scheduler never tracks hole
// depth in the first place).
func (s *Scheduler) testIsShallow() bool {
	if s.noExitStatic {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.depth == s.slots[s.curThrd].depth
}

// testGetCurThrd returns the slot index of the task the dispatcher most
// recently handed the baton to.
func (s *Scheduler) testGetCurThrd() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.curThrd
}

// testSetCurThrd overrides the dispatcher's round-robin cursor, letting a
// test force which slot Service considers "current" for its next
// +1-modulo step.
func (s *Scheduler) testSetCurThrd(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.curThrd = i
}

// testGetStack returns slot i's scratch buffer directly, without going
// through a TaskContext.
func (s *Scheduler) testGetStack(i int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots[i].scratch
}

// testSetStack overwrites slot i's scratch buffer directly, letting a test
// seed guard-byte patterns StackWaterMark should detect without relying on
// the task itself to have touched them.
func (s *Scheduler) testSetStack(i int, buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[i].scratch = buf
}
