package coopsched

// Notify wakes at most one task waiting on semID, per spec §4.9's
// single-target variant. Safe to call from any goroutine, including one
// standing in for an interrupt service routine — the only work done here
// is a guarded scan and two field writes per matched slot.
func (s *Scheduler) Notify(semID int) {
	s.notify(semID, false)
}

// NotifyAll wakes every task waiting on semID whose predicate (if any)
// currently holds. Same calling-context guarantees as Notify.
func (s *Scheduler) NotifyAll(semID int) {
	s.notify(semID, true)
}

func (s *Scheduler) notify(semID int, all bool) {
	woken := 0

	s.mu.Lock()
	for i := range s.slots {
		sl := &s.slots[i]
		if sl.state != Wait || sl.semID != semID {
			continue
		}
		if sl.predicate != nil && !sl.predicate(sl.cv) {
			continue
		}
		sl.notif = true
		sl.state = Run
		s.idleN--
		woken++
		if !all {
			break
		}
	}
	s.mu.Unlock()

	s.instr.notifyEvent(semID, all, woken)
}

// consolidateIdle implements spec §4.7: when every non-idle, non-waiting,
// non-hole slot is gone but at least one Idle/Wait slot remains, compute
// the nearest wake-up and either wake slots that are already due or ask the
// platform to idle for the remaining distance. Repeats until something is
// runnable or nothing is idle any more.
func (s *Scheduler) consolidateIdle() {
	for {
		s.mu.Lock()
		runnable := s.busyN - s.holeN - s.idleN
		idle := s.idleN
		s.mu.Unlock()

		if runnable > 0 || idle == 0 {
			return
		}

		now := s.platform.Tick()
		var (
			minIdle Tick
			haveMin bool
			wokeAny bool
		)

		s.mu.Lock()
		for i := range s.slots {
			sl := &s.slots[i]
			var target Tick
			switch {
			case sl.state == Idle:
				target = sl.idleUntil
			case sl.state == Wait && !sl.inf:
				target = sl.waitUntil
			default:
				continue
			}

			if isTickOver(now, target) {
				sl.state = Run
				s.idleN--
				wokeAny = true
				continue
			}

			dist := target - now
			if !haveMin || dist < minIdle {
				minIdle = dist
				haveMin = true
			}
		}
		s.mu.Unlock()

		if wokeAny {
			continue
		}

		if haveMin {
			s.platform.Idle(minIdle)
		} else {
			s.platform.Idle(0)
		}
	}
}
