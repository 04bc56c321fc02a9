package coopsched

// ThreadState is the lifecycle state of a thread table slot.
type ThreadState uint8

const (
	// Empty is an unused slot, available for Admit.
	Empty ThreadState = iota

	// Hole is a slot whose thread has terminated while a thread admitted
	// at a greater depth was still live, and which is held open until that
	// shallower thread terminates too (see Scheduler.terminate). A Hole
	// slot is not available for Admit until it has been reclaimed back to
	// Empty.
	Hole

	// New is a slot holding an admitted thread that has not yet run.
	New

	// Run is a started, runnable slot: either the one currently holding
	// scheduler control, or one that yielded and awaits its next turn.
	Run

	// Idle is a slot suspended until a tick deadline, via Idle.
	Idle

	// Wait is a slot suspended on WaitCond, pending a matching Notify or
	// NotifyAll.
	Wait
)

func (s ThreadState) String() string {
	switch s {
	case Empty:
		return "EMPTY"
	case Hole:
		return "HOLE"
	case New:
		return "NEW"
	case Run:
		return "RUN"
	case Idle:
		return "IDLE"
	case Wait:
		return "WAIT"
	default:
		return "UNKNOWN"
	}
}

func (s ThreadState) isIdle() bool { return s == Idle }

func (s ThreadState) isWait() bool { return s == Wait }
