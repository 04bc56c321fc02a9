package coopsched

// This file implements the saved-context primitive (spec §4.3) using design
// option (d) from §9: one goroutine per task, each with its own real Go
// stack, handed off to explicitly via a pair of unbuffered channels acting
// as a baton. Exactly one side holds the baton at any time, which is what
// gives the scheduler its single-task-runs-at-a-time guarantee despite each
// task owning a genuine OS-scheduled goroutine.
//
// This sidesteps the shared stack-arena/unwind discipline the original
// implementation needs (there is no single physical stack to carve frames
// from), but the HOLE/EMPTY/depth bookkeeping of §4.4-§4.5 is kept anyway:
// it still gates slot reuse and observably matches scenario S6 and
// properties P2/P3, just without reclaiming an actual memory region.

// baton is a two-channel rendezvous used to hand control between the
// dispatcher goroutine and a single task goroutine. Both channels are
// unbuffered, so a send only completes once the other side is ready to
// receive it: the primitive never lets both sides believe they hold
// control at once.
type baton struct {
	toTask  chan struct{}
	toSched chan struct{}
}

func newBaton() *baton {
	return &baton{
		toTask:  make(chan struct{}),
		toSched: make(chan struct{}),
	}
}

// run hands control to the task side and blocks until it is handed back.
// Called only from the dispatcher goroutine.
func (b *baton) run() {
	b.toTask <- struct{}{}
	<-b.toSched
}

// suspend hands control back to the dispatcher and blocks until it is
// handed back to this task. Called only from a task's own goroutine, which
// is exactly the meaning of "capture exe_ctx, jump to scheduler exe_ctx" in
// §4.4/§4.8: everything after the blocking receive is the "later resume".
func (b *baton) suspend() {
	b.toSched <- struct{}{}
	<-b.toTask
}

// awaitFirstRun blocks until the dispatcher first hands control to this
// task's goroutine. Called once, by the task goroutine, before it invokes
// the user's proc.
func (b *baton) awaitFirstRun() {
	<-b.toTask
}

// finish reports task completion back to the dispatcher. It does not wait
// for anything further: the goroutine backing a terminated task exits
// immediately afterwards.
func (b *baton) finish() {
	b.toSched <- struct{}{}
}
