package coopsched

import "sync"

// traceRing is a small fixed-capacity FIFO of recent dispatch events,
// retrievable via Scheduler.RecentTrace for introspection and tests (e.g.
// to assert S1's turn-by-turn dispatch order without scraping log output).
// It borrows the power-of-2 masked indexing used by go-catrate's ring
// buffer, but is append-only and FIFO-ordered rather than sorted, so it is
// kept as its own small type rather than reusing that package's
// (unexported, ordered) ring.
type traceRing struct {
	mu   sync.Mutex
	buf  []string
	r, w uint
}

func newTraceRing(capacity int) *traceRing {
	size := 1
	for size < capacity {
		size <<= 1
	}
	if size == 0 {
		size = 1
	}
	return &traceRing{buf: make([]string, size)}
}

func (t *traceRing) mask(v uint) uint {
	return v & (uint(len(t.buf)) - 1)
}

func (t *traceRing) push(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.mask(t.w)] = s
	t.w++
	if t.w-t.r > uint(len(t.buf)) {
		t.r++
	}
}

// Snapshot returns the recorded events in the order they were pushed,
// oldest first.
func (t *traceRing) Snapshot() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.w - t.r
	out := make([]string, 0, n)
	for i := uint(0); i < n; i++ {
		out = append(out, t.buf[t.mask(t.r+i)])
	}
	return out
}
