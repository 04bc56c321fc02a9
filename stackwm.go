package coopsched

// guardByte is the fill value written across a task's scratch buffer before
// first use, mirroring the 0xA5 guard used by the stack water-mark
// heuristic.
const guardByte = 0xA5

func newScratch(size int) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = guardByte
	}
	return b
}

// stackWaterMark implements the two-ended guard-byte scan of spec §4.10,
// adapted to an opaque per-task scratch buffer rather than a real stack
// pointer: a real Go goroutine stack isn't addressable the way the original
// library's carved stack region is, so StackWaterMark is advisory over
// whatever the task itself chose to touch in Scratch(), not over its actual
// goroutine stack usage.
func stackWaterMark(buf []byte) int {
	n := len(buf)
	if n == 0 {
		return 0
	}

	// tail run: stack assumed to grow to lower addresses, so unused bytes
	// sit at the high-index end.
	tail := 0
	for i := n - 1; i >= 0 && buf[i] == guardByte; i-- {
		tail++
	}

	const ptrSize = 8
	if tail >= ptrSize {
		return n - tail
	}

	// tail looks used (or the buffer is too small to tell); also check a
	// head run, to cover growth-up hosts, and take the larger of the two.
	head := 0
	for i := 0; i < n && buf[i] == guardByte; i++ {
		head++
	}
	if head > tail {
		return n - head
	}
	return n - tail
}
