package coopsched

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Tick is an opaque, monotonically increasing clock value, in units chosen
// by the host platform (commonly milliseconds). It wraps around on
// overflow; all arithmetic in this package accounts for that via the
// distance-based comparison implemented by isTickOver.
type Tick uint32

// maxTick returns the all-ones value for T, i.e. the widest representable
// tick, immediately prior to wraparound.
func maxTick[T constraints.Unsigned]() T {
	return ^T(0)
}

// overTicks returns the window, in ticks, within which a target is
// considered to lie in the past (or be equal) rather than the future. It has
// the low half of T's bits set: one "hex digit" of ones for a byte, i.e.
// 0x0F/0x00FF/0x0000FFFF/0x00000000FFFFFFFF for widths 1/2/4/8 bytes.
func overTicks[T constraints.Unsigned]() T {
	var zero T
	bits := uint(unsafe.Sizeof(zero)) * 8
	return maxTick[T]() >> (bits / 2)
}

// maxPeriod returns the largest legal sleep/wait period for T: passing a
// larger period to Idle/WaitCond/YieldAfter is undefined, per spec, and is
// not validated by this package.
func maxPeriod[T constraints.Unsigned]() T {
	return maxTick[T]() - overTicks[T]() + 1
}

// isTickOver reports whether t1 is at or after t2, tolerant of t1/t2
// wrapping around the width of T. The comparison splits the ring into a
// small "past or equal" window and a large "future" remainder: only if the
// unsigned difference (t1 - t2) is less than overTicks[T]() is t1
// considered to be at-or-after t2; any larger difference reads as t2 lying
// up to maxPeriod[T]() ticks ahead of t1.
func isTickOver[T constraints.Unsigned](t1, t2 T) bool {
	return (t1 - t2) < overTicks[T]()
}

// Exported, concrete-width constants and helpers for Tick (uint32).
const (
	// MaxTick is the all-ones Tick value.
	MaxTick Tick = 1<<32 - 1

	// OverTicks is the window within which IsTickOver treats a target as
	// having already occurred.
	OverTicks Tick = MaxTick >> 16

	// MaxPeriod is the largest legal period accepted by Idle, WaitCond and
	// YieldAfter.
	MaxPeriod Tick = MaxTick - OverTicks + 1
)

// IsTickOver reports whether t1 is at or after t2 on the Tick ring,
// tolerant of wraparound within OverTicks of the comparison point.
func IsTickOver(t1, t2 Tick) bool {
	return isTickOver(t1, t2)
}
