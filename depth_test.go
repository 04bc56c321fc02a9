package coopsched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeepExitCollapsesIntermediateHole checks the P2/P3-style depth
// invariant end to end: b terminates (and becomes a Hole) while c, a
// shallower sibling, is still live; when c later terminates too, the unwind
// must collapse both c's own slot and b's Hole in the same step, because
// b's depth sits strictly above the new max once c is gone — not just
// reclaim c's own slot and leave b stuck as a permanent Hole.
func TestDeepExitCollapsesIntermediateHole(t *testing.T) {
	sched := New(WithMaxThreads(3), WithPlatform(&fakePlatform{}))

	var afterCollapse1, afterCollapse2 error

	// a: admitted first (depth 1). Outlives b and c; after its second
	// resume, both b and c are expected to have already terminated and
	// been reclaimed, so the pool has two free slots again.
	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		tc.Yield()
		tc.Yield()
		afterCollapse1 = sched.Admit(func(*TaskContext) {}, `later1`, 0, nil)
		afterCollapse2 = sched.Admit(func(*TaskContext) {}, `later2`, 0, nil)
	}, `a`, 0, nil))

	// b: admitted second (depth 2). Yields once, by which point c has
	// been assigned depth 3, then returns: its depth is strictly below the
	// live max depth, so it becomes a Hole rather than collapsing.
	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		tc.Yield()
	}, `b`, 0, nil))

	// c: admitted third (depth 3, the current max). Yields once then
	// returns; its own termination is the "most shallow live" case, which
	// re-examines whether any held Hole (b's) now sits above the new max
	// depth and clears it too.
	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		tc.Yield()
	}, `c`, 0, nil))

	sched.Service()

	assert.NoError(t, afterCollapse1)
	assert.NoError(t, afterCollapse2)
}
