package coopsched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestYieldAfterSkipsWithinPeriod checks that once YieldAfter has yielded
// and re-armed its deadline, further calls before that deadline elapses
// fall straight through without suspending — observable here as "sibling"
// only ever getting a single interleaved turn, despite "worker" calling
// YieldAfter three times.
func TestYieldAfterSkipsWithinPeriod(t *testing.T) {
	plat := &fakePlatform{}
	sched := New(WithMaxThreads(2), WithPlatform(plat))

	var order []string
	var afterCheckpoints int
	var after Tick

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		for i := 0; i < 3; i++ {
			// the zero-valued deadline is already "over" the first time
			// through, so this call suspends exactly once; the clock
			// never advances on its own (nothing here calls Idle), so
			// the re-armed deadline is never reached again.
			tc.YieldAfter(&after, 1000)
			afterCheckpoints++
		}
		order = append(order, `worker:done`)
	}, `worker`, 0, nil))

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		for i := 0; i < 2; i++ {
			order = append(order, `sibling:turn`)
			tc.Yield()
		}
	}, `sibling`, 0, nil))

	sched.Service()

	assert.Equal(t, 3, afterCheckpoints)
	assert.Equal(t, []string{`sibling:turn`, `worker:done`, `sibling:turn`}, order)
}

// TestYieldAfterYieldsOncePeriodElapses checks the other half: once the
// platform clock has advanced past the tracked deadline, YieldAfter
// suspends and hands a turn to a sibling task before returning.
func TestYieldAfterYieldsOncePeriodElapses(t *testing.T) {
	plat := &fakePlatform{}
	sched := New(WithMaxThreads(2), WithPlatform(plat))

	var order []string

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		var after Tick
		plat.advance(50) // now already past a period-0-seeded deadline
		tc.YieldAfter(&after, 1000)
		order = append(order, `busy:resumed`)
	}, `busy`, 0, nil))

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		order = append(order, `sibling:ran`)
	}, `sibling`, 0, nil))

	sched.Service()

	assert.Equal(t, []string{`sibling:ran`, `busy:resumed`}, order)
}

// TestYieldAfterArmsDeadlineFromResumeTick checks that the re-armed
// deadline is measured from the tick at which the task resumes, not the
// tick at which the suspend decision was made: while "worker" is
// suspended, "sibling" advances the platform clock, and the deadline
// worker records afterward must reflect that advance.
func TestYieldAfterArmsDeadlineFromResumeTick(t *testing.T) {
	plat := &fakePlatform{}
	sched := New(WithMaxThreads(2), WithPlatform(plat))

	var afterValues []Tick

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		var after Tick
		for i := 0; i < 2; i++ {
			tc.YieldAfter(&after, 100)
			afterValues = append(afterValues, after)
		}
	}, `worker`, 0, nil))

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		for i := 0; i < 2; i++ {
			plat.advance(30)
			tc.Yield()
		}
	}, `sibling`, 0, nil))

	sched.Service()

	// resumed at tick 30 (after sibling's first advance), so the re-armed
	// deadline is 30+100=130, not 0+100=100 (which a pre-yield-tick
	// implementation would have recorded instead).
	assert.Equal(t, []Tick{130, 130}, afterValues)
}
