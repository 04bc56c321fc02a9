package coopsched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIdleWakesAfterPeriod is scenario S2: a lone task calls Idle(period)
// and the dispatcher, with nothing else runnable, must consolidate onto
// Platform.Idle until the deadline is reached rather than busy-spinning.
func TestIdleWakesAfterPeriod(t *testing.T) {
	plat := &fakePlatform{}
	sched := New(WithMaxThreads(1), WithPlatform(plat))

	var wokeAt Tick

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		tc.Idle(200)
		wokeAt = plat.Tick()
	}, `sleeper`, 0, nil))

	sched.Service()

	assert.True(t, wokeAt >= 200, "expected wake tick >= 200, got %d", wokeAt)
	assert.True(t, plat.idleCallCount() > 0, "expected at least one Platform.Idle call")
}

// TestIdleConsolidatesAcrossMultipleSleepers checks that with several
// idling tasks of different periods, admitted out of deadline order, the
// dispatcher wakes each one no earlier than its own deadline.
func TestIdleConsolidatesAcrossMultipleSleepers(t *testing.T) {
	plat := &fakePlatform{}
	sched := New(WithMaxThreads(3), WithPlatform(plat))

	woke := map[string]Tick{}

	for _, period := range []Tick{300, 100, 200} {
		name := map[Tick]string{300: `slow`, 100: `fast`, 200: `mid`}[period]
		period := period
		require.NoError(t, sched.Admit(func(tc *TaskContext) {
			tc.Idle(period)
			woke[name] = plat.Tick()
		}, name, 0, nil))
	}

	sched.Service()

	assert.True(t, woke[`fast`] >= 100)
	assert.True(t, woke[`mid`] >= 200)
	assert.True(t, woke[`slow`] >= 300)
}
