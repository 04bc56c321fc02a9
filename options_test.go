package coopsched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	sched := New()
	assert.Len(t, sched.slots, DefaultMaxThreads)
	assert.Equal(t, DefaultScratchSize, sched.defaultScratchSize)
}

func TestWithMaxThreadsPanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { WithMaxThreads(0) })
	assert.Panics(t, func() { WithMaxThreads(-1) })
}

func TestWithScratchSizePanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { WithScratchSize(0) })
}

func TestWithPlatformRejectsNil(t *testing.T) {
	assert.Panics(t, func() { WithPlatform(nil) })
}

func TestWithNoExitStaticAbortsOnReturn(t *testing.T) {
	sched := New(WithMaxThreads(1), WithNoExitStatic(true), WithPlatform(&fakePlatform{}))

	require.NoError(t, sched.Admit(func(tc *TaskContext) {
		// returns immediately: fatal under NoExitStatic.
	}, `bad`, 0, nil))

	assert.Panics(t, func() { sched.Service() })
}
