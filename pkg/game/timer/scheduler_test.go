package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRuns(t *testing.T) {
	s := NewScheduler()

	var fired atomic.Int32
	s.AfterFunc(5*time.Millisecond, func() { fired.Add(1) })
	assert.Equal(t, 1, s.Pending())

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return s.Pending() == 0 }, time.Second, time.Millisecond)
}

func TestSchedulerPause(t *testing.T) {
	s := NewScheduler()
	s.Pause()

	var fired atomic.Int32
	timer := s.AfterFunc(time.Millisecond, func() { fired.Add(1) })
	require.NotNil(t, timer)
	assert.True(t, timer.Paused())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load(), "paused timers must not fire")

	s.Resume()
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}

func TestSchedulerStop(t *testing.T) {
	s := NewScheduler()

	var fired atomic.Int32
	s.AfterFunc(10*time.Millisecond, func() { fired.Add(1) })
	s.Stop()
	assert.Equal(t, 0, s.Pending())
	assert.Nil(t, s.AfterFunc(time.Millisecond, func() { fired.Add(1) }))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestTimerTimeLeft(t *testing.T) {
	var nilTimer *Timer
	assert.Equal(t, time.Duration(0), nilTimer.TimeLeft())

	timer := AfterFunc(time.Hour, func() {})
	assert.Equal(t, time.Hour, timer.TimeLeft())

	require.True(t, timer.Start())
	assert.False(t, timer.Start())
	require.True(t, timer.Pause())
	assert.True(t, timer.Paused())
	assert.LessOrEqual(t, timer.TimeLeft(), time.Hour)

	require.True(t, timer.Stop())
	assert.Equal(t, time.Duration(0), timer.TimeLeft())
	assert.False(t, timer.Stop())
}
