package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	ticks   []int64
	seconds []int64
	onTick  func(int64)
}

func (r *recordingObserver) OnTick(milliseconds int64) {
	r.ticks = append(r.ticks, milliseconds)
	if r.onTick != nil {
		r.onTick(milliseconds)
	}
}

func (r *recordingObserver) OnSecond(seconds int64) {
	r.seconds = append(r.seconds, seconds)
}

func TestClockStartArmsTimerWithDelay(t *testing.T) {
	timer := NewManualTimer()
	c := New(timer)

	c.Start(50*time.Millisecond, 100*time.Millisecond)

	assert.True(t, c.IsRunning())
	assert.True(t, timer.Armed())
	assert.Equal(t, 150*time.Millisecond, timer.Duration())
}

func TestClockStartClampsPeriod(t *testing.T) {
	c := New(NewManualTimer())
	c.Start(time.Millisecond, 0)
	assert.Equal(t, 10*time.Millisecond, c.Period())
}

func TestClockStartOnlyFromStopped(t *testing.T) {
	timer := NewManualTimer()
	c := New(timer)
	c.Start(50*time.Millisecond, 0)
	c.Tick()

	c.Start(20*time.Millisecond, 0)

	assert.Equal(t, 50*time.Millisecond, c.Period())
	assert.Equal(t, int64(1), c.Ticks())
	assert.Equal(t, 2, timer.Resets())
}

func TestClockTickEvents(t *testing.T) {
	c := New(NewManualTimer())
	obs := &recordingObserver{}
	c.AddObserver(obs)
	c.AddObserver(obs)

	c.Start(50*time.Millisecond, 0)
	for i := 0; i < 41; i++ {
		c.Tick()
	}

	require.Len(t, obs.ticks, 41)
	assert.Equal(t, int64(50), obs.ticks[0])
	assert.Equal(t, int64(2050), obs.ticks[40])
	assert.Equal(t, []int64{1, 2}, obs.seconds)
	assert.Equal(t, int64(2050), c.Milliseconds())
	assert.Equal(t, int64(2), c.Seconds())
}

func TestClockPeriodLongerThanSecond(t *testing.T) {
	c := New(NewManualTimer())
	obs := &recordingObserver{}
	c.AddObserver(obs)

	c.Start(1500*time.Millisecond, 0)
	c.Tick()
	c.Tick()

	assert.Equal(t, []int64{1500, 3000}, obs.ticks)
	assert.Equal(t, []int64{1, 2}, obs.seconds)
}

func TestClockStopKeepsCountersUntilRestart(t *testing.T) {
	timer := NewManualTimer()
	c := New(timer)
	c.Start(50*time.Millisecond, 0)
	c.Tick()
	c.Tick()

	c.Stop()
	assert.True(t, c.IsStopped())
	assert.False(t, timer.Armed())
	assert.Equal(t, int64(100), c.Milliseconds())

	c.Tick()
	assert.Equal(t, int64(2), c.Ticks(), "ticks after stop are dropped")

	c.Start(50*time.Millisecond, 0)
	assert.Equal(t, int64(0), c.Ticks())
	assert.Equal(t, int64(0), c.Milliseconds())
	assert.Equal(t, int64(0), c.Seconds())
}

func TestClockPauseResume(t *testing.T) {
	timer := NewManualTimer()
	c := New(timer)

	c.Pause()
	assert.True(t, c.IsStopped(), "pause from stopped is a no-op")
	c.Resume()
	assert.True(t, c.IsStopped(), "resume from stopped is a no-op")

	c.Start(50*time.Millisecond, 0)
	c.Tick()
	c.Pause()
	c.Pause()
	assert.True(t, c.IsPaused())
	assert.False(t, timer.Armed())
	assert.Nil(t, c.C())

	c.Tick()
	assert.Equal(t, int64(50), c.Milliseconds())

	c.Resume()
	c.Resume()
	assert.True(t, c.IsRunning())
	assert.Equal(t, 50*time.Millisecond, timer.Duration())

	c.Tick()
	assert.Equal(t, int64(100), c.Milliseconds())
}

func TestClockObserverStopsDuringTick(t *testing.T) {
	c := New(NewManualTimer())
	obs := &recordingObserver{}
	obs.onTick = func(ms int64) {
		if ms == 1000 {
			c.Stop()
		}
	}
	c.AddObserver(obs)

	c.Start(50*time.Millisecond, 0)
	for i := 0; i < 20; i++ {
		c.Tick()
	}

	assert.Len(t, obs.ticks, 20)
	assert.Empty(t, obs.seconds)
	assert.True(t, c.IsStopped())
}

func TestClockRemoveObserver(t *testing.T) {
	c := New(NewManualTimer())
	first := &recordingObserver{}
	second := &recordingObserver{}
	c.AddObserver(first)
	c.AddObserver(second)
	c.RemoveObserver(first)

	c.Start(50*time.Millisecond, 0)
	c.Tick()

	assert.Empty(t, first.ticks)
	assert.Equal(t, []int64{50}, second.ticks)
}

func TestRealTimerFires(t *testing.T) {
	timer := NewTimer()
	c := New(timer)
	obs := &recordingObserver{}
	c.AddObserver(obs)

	c.Start(10*time.Millisecond, 0)
	select {
	case <-c.C():
		c.Tick()
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	c.Stop()

	assert.Equal(t, []int64{10}, obs.ticks)
	assert.Nil(t, c.C())
}
