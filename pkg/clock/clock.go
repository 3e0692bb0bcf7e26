package clock

import (
	"time"

	"github.com/cbodonnell/sweeper/pkg/game/constants"
	"github.com/cbodonnell/sweeper/pkg/log"
)

var logger = log.Named("clock")

// Observer receives clock events
type Observer interface {
	// OnTick is called on each tick with the elapsed milliseconds
	OnTick(milliseconds int64)
	// OnSecond is called once per elapsed second with the elapsed seconds
	OnSecond(seconds int64)
}

// Status is the state of a Clock
type Status int

const (
	StatusStopped Status = iota
	StatusRunning
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "stopped"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Clock is a restartable, pausable periodic timer that counts ticks and
// derives a once-per-second event from them.
// A Clock is not safe for concurrent use: Tick and the control methods must
// be called from the same goroutine.
type Clock struct {
	timer     Timer
	status    Status
	period    time.Duration
	ticks     int64
	millis    int64
	seconds   int64
	observers []Observer
}

// New creates a stopped clock driven by the given timer
func New(timer Timer) *Clock {
	return &Clock{
		timer:     timer,
		status:    StatusStopped,
		period:    constants.TimerPeriod,
		observers: make([]Observer, 0, 2),
	}
}

// AddObserver registers an observer. Registering the same observer twice has no effect.
func (c *Clock) AddObserver(o Observer) {
	for _, existing := range c.observers {
		if existing == o {
			return
		}
	}
	c.observers = append(c.observers, o)
}

// RemoveObserver unregisters an observer
func (c *Clock) RemoveObserver(o Observer) {
	for i, existing := range c.observers {
		if existing == o {
			c.observers = append(c.observers[:i], c.observers[i+1:]...)
			return
		}
	}
}

// Start resets the counters and starts ticking every period after an
// additional initial delay. It does nothing unless the clock is stopped.
func (c *Clock) Start(period time.Duration, delay time.Duration) {
	if c.status != StatusStopped {
		logger.Debug("Clock already %s", c.status)
		return
	}
	if period < constants.MinTimerPeriod {
		period = constants.MinTimerPeriod
	}
	if delay < 0 {
		delay = 0
	}

	c.ticks = 0
	c.millis = 0
	c.seconds = 0
	c.period = period
	c.status = StatusRunning
	c.timer.Reset(period + delay)

	logger.Debug("Clock started: period=%s delay=%s", period, delay)
}

// Stop stops the clock. The counters keep their values until the next Start.
func (c *Clock) Stop() {
	c.status = StatusStopped
	c.timer.Stop()
	logger.Trace("Clock stopped at %dms", c.millis)
}

// Pause suspends ticking without losing the elapsed time
func (c *Clock) Pause() {
	if c.status != StatusRunning {
		logger.Debug("Unable to pause clock: status=%s", c.status)
		return
	}
	c.status = StatusPaused
	c.timer.Stop()
	logger.Debug("Clock paused at %dms", c.millis)
}

// Resume continues a paused clock from the accumulated elapsed time
func (c *Clock) Resume() {
	if c.status != StatusPaused {
		logger.Debug("Unable to resume clock: status=%s", c.status)
		return
	}
	c.status = StatusRunning
	c.timer.Reset(c.period)
	logger.Debug("Clock resumed at %dms", c.millis)
}

// C returns the channel the next tick fires on while running, and nil
// otherwise so that a select never picks a stopped or paused clock.
func (c *Clock) C() <-chan time.Time {
	if c.status != StatusRunning {
		return nil
	}
	return c.timer.C()
}

// Tick advances the clock by one period and notifies observers.
// Ticks arriving while the clock is not running are dropped.
func (c *Clock) Tick() {
	if c.status != StatusRunning {
		logger.Trace("Dropping tick: status=%s", c.status)
		return
	}

	c.ticks++
	c.millis = c.ticks * c.period.Milliseconds()
	c.timer.Reset(c.period)

	logger.Trace("Ticks: %d -> Milliseconds: %d", c.ticks, c.millis)

	for _, o := range c.observers {
		o.OnTick(c.millis)
	}

	// an observer may have stopped or paused the clock
	if c.status != StatusRunning {
		return
	}
	if c.ticks%c.ticksPerSecond() == 0 {
		c.seconds++
		for _, o := range c.observers {
			o.OnSecond(c.seconds)
		}
	}
}

func (c *Clock) ticksPerSecond() int64 {
	n := int64(time.Second / c.period)
	if n < 1 {
		return 1
	}
	return n
}

// Ticks returns the number of ticks since the last start
func (c *Clock) Ticks() int64 {
	return c.ticks
}

// Milliseconds returns the elapsed milliseconds since the last start
func (c *Clock) Milliseconds() int64 {
	return c.millis
}

// Seconds returns the elapsed seconds since the last start
func (c *Clock) Seconds() int64 {
	return c.seconds
}

// Period returns the tick period
func (c *Clock) Period() time.Duration {
	return c.period
}

func (c *Clock) Status() Status {
	return c.status
}

func (c *Clock) IsStopped() bool {
	return c.status == StatusStopped
}

func (c *Clock) IsRunning() bool {
	return c.status == StatusRunning
}

func (c *Clock) IsPaused() bool {
	return c.status == StatusPaused
}
