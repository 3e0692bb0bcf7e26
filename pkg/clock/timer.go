package clock

import "time"

// Timer arms a single future fire. The clock re-arms it after every tick.
type Timer interface {
	// Reset arms the timer to fire once after d, replacing any pending fire
	Reset(d time.Duration)
	// Stop disarms the timer
	Stop()
	// C returns the channel the fire is delivered on
	C() <-chan time.Time
}

type realTimer struct {
	t *time.Timer
}

// NewTimer returns a Timer backed by time.Timer. It starts disarmed.
func NewTimer() Timer {
	t := time.NewTimer(time.Hour)
	rt := &realTimer{t: t}
	rt.Stop()
	return rt
}

func (r *realTimer) Reset(d time.Duration) {
	r.Stop()
	r.t.Reset(d)
}

func (r *realTimer) Stop() {
	if !r.t.Stop() {
		// drain a fire nobody received
		select {
		case <-r.t.C:
		default:
		}
	}
}

func (r *realTimer) C() <-chan time.Time {
	return r.t.C
}

// ManualTimer never fires on its own. The owner of the clock drives it by
// calling Tick directly, which is what tests and headless tools do.
type ManualTimer struct {
	armed  bool
	period time.Duration
	resets int
}

// NewManualTimer returns a disarmed ManualTimer
func NewManualTimer() *ManualTimer {
	return &ManualTimer{}
}

func (m *ManualTimer) Reset(d time.Duration) {
	m.armed = true
	m.period = d
	m.resets++
}

func (m *ManualTimer) Stop() {
	m.armed = false
}

// C returns a nil channel, a receive on it blocks forever
func (m *ManualTimer) C() <-chan time.Time {
	return nil
}

// Armed returns true if the timer has a pending fire
func (m *ManualTimer) Armed() bool {
	return m.armed
}

// Duration returns the duration of the last Reset
func (m *ManualTimer) Duration() time.Duration {
	return m.period
}

// Resets returns how often the timer was armed
func (m *ManualTimer) Resets() int {
	return m.resets
}
