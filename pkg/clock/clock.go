package clock

import (
	"time"

	"raceboardbot/pkg/duration"
)

// Speed is the playback acceleration applied to wall time. One real
// second advances the race clock by ten seconds. Derived displays
// depend on this exact factor.
const Speed = 10

type State int

const (
	StateInitial State = iota
	StateStarted
	StatePaused
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateStarted:
		return "started"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Clock is the playback race clock. Events that are not valid in the
// current state are ignored, they never fail.
type Clock struct {
	state     State
	splitTime duration.Duration
	startedAt time.Time
	now       time.Time
}

func New() *Clock {
	return &Clock{state: StateInitial}
}

// Start begins running from Initial, or resumes from Paused keeping the
// accumulated split time.
func (c *Clock) Start(now time.Time) {
	switch c.state {
	case StateInitial:
		c.state = StateStarted
		c.splitTime = 0
		c.startedAt = now
		c.now = now
	case StatePaused:
		c.state = StateStarted
		c.startedAt = now
		c.now = now
	}
}

// Tick advances the running clock to now. Ignored unless started.
func (c *Clock) Tick(now time.Time) {
	if c.state != StateStarted {
		return
	}
	c.now = now
}

// Pause freezes the elapsed time as the new split time.
func (c *Clock) Pause() {
	if c.state != StateStarted {
		return
	}
	c.splitTime = c.Elapsed()
	c.state = StatePaused
}

// Finish ends the session from any state.
func (c *Clock) Finish() {
	c.state = StateFinished
}

func (c *Clock) State() State {
	return c.state
}

// Elapsed is the accelerated race time accumulated so far. Initial and
// Finished report zero.
func (c *Clock) Elapsed() duration.Duration {
	switch c.state {
	case StateStarted:
		wall := c.now.Sub(c.startedAt).Milliseconds()
		return duration.FromMilliseconds(wall*Speed) + c.splitTime
	case StatePaused:
		return c.splitTime
	}
	return 0
}

// String renders the clock for the header row, without sub-second
// precision. Initial and Finished both read as zero, the state keeps
// them apart.
func (c *Clock) String() string {
	return c.Elapsed().Clock()
}
