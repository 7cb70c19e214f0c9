package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"raceboardbot/pkg/duration"
)

var epoch = time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC)

func TestStartFromInitial(t *testing.T) {
	c := New()
	assert.Equal(t, StateInitial, c.State())
	assert.Equal(t, duration.Duration(0), c.Elapsed())

	c.Start(epoch)
	assert.Equal(t, StateStarted, c.State())
	assert.Equal(t, duration.Duration(0), c.Elapsed())
}

func TestElapsedIsAccelerated(t *testing.T) {
	c := New()
	c.Start(epoch)
	c.Tick(epoch.Add(time.Second))
	// one wall second is ten race seconds
	assert.Equal(t, duration.FromMilliseconds(10000), c.Elapsed())
}

func TestPauseAndResume(t *testing.T) {
	c := New()
	c.Start(epoch)
	c.Tick(epoch.Add(2 * time.Second))
	c.Pause()
	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, duration.FromMilliseconds(20000), c.Elapsed())

	// paused clocks ignore ticks
	c.Tick(epoch.Add(time.Minute))
	assert.Equal(t, duration.FromMilliseconds(20000), c.Elapsed())

	// resuming keeps the split time
	c.Start(epoch.Add(time.Minute))
	c.Tick(epoch.Add(time.Minute + time.Second))
	assert.Equal(t, duration.FromMilliseconds(30000), c.Elapsed())
}

func TestInvalidEventsAreIgnored(t *testing.T) {
	c := New()
	c.Pause()
	c.Tick(epoch)
	assert.Equal(t, StateInitial, c.State())

	c.Start(epoch)
	c.Start(epoch.Add(time.Hour)) // already started, ignored
	c.Tick(epoch.Add(time.Second))
	assert.Equal(t, duration.FromMilliseconds(10000), c.Elapsed())
}

func TestFinish(t *testing.T) {
	c := New()
	c.Start(epoch)
	c.Tick(epoch.Add(time.Second))
	c.Finish()

	assert.Equal(t, StateFinished, c.State())
	assert.Equal(t, "00:00:00", c.String())
	// finished is not initial even though both render as zero
	assert.NotEqual(t, StateInitial, c.State())

	// finish is terminal for every event
	c.Start(epoch)
	c.Tick(epoch)
	c.Pause()
	assert.Equal(t, StateFinished, c.State())
}

func TestStringWhileRunning(t *testing.T) {
	c := New()
	c.Start(epoch)
	c.Tick(epoch.Add(90 * time.Second)) // 15 race minutes
	assert.Equal(t, "00:15:00", c.String())
}
