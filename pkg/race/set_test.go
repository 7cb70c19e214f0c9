package race

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"raceboardbot/pkg/duration"
)

func lapFixture(car, lapNumber int, lapTime, elapsed duration.Duration) Lap {
	return Lap{
		CarNumber:  car,
		DriverName: "Driver",
		LapNumber:  lapNumber,
		LapTime:    lapTime,
		Elapsed:    elapsed,
		Class:      "HYPERCAR",
		Team:       "Team",
	}
}

func TestBuildSetGroupsByCar(t *testing.T) {
	set := BuildSet("Le Mans", []Lap{
		lapFixture(8, 1, 88766, 88766),
		lapFixture(7, 1, 90152, 90152),
		lapFixture(8, 2, 108431, 197197),
		lapFixture(7, 2, 108691, 198843),
	})

	assert.Len(t, set.Cars, 2)
	assert.Equal(t, 8, set.Cars[0].Number)
	assert.Equal(t, 7, set.Cars[1].Number)
	assert.Len(t, set.Cars[0].Laps, 2)
	assert.Equal(t, 2, set.LapTotal())
}

func TestBuildSetTracksRunningBest(t *testing.T) {
	set := BuildSet("Le Mans", []Lap{
		lapFixture(8, 1, 90000, 90000),
		lapFixture(8, 2, 88000, 178000),
		lapFixture(8, 3, 91000, 269000),
	})

	laps := set.Cars[0].Laps
	assert.Equal(t, duration.Duration(90000), laps[0].Best)
	assert.Equal(t, duration.Duration(88000), laps[1].Best)
	assert.Equal(t, duration.Duration(88000), laps[2].Best)
}

func TestElapsedAtIsJustBeforeNextLap(t *testing.T) {
	set := BuildSet("Le Mans", []Lap{
		lapFixture(8, 1, 88766, 88766),
		lapFixture(7, 1, 90152, 90152),
		lapFixture(8, 2, 108431, 197197),
		lapFixture(7, 2, 108691, 198843),
	})

	// instant just before the quickest car completes lap 1
	assert.Equal(t, duration.Duration(88765), set.ElapsedAt(0))
	// instant just before the quickest car completes lap 2
	assert.Equal(t, duration.Duration(197196), set.ElapsedAt(1))
	// past the data: last completion time of the field
	assert.Equal(t, duration.Duration(198843), set.ElapsedAt(2))
}

func TestScrubClockClamps(t *testing.T) {
	set := BuildSet("Le Mans", []Lap{
		lapFixture(8, 1, 88766, 88766),
		lapFixture(8, 2, 108431, 197197),
	})
	sc := NewScrubClock(set)

	sc.PreviousLap()
	assert.Equal(t, 0, sc.LapCount())

	sc.NextLap()
	sc.NextLap()
	sc.NextLap()
	assert.Equal(t, 2, sc.LapCount())

	sc.SetLapCount(1)
	assert.Equal(t, duration.Duration(197196), sc.Elapsed())
	assert.Equal(t, "00:03:17", sc.String())
}
