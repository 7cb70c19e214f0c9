package standings

import (
	"sort"

	"raceboardbot/pkg/duration"
	"raceboardbot/pkg/race"
)

// Position is the race instant standings are resolved against: either a
// lap count (scrub mode) or an elapsed race time (playback mode).
type Position struct {
	byLap   bool
	lap     int
	elapsed duration.Duration
}

func AtLap(n int) Position {
	return Position{byLap: true, lap: n}
}

func AtTime(d duration.Duration) Position {
	return Position{elapsed: d}
}

func (p Position) includes(lap race.Lap) bool {
	if p.byLap {
		return lap.LapNumber <= p.lap
	}
	return lap.Elapsed <= p.elapsed
}

// Entry pairs a car with the last lap it had completed at the resolved
// instant. Cars with no completed lap carry a synthetic zero lap; they
// are never dropped from the standings.
type Entry struct {
	Car race.Car `json:"car"`
	Lap race.Lap `json:"lap"`
}

func syntheticLap(car race.Car) race.Lap {
	return race.Lap{
		CarNumber:    car.Number,
		DriverName:   car.DriverName,
		Class:        car.Class,
		Group:        car.Group,
		Team:         car.Team,
		Manufacturer: car.Manufacturer,
	}
}

func currentLap(at Position, car race.Car) race.Lap {
	current := syntheticLap(car)
	for _, lap := range car.Laps {
		if !at.includes(lap) {
			break
		}
		current = lap
	}
	return current
}

// Resolve orders the field at the given instant: most laps completed
// first, ties broken by the earlier elapsed time. Cars equal on both
// keys keep their input order.
func Resolve(at Position, cars []race.Car) []Entry {
	entries := make([]Entry, 0, len(cars))
	for _, car := range cars {
		entries = append(entries, Entry{Car: car, Lap: currentLap(at, car)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Lap, entries[j].Lap
		if a.LapNumber != b.LapNumber {
			return a.LapNumber > b.LapNumber
		}
		return a.Elapsed < b.Elapsed
	})
	return entries
}

// History returns the car's laps completed at or before the instant,
// oldest first. Used for the stint tables and the lap charts.
func History(at Position, car race.Car) []race.Lap {
	laps := []race.Lap{}
	for _, lap := range car.Laps {
		if !at.includes(lap) {
			break
		}
		laps = append(laps, lap)
	}
	return laps
}
