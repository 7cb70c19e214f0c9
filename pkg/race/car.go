package race

import "raceboardbot/pkg/duration"

// Car owns the ordered lap history of one entry. The set is loaded once
// from the event feed and is immutable afterwards; every derived view
// recomputes from it.
type Car struct {
	Number       int    `json:"number"`
	DriverName   string `json:"driverName"`
	Class        string `json:"class"`
	Group        string `json:"group"`
	Team         string `json:"team"`
	Manufacturer string `json:"manufacturer"`

	// StartPosition and Positions are filled in after the standings for
	// every lap count have been resolved once at load time.
	StartPosition int   `json:"startPosition"`
	Positions     []int `json:"positions"`

	Laps []Lap `json:"laps"`
}

// LastLap returns the final lap of the car, or the zero Lap when the
// car never completed one.
func (c Car) LastLap() Lap {
	if len(c.Laps) == 0 {
		return Lap{CarNumber: c.Number, DriverName: c.DriverName, Class: c.Class, Team: c.Team, Manufacturer: c.Manufacturer}
	}
	return c.Laps[len(c.Laps)-1]
}

// Set is the full field of an event.
type Set struct {
	EventName string `json:"eventName"`
	Cars      []Car  `json:"cars"`
}

// BuildSet groups decoded lap records into cars, preserving first-seen
// order, and computes each car's running best lap time.
func BuildSet(eventName string, laps []Lap) *Set {
	byNumber := map[int]int{}
	set := &Set{EventName: eventName}
	for _, lap := range laps {
		idx, ok := byNumber[lap.CarNumber]
		if !ok {
			idx = len(set.Cars)
			byNumber[lap.CarNumber] = idx
			set.Cars = append(set.Cars, Car{
				Number:       lap.CarNumber,
				DriverName:   lap.DriverName,
				Class:        lap.Class,
				Group:        lap.Group,
				Team:         lap.Team,
				Manufacturer: lap.Manufacturer,
			})
		}
		car := &set.Cars[idx]
		lap.Best = lap.LapTime
		if n := len(car.Laps); n > 0 {
			if best := car.Laps[n-1].Best; best > 0 && (lap.LapTime == 0 || best < lap.LapTime) {
				lap.Best = best
			}
		}
		car.Laps = append(car.Laps, lap)
	}
	return set
}

// LapTotal is the highest lap number completed by any car.
func (s *Set) LapTotal() int {
	total := 0
	for _, car := range s.Cars {
		if n := car.LastLap().LapNumber; n > total {
			total = n
		}
	}
	return total
}

// ElapsedAt derives the race instant for a lap count from the lap data
// itself: the millisecond just before the quickest car completes lap
// lapCount+1. Past the end of the data it is the last completion time
// in the field.
func (s *Set) ElapsedAt(lapCount int) duration.Duration {
	if lapCount < 0 {
		return 0
	}
	next := duration.Duration(0)
	for _, car := range s.Cars {
		if lapCount >= len(car.Laps) {
			continue
		}
		e := car.Laps[lapCount].Elapsed
		if next == 0 || e < next {
			next = e
		}
	}
	if next > 0 {
		return next - duration.Millisecond
	}
	last := duration.Duration(0)
	for _, car := range s.Cars {
		if e := car.LastLap().Elapsed; e > last {
			last = e
		}
	}
	return last
}
