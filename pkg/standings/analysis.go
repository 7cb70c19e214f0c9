package standings

import (
	"raceboardbot/pkg/duration"
	"raceboardbot/pkg/race"
)

// Analysis aggregates the whole field at one instant. The chart axes
// scale with it and the tables colour lap badges from it.
type Analysis struct {
	FastestLapTime duration.Duration `json:"fastestLapTime"`
	SlowestLapTime duration.Duration `json:"slowestLapTime"`
	LapTotal       int               `json:"lapTotal"`
}

// Analyze scans every lap completed at or before the instant.
func Analyze(at Position, cars []race.Car) Analysis {
	a := Analysis{}
	for _, car := range cars {
		for _, lap := range car.Laps {
			if !at.includes(lap) {
				break
			}
			if lap.LapTime > 0 {
				if a.FastestLapTime == 0 || lap.LapTime < a.FastestLapTime {
					a.FastestLapTime = lap.LapTime
				}
				if lap.LapTime > a.SlowestLapTime {
					a.SlowestLapTime = lap.LapTime
				}
			}
			if lap.LapNumber > a.LapTotal {
				a.LapTotal = lap.LapNumber
			}
		}
	}
	return a
}

type Badge int

const (
	BadgeNormal Badge = iota
	BadgePersonalBest
	BadgeFastest
)

// BadgeFor classifies a lap against the field: overall fastest beats
// personal best beats normal.
func (a Analysis) BadgeFor(lap race.Lap) Badge {
	if lap.LapTime == 0 {
		return BadgeNormal
	}
	if lap.LapTime == a.FastestLapTime {
		return BadgeFastest
	}
	if lap.LapTime == lap.Best {
		return BadgePersonalBest
	}
	return BadgeNormal
}

func (b Badge) Symbol() string {
	switch b {
	case BadgeFastest:
		return "🟣"
	case BadgePersonalBest:
		return "🟢"
	}
	return ""
}
