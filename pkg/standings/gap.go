package standings

import (
	"fmt"

	"raceboardbot/pkg/duration"
	"raceboardbot/pkg/race"
)

type GapKind int

const (
	// GapNone marks the leader itself.
	GapNone GapKind = iota
	// GapLaps is a deficit of whole laps.
	GapLaps
	// GapTime is a same-lap deficit in race time.
	GapTime
)

// Gap is the standing-relative deficit of a car versus the leader.
type Gap struct {
	Kind GapKind           `json:"kind"`
	Laps int               `json:"laps,omitempty"`
	Time duration.Duration `json:"time,omitempty"`
}

// GapToLeader compares a car's resolved lap against the leader's. Cars
// on the same lap count differ by elapsed time, which is non-negative
// because the leader has the least elapsed time for that count.
func GapToLeader(leader, lap race.Lap) Gap {
	if behind := leader.LapNumber - lap.LapNumber; behind > 0 {
		return Gap{Kind: GapLaps, Laps: behind}
	}
	return Gap{Kind: GapTime, Time: lap.Elapsed - leader.Elapsed}
}

func (g Gap) String() string {
	switch g.Kind {
	case GapLaps:
		if g.Laps == 1 {
			return "+1 vuelta"
		}
		return fmt.Sprintf("+%d vueltas", g.Laps)
	case GapTime:
		if g.Time == 0 {
			return "-"
		}
		return fmt.Sprintf("+%.3fs", float64(g.Time.Milliseconds())/1000.0)
	}
	return "-"
}
