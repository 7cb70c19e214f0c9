package standings

import (
	"raceboardbot/pkg/duration"
	"raceboardbot/pkg/race"
)

// LeaderboardItem is one ranked row of the board. Items are ephemeral:
// rebuilt wholesale from (position, cars) on every clock change, never
// mutated in place.
type LeaderboardItem struct {
	Position    int               `json:"position"`
	CarNumber   int               `json:"carNumber"`
	DriverName  string            `json:"driverName"`
	Class       string            `json:"class"`
	Team        string            `json:"team"`
	Lap         race.Lap          `json:"lap"`
	Gap         Gap               `json:"gap"`
	LastLapTime duration.Duration `json:"lastLapTime"`
	BestLapTime duration.Duration `json:"bestLapTime"`
	History     []race.Lap        `json:"history"`
}

// Assemble resolves the field and derives the ranked rows consumed by
// the tables and charts. Pure over its inputs: identical clock position
// and car data always produce identical rows, the sort layer above
// re-sorts them freely.
func Assemble(at Position, cars []race.Car) []LeaderboardItem {
	entries := Resolve(at, cars)
	items := make([]LeaderboardItem, 0, len(entries))
	for idx, entry := range entries {
		gap := Gap{Kind: GapNone}
		if idx > 0 {
			gap = GapToLeader(entries[0].Lap, entry.Lap)
		}
		items = append(items, LeaderboardItem{
			Position:    idx + 1,
			CarNumber:   entry.Car.Number,
			DriverName:  entry.Lap.DriverName,
			Class:       entry.Car.Class,
			Team:        entry.Car.Team,
			Lap:         entry.Lap,
			Gap:         gap,
			LastLapTime: entry.Lap.LapTime,
			BestLapTime: entry.Lap.Best,
			History:     History(at, entry.Car),
		})
	}
	return items
}

// AnnotatePositions resolves the standings once per lap count and
// writes the resulting position history back into the freshly loaded
// set. Called once after the feed load, before the set goes immutable.
func AnnotatePositions(set *race.Set) {
	total := set.LapTotal()
	positionAt := make([]map[int]int, total+1)
	for lapCount := 0; lapCount <= total; lapCount++ {
		positionAt[lapCount] = map[int]int{}
		for idx, entry := range Resolve(AtLap(lapCount), set.Cars) {
			positionAt[lapCount][entry.Car.Number] = idx + 1
		}
	}
	for i := range set.Cars {
		car := &set.Cars[i]
		car.StartPosition = positionAt[0][car.Number]
		car.Positions = car.Positions[:0]
		for lapCount := 1; lapCount <= len(car.Laps); lapCount++ {
			pos := positionAt[lapCount][car.Number]
			car.Positions = append(car.Positions, pos)
			car.Laps[lapCount-1].Position = pos
		}
	}
}
