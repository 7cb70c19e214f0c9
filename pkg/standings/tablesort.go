package standings

import (
	"sort"

	"raceboardbot/pkg/duration"
)

type Direction int

const (
	DirectionNone Direction = iota
	DirectionAscending
	DirectionDescending
)

// Column keys the sortable views agree on.
const (
	ColumnPosition = "position"
	ColumnCar      = "car"
	ColumnDriver   = "driver"
	ColumnClass    = "class"
	ColumnLaps     = "laps"
	ColumnGap      = "gap"
	ColumnLastLap  = "lastLap"
	ColumnBestLap  = "bestLap"
)

type sortColumn struct {
	key string
	dir Direction
}

// SortState holds the user's active multi-column sort. Directives apply
// in the order the columns were first clicked, not click recency.
type SortState struct {
	columns []sortColumn
}

// Click cycles the column None -> Ascending -> Descending -> None,
// dropping it from the active list when it comes back to None.
func (s *SortState) Click(key string) {
	for i := range s.columns {
		if s.columns[i].key != key {
			continue
		}
		if s.columns[i].dir == DirectionAscending {
			s.columns[i].dir = DirectionDescending
			return
		}
		s.columns = append(s.columns[:i], s.columns[i+1:]...)
		return
	}
	s.columns = append(s.columns, sortColumn{key: key, dir: DirectionAscending})
}

// DirectionOf reports the active direction of a column.
func (s *SortState) DirectionOf(key string) Direction {
	for _, c := range s.columns {
		if c.key == key {
			return c.dir
		}
	}
	return DirectionNone
}

func (s *SortState) Active() bool {
	return len(s.columns) > 0
}

// Comparator orders two rows for one column; negative when a sorts
// before b ascending.
type Comparator func(a, b LeaderboardItem) int

// Apply stably sorts the rows by the active directives using the given
// comparators. Columns without a comparator are skipped.
func (s *SortState) Apply(items []LeaderboardItem, comparators map[string]Comparator) {
	if len(s.columns) == 0 {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		for _, col := range s.columns {
			cmp, ok := comparators[col.key]
			if !ok {
				continue
			}
			c := cmp(items[i], items[j])
			if c == 0 {
				continue
			}
			if col.dir == DirectionDescending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

// DefaultComparators covers the columns every leaderboard view renders.
func DefaultComparators() map[string]Comparator {
	return map[string]Comparator{
		ColumnPosition: func(a, b LeaderboardItem) int { return a.Position - b.Position },
		ColumnCar:      func(a, b LeaderboardItem) int { return a.CarNumber - b.CarNumber },
		ColumnDriver:   func(a, b LeaderboardItem) int { return compareStrings(a.DriverName, b.DriverName) },
		ColumnClass:    func(a, b LeaderboardItem) int { return compareStrings(a.Class, b.Class) },
		ColumnLaps:     func(a, b LeaderboardItem) int { return a.Lap.LapNumber - b.Lap.LapNumber },
		ColumnGap:      compareGap,
		ColumnLastLap:  func(a, b LeaderboardItem) int { return compareLapTimes(a.LastLapTime, b.LastLapTime) },
		ColumnBestLap:  func(a, b LeaderboardItem) int { return compareLapTimes(a.BestLapTime, b.BestLapTime) },
	}
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareLapTimes sorts unset times (no lap yet) after real ones.
func compareLapTimes(a, b duration.Duration) int {
	am, bm := a.Milliseconds(), b.Milliseconds()
	switch {
	case am == bm:
		return 0
	case am == 0:
		return 1
	case bm == 0:
		return -1
	case am < bm:
		return -1
	}
	return 1
}

func compareGap(a, b LeaderboardItem) int {
	// leader first, then time gaps, then lap deficits
	rank := func(g Gap) int64 {
		switch g.Kind {
		case GapNone:
			return 0
		case GapTime:
			return 1 + g.Time.Milliseconds()
		}
		return int64(g.Laps) << 40
	}
	ra, rb := rank(a.Gap), rank(b.Gap)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	}
	return 0
}
