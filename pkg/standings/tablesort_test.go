package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func rowsFixture() []LeaderboardItem {
	return []LeaderboardItem{
		{Position: 1, CarNumber: 8, DriverName: "Buemi", Class: "HYPERCAR", BestLapTime: 88766},
		{Position: 2, CarNumber: 7, DriverName: "Conway", Class: "HYPERCAR", BestLapTime: 89100},
		{Position: 3, CarNumber: 92, DriverName: "Christensen", Class: "LMGT3", BestLapTime: 95000},
	}
}

func TestClickCyclesDirections(t *testing.T) {
	s := &SortState{}
	assert.Equal(t, DirectionNone, s.DirectionOf(ColumnBestLap))

	s.Click(ColumnBestLap)
	assert.Equal(t, DirectionAscending, s.DirectionOf(ColumnBestLap))

	s.Click(ColumnBestLap)
	assert.Equal(t, DirectionDescending, s.DirectionOf(ColumnBestLap))

	s.Click(ColumnBestLap)
	assert.Equal(t, DirectionNone, s.DirectionOf(ColumnBestLap))
	assert.False(t, s.Active())
}

func TestApplySingleColumn(t *testing.T) {
	s := &SortState{}
	s.Click(ColumnBestLap)
	s.Click(ColumnBestLap) // descending

	rows := rowsFixture()
	s.Apply(rows, DefaultComparators())
	assert.Equal(t, 92, rows[0].CarNumber)
	assert.Equal(t, 7, rows[1].CarNumber)
	assert.Equal(t, 8, rows[2].CarNumber)
}

func TestApplyUsesRegistrationOrder(t *testing.T) {
	s := &SortState{}
	s.Click(ColumnClass)  // registered first
	s.Click(ColumnDriver) // tie-break within class

	rows := rowsFixture()
	s.Apply(rows, DefaultComparators())
	assert.Equal(t, "Buemi", rows[0].DriverName)
	assert.Equal(t, "Conway", rows[1].DriverName)
	assert.Equal(t, "Christensen", rows[2].DriverName)
}

func TestApplyWithoutColumnsKeepsOrder(t *testing.T) {
	s := &SortState{}
	rows := rowsFixture()
	s.Apply(rows, DefaultComparators())
	assert.Equal(t, rowsFixture(), rows)
}

func TestApplyUnsetLapTimesSortLast(t *testing.T) {
	rows := []LeaderboardItem{
		{CarNumber: 15, BestLapTime: 0}, // no lap yet
		{CarNumber: 8, BestLapTime: 88766},
	}
	s := &SortState{}
	s.Click(ColumnBestLap)
	s.Apply(rows, DefaultComparators())
	assert.Equal(t, 8, rows[0].CarNumber)
	assert.Equal(t, 15, rows[1].CarNumber)
}
