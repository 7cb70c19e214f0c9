package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raceboardbot/pkg/duration"
	"raceboardbot/pkg/race"
)

func fieldFixture() []race.Car {
	set := race.BuildSet("Le Mans", []race.Lap{
		{CarNumber: 8, DriverName: "S. Buemi", Class: "HYPERCAR", Team: "Toyota", LapNumber: 1, LapTime: 88766, Elapsed: 88766},
		{CarNumber: 7, DriverName: "M. Conway", Class: "HYPERCAR", Team: "Toyota", LapNumber: 1, LapTime: 90152, Elapsed: 90152},
		{CarNumber: 8, DriverName: "S. Buemi", Class: "HYPERCAR", Team: "Toyota", LapNumber: 2, LapTime: 108431, Elapsed: 197197},
		{CarNumber: 7, DriverName: "M. Conway", Class: "HYPERCAR", Team: "Toyota", LapNumber: 2, LapTime: 108691, Elapsed: 198843},
	})
	return set.Cars
}

func TestResolveAtLapOne(t *testing.T) {
	entries := Resolve(AtLap(1), fieldFixture())
	require.Len(t, entries, 2)

	assert.Equal(t, 8, entries[0].Car.Number)
	assert.Equal(t, 1, entries[0].Lap.LapNumber)
	assert.Equal(t, duration.Duration(88766), entries[0].Lap.Elapsed)

	assert.Equal(t, 7, entries[1].Car.Number)
	assert.Equal(t, 1, entries[1].Lap.LapNumber)
	assert.Equal(t, duration.Duration(90152), entries[1].Lap.Elapsed)
}

func TestResolveByElapsedTime(t *testing.T) {
	// instant between car 8's lap 2 and car 7's lap 2
	entries := Resolve(AtTime(198000), fieldFixture())
	require.Len(t, entries, 2)
	assert.Equal(t, 8, entries[0].Car.Number)
	assert.Equal(t, 2, entries[0].Lap.LapNumber)
	assert.Equal(t, 7, entries[1].Car.Number)
	assert.Equal(t, 1, entries[1].Lap.LapNumber)
}

func TestResolveMoreLapsWins(t *testing.T) {
	cars := fieldFixture()
	// a backmarker with one very quick lap never outranks cars with two
	slow := race.BuildSet("x", []race.Lap{
		{CarNumber: 99, DriverName: "Rookie", Class: "LMGT3", Team: "Privateer", LapNumber: 1, LapTime: 80000, Elapsed: 80000},
	})
	cars = append(cars, slow.Cars...)

	entries := Resolve(AtLap(2), cars)
	require.Len(t, entries, 3)
	assert.Equal(t, 99, entries[2].Car.Number)
}

func TestResolveKeepsCarsWithoutLaps(t *testing.T) {
	cars := fieldFixture()
	cars = append(cars, race.Car{Number: 15, DriverName: "No Show", Class: "LMP2", Team: "Idle"})

	entries := Resolve(AtLap(0), cars)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, 0, e.Lap.LapNumber)
		assert.True(t, e.Lap.IsZero())
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	first := Resolve(AtLap(2), fieldFixture())
	second := Resolve(AtLap(2), fieldFixture())
	assert.Equal(t, first, second)
}

func TestGapSameLap(t *testing.T) {
	leader := race.Lap{LapNumber: 2, Elapsed: 200000}
	car := race.Lap{LapNumber: 2, Elapsed: 210000}
	gap := GapToLeader(leader, car)
	assert.Equal(t, GapTime, gap.Kind)
	assert.Equal(t, duration.Duration(10000), gap.Time)
	assert.Equal(t, "+10.000s", gap.String())
}

func TestGapLapsBehind(t *testing.T) {
	leader := race.Lap{LapNumber: 5, Elapsed: 500000}
	car := race.Lap{LapNumber: 3, Elapsed: 480000}
	gap := GapToLeader(leader, car)
	assert.Equal(t, GapLaps, gap.Kind)
	assert.Equal(t, 2, gap.Laps)
	assert.Equal(t, "+2 vueltas", gap.String())
}

func TestAssemble(t *testing.T) {
	items := Assemble(AtLap(1), fieldFixture())
	require.Len(t, items, 2)

	assert.Equal(t, 1, items[0].Position)
	assert.Equal(t, 8, items[0].CarNumber)
	assert.Equal(t, GapNone, items[0].Gap.Kind)
	assert.Len(t, items[0].History, 1)

	assert.Equal(t, 2, items[1].Position)
	assert.Equal(t, 7, items[1].CarNumber)
	assert.Equal(t, GapTime, items[1].Gap.Kind)
	assert.Equal(t, duration.Duration(1386), items[1].Gap.Time)
}

func TestAssembleIsDeterministic(t *testing.T) {
	first := Assemble(AtTime(198000), fieldFixture())
	second := Assemble(AtTime(198000), fieldFixture())
	assert.Equal(t, first, second)
}

func TestAssembleLapZeroCarGetsLapsGap(t *testing.T) {
	cars := fieldFixture()
	cars = append(cars, race.Car{Number: 15, DriverName: "No Show", Class: "LMP2", Team: "Idle"})

	items := Assemble(AtLap(2), cars)
	require.Len(t, items, 3)
	last := items[2]
	assert.Equal(t, 15, last.CarNumber)
	assert.Equal(t, GapLaps, last.Gap.Kind)
	assert.Equal(t, 2, last.Gap.Laps)
}

func TestAnnotatePositions(t *testing.T) {
	set := race.BuildSet("Le Mans", []race.Lap{
		{CarNumber: 8, DriverName: "S. Buemi", LapNumber: 1, LapTime: 88766, Elapsed: 88766},
		{CarNumber: 7, DriverName: "M. Conway", LapNumber: 1, LapTime: 90152, Elapsed: 90152},
		{CarNumber: 7, DriverName: "M. Conway", LapNumber: 2, LapTime: 100000, Elapsed: 190152},
		{CarNumber: 8, DriverName: "S. Buemi", LapNumber: 2, LapTime: 108431, Elapsed: 197197},
	})
	AnnotatePositions(set)

	car8, car7 := set.Cars[0], set.Cars[1]
	assert.Equal(t, []int{1, 2}, car8.Positions)
	assert.Equal(t, []int{2, 1}, car7.Positions)
	assert.Equal(t, 1, car8.Laps[0].Position)
	assert.Equal(t, 2, car8.Laps[1].Position)
}

func TestAnalyze(t *testing.T) {
	a := Analyze(AtLap(2), fieldFixture())
	assert.Equal(t, duration.Duration(88766), a.FastestLapTime)
	assert.Equal(t, duration.Duration(108691), a.SlowestLapTime)
	assert.Equal(t, 2, a.LapTotal)

	atStart := Analyze(AtLap(0), fieldFixture())
	assert.Equal(t, Analysis{}, atStart)
}

func TestBadges(t *testing.T) {
	a := Analyze(AtLap(2), fieldFixture())
	fastest := race.Lap{LapTime: 88766, Best: 88766}
	personal := race.Lap{LapTime: 90152, Best: 90152}
	normal := race.Lap{LapTime: 108431, Best: 88766}

	assert.Equal(t, BadgeFastest, a.BadgeFor(fastest))
	assert.Equal(t, BadgePersonalBest, a.BadgeFor(personal))
	assert.Equal(t, BadgeNormal, a.BadgeFor(normal))
	assert.Equal(t, BadgeNormal, a.BadgeFor(race.Lap{}))
}
