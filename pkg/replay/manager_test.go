package replay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raceboardbot/pkg/caster"
	"raceboardbot/pkg/pubsub"
	"raceboardbot/pkg/race"
)

func setFixture() *race.Set {
	return race.BuildSet("Le Mans", []race.Lap{
		{CarNumber: 8, DriverName: "S. Buemi", Class: "HYPERCAR", Team: "Toyota", LapNumber: 1, LapTime: 88766, Elapsed: 88766},
		{CarNumber: 7, DriverName: "M. Conway", Class: "HYPERCAR", Team: "Toyota", LapNumber: 1, LapTime: 90152, Elapsed: 90152},
		{CarNumber: 8, DriverName: "S. Buemi", Class: "HYPERCAR", Team: "Toyota", LapNumber: 2, LapTime: 108431, Elapsed: 197197},
		{CarNumber: 7, DriverName: "M. Conway", Class: "HYPERCAR", Team: "Toyota", LapNumber: 2, LapTime: 108691, Elapsed: 198843},
	})
}

func TestSnapshotScrubMode(t *testing.T) {
	m := NewManager(setFixture(), pubsub.NewPubSub[string]())
	m.SetMode(ModeScrub)
	m.SetLapCount(1)
	m.doSync(time.Now())

	s := m.Snapshot()
	assert.Equal(t, ModeScrub, s.Mode)
	assert.Equal(t, 1, s.LapCount)
	assert.Equal(t, 2, s.LapTotal)
	require.Len(t, s.Items, 2)
	assert.Equal(t, 8, s.Items[0].CarNumber)
	assert.Equal(t, 1, s.Items[0].Position)
}

func TestCommandsApplyInOrder(t *testing.T) {
	m := NewManager(setFixture(), pubsub.NewPubSub[string]())
	m.SetMode(ModeScrub)
	m.NextLap()
	m.NextLap()
	m.PreviousLap()
	m.doSync(time.Now())

	assert.Equal(t, 1, m.Snapshot().LapCount)
}

func TestLiveModePublishesAcceleratedClock(t *testing.T) {
	m := NewManager(setFixture(), pubsub.NewPubSub[string]())
	bus := m.pubsubMgr
	ch := bus.Subscribe(PubSubSnapshotTopic)

	start := time.Now()
	m.Start()
	m.doSync(start)
	<-ch
	m.doSync(start.Add(10 * time.Second)) // 100 race seconds

	payload := <-ch
	s, err := caster.JSONChannelCaster[Snapshot]{}.From(payload)
	require.NoError(t, err)
	assert.Equal(t, ModeLive, s.Mode)
	assert.Equal(t, "00:01:40", s.Clock)
	// 100s into the race both cars have completed lap 1
	require.Len(t, s.Items, 2)
	assert.Equal(t, 1, s.Items[0].Lap.LapNumber)
	assert.Equal(t, 1, s.Items[1].Lap.LapNumber)
}

func TestFinishPublishesRaceFinishedOnce(t *testing.T) {
	m := NewManager(setFixture(), pubsub.NewPubSub[string]())
	ch := m.pubsubMgr.Subscribe(PubSubRaceFinishedTopic)

	m.Finish()
	m.doSync(time.Now())

	payload := <-ch
	rf, err := caster.JSONChannelCaster[RaceFinished]{}.From(payload)
	require.NoError(t, err)
	assert.Equal(t, "Le Mans", rf.EventName)

	// further passes do not republish
	m.doSync(time.Now())
	select {
	case <-ch:
		t.Fatal("race finished published twice")
	default:
	}
}

func TestFastestLapPublishedOnImprovement(t *testing.T) {
	set := race.BuildSet("Le Mans", []race.Lap{
		{CarNumber: 8, DriverName: "S. Buemi", LapNumber: 1, LapTime: 88766, Elapsed: 88766},
		{CarNumber: 7, DriverName: "M. Conway", LapNumber: 1, LapTime: 90152, Elapsed: 90152},
		{CarNumber: 8, DriverName: "S. Buemi", LapNumber: 2, LapTime: 87000, Elapsed: 175766},
		{CarNumber: 7, DriverName: "M. Conway", LapNumber: 2, LapTime: 108691, Elapsed: 198843},
	})
	m := NewManager(set, pubsub.NewPubSub[string]())
	ch := m.pubsubMgr.Subscribe(PubSubFastestLapTopic)

	m.SetMode(ModeScrub)
	m.SetLapCount(1)
	m.doSync(time.Now())

	// the first observed fastest lap is a baseline, not an improvement
	select {
	case <-ch:
		t.Fatal("baseline fastest lap published")
	default:
	}

	m.SetLapCount(2)
	m.doSync(time.Now())

	payload := <-ch
	fl, err := caster.JSONChannelCaster[FastestLap]{}.From(payload)
	require.NoError(t, err)
	assert.Equal(t, 8, fl.CarNumber)
	assert.Equal(t, "S. Buemi", fl.DriverName)
	assert.EqualValues(t, 87000, fl.LapTime)

	// unchanged fastest lap does not republish
	m.doSync(time.Now())
	select {
	case <-ch:
		t.Fatal("fastest lap published twice")
	default:
	}
}
