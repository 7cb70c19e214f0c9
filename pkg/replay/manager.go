package replay

import (
	"fmt"
	"log"
	"sync"
	"time"

	"raceboardbot/pkg/caster"
	"raceboardbot/pkg/clock"
	"raceboardbot/pkg/duration"
	"raceboardbot/pkg/helper"
	"raceboardbot/pkg/pubsub"
	"raceboardbot/pkg/queues"
	"raceboardbot/pkg/race"
	"raceboardbot/pkg/standings"
)

const (
	PubSubSnapshotTopic     = "snapshot"
	PubSubRaceFinishedTopic = "raceFinished"
	PubSubFastestLapTopic   = "fastestLap"
)

// Mode selects how the race instant is addressed.
type Mode string

const (
	// ModeLive replays the race against the accelerated wall clock.
	ModeLive Mode = "live"
	// ModeScrub addresses the race by lap count.
	ModeScrub Mode = "scrub"
)

// Snapshot is what the engine publishes after every change: the full
// board, rebuilt from scratch.
type Snapshot struct {
	EventName  string                      `json:"eventName"`
	Mode       Mode                        `json:"mode"`
	ClockState string                      `json:"clockState"`
	Clock      string                      `json:"clock"`
	Elapsed    duration.Duration           `json:"elapsed"`
	LapCount   int                         `json:"lapCount"`
	LapTotal   int                         `json:"lapTotal"`
	Items      []standings.LeaderboardItem `json:"items"`
	Analysis   standings.Analysis          `json:"analysis"`
}

// RaceFinished is published once when the clock is finished.
type RaceFinished struct {
	EventName    string `json:"eventName"`
	WinnerCar    int    `json:"winnerCar"`
	WinnerDriver string `json:"winnerDriver"`
	LapTotal     int    `json:"lapTotal"`
}

func (rf RaceFinished) String() string {
	return fmt.Sprintf("  ▸ Evento: %s\n  ▸ Ganador: #%d %s\n  ▸ Vueltas: %d", rf.EventName, rf.WinnerCar, rf.WinnerDriver, rf.LapTotal)
}

// FastestLap is published whenever the overall fastest lap improves.
type FastestLap struct {
	EventName  string            `json:"eventName"`
	CarNumber  int               `json:"carNumber"`
	DriverName string            `json:"driverName"`
	LapTime    duration.Duration `json:"lapTime"`
}

func (fl FastestLap) String() string {
	return fmt.Sprintf("  ▸ Evento: %s\n  ▸ Coche: #%d %s\n  ▸ Tiempo: %s", fl.EventName, fl.CarNumber, fl.DriverName, helper.ToLapTime(fl.LapTime))
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdPause
	cmdFinish
	cmdSetLapCount
	cmdNextLap
	cmdPreviousLap
	cmdSetMode
)

type command struct {
	kind     commandKind
	lapCount int
	mode     Mode
}

// Manager owns the only mutable state of the system: the race clock and
// the scrub position. Commands arrive from the bot and web handlers,
// queue up, and are applied on the next engine pass. Everything the
// consumers see is derived fresh from (clock, set) per pass.
type Manager struct {
	mu             sync.Mutex
	set            *race.Set
	clk            *clock.Clock
	scrub          *race.ScrubClock
	mode           Mode
	pending        *queues.Queue[command]
	pubsubMgr      *pubsub.PubSub[string]
	snapshotCaster caster.ChannelCaster[Snapshot]
	finishedCaster caster.ChannelCaster[RaceFinished]
	fastestCaster  caster.ChannelCaster[FastestLap]
	finishedSent   bool
	lastFastest    duration.Duration
}

func NewManager(set *race.Set, pubsubMgr *pubsub.PubSub[string]) *Manager {
	standings.AnnotatePositions(set)
	return &Manager{
		set:            set,
		clk:            clock.New(),
		scrub:          race.NewScrubClock(set),
		mode:           ModeLive,
		pending:        queues.NewQueue[command](),
		pubsubMgr:      pubsubMgr,
		snapshotCaster: caster.JSONChannelCaster[Snapshot]{},
		finishedCaster: caster.JSONChannelCaster[RaceFinished]{},
		fastestCaster:  caster.JSONChannelCaster[FastestLap]{},
	}
}

func (m *Manager) push(c command) {
	m.mu.Lock()
	m.pending.Push(c)
	m.mu.Unlock()
}

func (m *Manager) Start()            { m.push(command{kind: cmdStart}) }
func (m *Manager) Pause()            { m.push(command{kind: cmdPause}) }
func (m *Manager) Finish()           { m.push(command{kind: cmdFinish}) }
func (m *Manager) NextLap()          { m.push(command{kind: cmdNextLap}) }
func (m *Manager) PreviousLap()      { m.push(command{kind: cmdPreviousLap}) }
func (m *Manager) SetLapCount(n int) { m.push(command{kind: cmdSetLapCount, lapCount: n}) }
func (m *Manager) SetMode(mode Mode) { m.push(command{kind: cmdSetMode, mode: mode}) }

// Sync runs one immediate pass and then keeps ticking until exitChan.
func (m *Manager) Sync(ticker *time.Ticker, exitChan chan bool) {
	m.doSync(time.Now())
	go func() {
		for {
			select {
			case <-exitChan:
				return
			case t := <-ticker.C:
				m.doSync(t)
			}
		}
	}()
}

func (m *Manager) doSync(t time.Time) {
	m.mu.Lock()
	for !m.pending.IsEmpty() {
		m.apply(m.pending.Pop(), t)
	}
	m.clk.Tick(t)
	snapshot := m.snapshot()
	finished := m.clk.State() == clock.StateFinished && !m.finishedSent
	if finished {
		m.finishedSent = true
	}
	improved := false
	if fastest := snapshot.Analysis.FastestLapTime; fastest > 0 && (m.lastFastest == 0 || fastest < m.lastFastest) {
		improved = m.lastFastest != 0
		m.lastFastest = fastest
	}
	m.mu.Unlock()

	payload, err := m.snapshotCaster.To(snapshot)
	if err != nil {
		log.Printf("Error casting snapshot to json: %s", err.Error())
	} else {
		m.pubsubMgr.Publish(PubSubSnapshotTopic, payload)
	}

	if finished && len(snapshot.Items) > 0 {
		winner := snapshot.Items[0]
		payload, err := m.finishedCaster.To(RaceFinished{
			EventName:    snapshot.EventName,
			WinnerCar:    winner.CarNumber,
			WinnerDriver: winner.DriverName,
			LapTotal:     snapshot.Analysis.LapTotal,
		})
		if err != nil {
			log.Printf("Error casting race finished to json: %s", err.Error())
		} else {
			m.pubsubMgr.Publish(PubSubRaceFinishedTopic, payload)
		}
	}

	if improved {
		event := FastestLap{EventName: snapshot.EventName, LapTime: snapshot.Analysis.FastestLapTime}
		for _, item := range snapshot.Items {
			if item.BestLapTime == event.LapTime {
				event.CarNumber = item.CarNumber
				event.DriverName = item.DriverName
				break
			}
		}
		payload, err := m.fastestCaster.To(event)
		if err != nil {
			log.Printf("Error casting fastest lap to json: %s", err.Error())
		} else {
			m.pubsubMgr.Publish(PubSubFastestLapTopic, payload)
		}
	}
}

func (m *Manager) apply(c command, t time.Time) {
	switch c.kind {
	case cmdStart:
		m.clk.Start(t)
	case cmdPause:
		m.clk.Pause()
	case cmdFinish:
		m.clk.Finish()
	case cmdSetLapCount:
		m.scrub.SetLapCount(c.lapCount)
	case cmdNextLap:
		m.scrub.NextLap()
	case cmdPreviousLap:
		m.scrub.PreviousLap()
	case cmdSetMode:
		if c.mode == ModeLive || c.mode == ModeScrub {
			m.mode = c.mode
		}
	}
}

func (m *Manager) position() standings.Position {
	if m.mode == ModeScrub {
		return standings.AtLap(m.scrub.LapCount())
	}
	return standings.AtTime(m.clk.Elapsed())
}

func (m *Manager) snapshot() Snapshot {
	at := m.position()
	elapsed := m.clk.Elapsed()
	clockString := m.clk.String()
	if m.mode == ModeScrub {
		elapsed = m.scrub.Elapsed()
		clockString = m.scrub.String()
	}
	return Snapshot{
		EventName:  m.set.EventName,
		Mode:       m.mode,
		ClockState: m.clk.State().String(),
		Clock:      clockString,
		Elapsed:    elapsed,
		LapCount:   m.scrub.LapCount(),
		LapTotal:   m.set.LapTotal(),
		Items:      standings.Assemble(at, m.set.Cars),
		Analysis:   standings.Analyze(at, m.set.Cars),
	}
}

// Snapshot derives the current board on demand, outside the tick loop.
// Pending commands are applied first so a board rendered right after a
// playback button press reflects it. Used by the bot and web handlers.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := time.Now()
	for !m.pending.IsEmpty() {
		m.apply(m.pending.Pop(), t)
	}
	return m.snapshot()
}
