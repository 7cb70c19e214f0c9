package race

import "raceboardbot/pkg/duration"

// ScrubClock addresses the race by lap count instead of wall time. Its
// current instant is derived from the loaded lap data, see Set.ElapsedAt.
type ScrubClock struct {
	set      *Set
	lapCount int
}

func NewScrubClock(set *Set) *ScrubClock {
	return &ScrubClock{set: set}
}

func (s *ScrubClock) LapCount() int {
	return s.lapCount
}

// SetLapCount moves the scrubber, clamped to [0, LapTotal].
func (s *ScrubClock) SetLapCount(n int) {
	if n < 0 {
		n = 0
	}
	if total := s.set.LapTotal(); n > total {
		n = total
	}
	s.lapCount = n
}

func (s *ScrubClock) NextLap() {
	s.SetLapCount(s.lapCount + 1)
}

func (s *ScrubClock) PreviousLap() {
	s.SetLapCount(s.lapCount - 1)
}

func (s *ScrubClock) Elapsed() duration.Duration {
	return s.set.ElapsedAt(s.lapCount)
}

func (s *ScrubClock) String() string {
	return s.Elapsed().Clock()
}
