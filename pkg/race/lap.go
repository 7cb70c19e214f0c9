package race

import "raceboardbot/pkg/duration"

// Lap is one normalized timing record from the event feed. Optional
// fields (sectors, top speed, pit time) are zero when the season feed
// omits them; zero never means a measured zero time.
type Lap struct {
	CarNumber     int               `json:"carNumber"`
	DriverNumber  int               `json:"driverNumber"`
	DriverName    string            `json:"driverName"`
	LapNumber     int               `json:"lapNumber"`
	LapTime       duration.Duration `json:"lapTime"`
	Improvement   int               `json:"improvement"`
	CrossedPit    bool              `json:"crossedPit"`
	S1            duration.Duration `json:"s1,omitempty"`
	S1Improvement int               `json:"s1Improvement"`
	S2            duration.Duration `json:"s2,omitempty"`
	S2Improvement int               `json:"s2Improvement"`
	S3            duration.Duration `json:"s3,omitempty"`
	S3Improvement int               `json:"s3Improvement"`
	Kph           float64           `json:"kph"`
	Elapsed       duration.Duration `json:"elapsed"`
	Hour          duration.Duration `json:"hour"`
	TopSpeed      float64           `json:"topSpeed,omitempty"`
	PitTime       duration.Duration `json:"pitTime,omitempty"`
	Class         string            `json:"class"`
	Group         string            `json:"group"`
	Team          string            `json:"team"`
	Manufacturer  string            `json:"manufacturer"`

	// Best is the running minimum lap time for this car up to and
	// including this lap, filled in while building the car set.
	Best duration.Duration `json:"best"`
	// Position is the car's standing once this lap was completed,
	// filled in while building the car set.
	Position int `json:"position,omitempty"`
}

// IsZero reports whether the lap is the synthetic placeholder used for
// cars that have not completed any lap yet.
func (l Lap) IsZero() bool {
	return l.LapNumber == 0
}
