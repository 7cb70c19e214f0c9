package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"raceboardbot/pkg/duration"
)

func TestToLapTime(t *testing.T) {
	assert.Equal(t, "01:28.766", ToLapTime(88766))
	assert.Equal(t, "-", ToLapTime(0))
}

func TestToDiff(t *testing.T) {
	assert.Equal(t, "   1.386s", ToDiff(1386))
	assert.Equal(t, "-", ToDiff(0))
}

func TestToSectorTime(t *testing.T) {
	assert.Equal(t, "24.321", ToSectorTime(24321))
	assert.Equal(t, "-", ToSectorTime(0))
}

func TestToHoursAndMinutes(t *testing.T) {
	assert.Equal(t, "02h 05m", ToHoursAndMinutes(2*duration.Hour+5*duration.Minute))
}

func TestGetDriverCodeName(t *testing.T) {
	assert.Equal(t, "SBU", GetDriverCodeName("Sebastien Buemi"))
	assert.Equal(t, "", GetDriverCodeName(""))
}
