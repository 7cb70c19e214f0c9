package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	assert.Equal(t, "00:00:00.000", Duration(0).String())
	assert.Equal(t, "00:01:28.766", Duration(88766).String())
	assert.Equal(t, "01:30:25.000", (Hour + 30*Minute + 25*Second).String())
	assert.Equal(t, "01:30:25.000", Duration(5425000).String())
}

func TestClock(t *testing.T) {
	assert.Equal(t, "00:00:00", Duration(0).Clock())
	assert.Equal(t, "02:03:04", (2*Hour + 3*Minute + 4*Second + 999).Clock())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Duration
	}{
		{"1:28.766", 88766},
		{"01:28.766", 88766},
		{"1:03:22.413", Hour + 3*Minute + 22*Second + 413},
		{"15:02:49.307", 15*Hour + 2*Minute + 49*Second + 307},
		{"22.5", 22*Second + 500},
		{"45.000", 45 * Second},
		{"0:00.000", 0},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		require.NoError(t, err, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestParseMalformed(t *testing.T) {
	malformed := []string{
		"", "abc", "1:2:3:4", "1:xx.000", "-1:00.000",
		// negative seconds must not collapse into a plausible lap time
		"-5.000", "0:-5.000", "1:-28.766", "0:00:-1.000",
		// fraction is at most millisecond precision
		"1:28.76699",
	}
	for _, in := range malformed {
		_, err := Parse(in)
		assert.Error(t, err, "Parse(%q)", in)
	}
}

func TestRoundTrip(t *testing.T) {
	d := Duration(5425000)
	back, err := Parse(d.String())
	require.NoError(t, err)
	assert.Equal(t, d, back)
}
