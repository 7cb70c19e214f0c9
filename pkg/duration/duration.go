package duration

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Duration is race time in integer milliseconds. Timing feeds publish
// milliseconds, so there is no sub-millisecond precision to preserve.
type Duration int64

const (
	Millisecond Duration = 1
	Second               = 1000 * Millisecond
	Minute               = 60 * Second
	Hour                 = 60 * Minute
)

func FromMilliseconds(ms int64) Duration {
	return Duration(ms)
}

func (d Duration) Milliseconds() int64 {
	return int64(d)
}

func (d Duration) Add(other Duration) Duration {
	return d + other
}

// String renders the duration as HH:MM:SS.mmm.
func (d Duration) String() string {
	ms := int64(d)
	neg := ""
	if ms < 0 {
		neg = "-"
		ms = -ms
	}
	hours := ms / int64(Hour)
	ms -= hours * int64(Hour)
	minutes := ms / int64(Minute)
	ms -= minutes * int64(Minute)
	seconds := ms / int64(Second)
	ms -= seconds * int64(Second)
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", neg, hours, minutes, seconds, ms)
}

// Clock renders the duration as HH:MM:SS, dropping sub-second precision.
func (d Duration) Clock() string {
	s := d.String()
	return s[:len(s)-4]
}

// Parse reads a clock string into a Duration. Accepted shapes are
// "SS.mmm", "M:SS.mmm" and "H:MM:SS.mmm", with any number of digits in
// the leading component. The fractional part is optional.
func Parse(s string) (Duration, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, errors.New("empty duration string")
	}
	parts := strings.Split(trimmed, ":")
	if len(parts) > 3 {
		return 0, errors.Errorf("malformed duration %q", s)
	}

	var hours, minutes int64
	var err error
	switch len(parts) {
	case 3:
		hours, err = strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "malformed hours in %q", s)
		}
		minutes, err = strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "malformed minutes in %q", s)
		}
	case 2:
		minutes, err = strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "malformed minutes in %q", s)
		}
	}

	secondsPart := parts[len(parts)-1]
	secs, millis, err := parseSeconds(secondsPart)
	if err != nil {
		return 0, errors.Wrapf(err, "malformed seconds in %q", s)
	}
	if hours < 0 || minutes < 0 {
		return 0, errors.Errorf("negative component in %q", s)
	}

	total := hours*int64(Hour) + minutes*int64(Minute) + secs*int64(Second) + millis
	return Duration(total), nil
}

func parseSeconds(s string) (secs, millis int64, err error) {
	whole := s
	frac := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		whole = s[:idx]
		frac = s[idx+1:]
	}
	secs, err = strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	if secs < 0 {
		return 0, 0, errors.Errorf("negative seconds %q", s)
	}
	if frac == "" {
		return secs, 0, nil
	}
	if len(frac) > 3 {
		return 0, 0, errors.Errorf("fraction %q exceeds millisecond precision", frac)
	}
	// normalize the fraction to exactly three digits
	for len(frac) < 3 {
		frac += "0"
	}
	millis, err = strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, 0, err
	}
	return secs, millis, nil
}
