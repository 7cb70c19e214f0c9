package helper

import (
	"fmt"
	"hash/fnv"
	"strings"

	"raceboardbot/pkg/duration"
)

// ToLapTime renders a lap time as MM:SS.mmm, "-" when there is none.
func ToLapTime(d duration.Duration) string {
	if d <= 0 {
		return "-"
	}
	ms := d.Milliseconds()
	minutes := ms / duration.Minute.Milliseconds()
	ms -= minutes * duration.Minute.Milliseconds()
	seconds := ms / duration.Second.Milliseconds()
	ms -= seconds * duration.Second.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, ms)
}

// ToDiff renders a time deficit right-aligned, "-" when there is none.
func ToDiff(d duration.Duration) string {
	if d <= 0 {
		return "-"
	}
	diff := fmt.Sprintf("%.3fs", float64(d.Milliseconds())/1000.0)
	if chars := len(diff); chars < 9 {
		// add spaces to the left
		diff = strings.Repeat(" ", 9-chars) + diff
	}
	return diff
}

// ToSectorTime renders a sector as seconds with milliseconds, "-" when
// the feed omitted it.
func ToSectorTime(d duration.Duration) string {
	if d <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.3f", float64(d.Milliseconds())/1000.0)
}

func ToHoursAndMinutes(d duration.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	hours := ms / duration.Hour.Milliseconds()
	ms -= hours * duration.Hour.Milliseconds()
	minutes := ms / duration.Minute.Milliseconds()
	return fmt.Sprintf("%02dh %02dm", hours, minutes)
}

func GetDriverCodeName(name string) string {
	// this function reads a name with possible surname and will return the first letter of the name and the first 3 letters of the surname
	// if the name is empty, it will return an empty string
	if name == "" {
		return ""
	}
	// split the name into words
	words := strings.Split(name, " ")
	// get the first letter of the first word
	code := string(words[0][0])
	// if there is a second word, get the first 2 letters of it
	if len(words) > 1 {
		if len(words[1]) > 2 {
			code += words[1][:2]
		} else {
			code += words[1]
		}
	} else {
		if len(words[0]) > 2 {
			code += words[0][1:3]
		} else {
			code += words[0]
		}
	}
	return strings.ToUpper(code)
}

// convert name to a hash with a limit of 15 characters
func ToID(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return fmt.Sprint(h.Sum32())
}
