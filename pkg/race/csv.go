package race

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"raceboardbot/pkg/duration"
)

// Column names of the per-event timing feed (Al Kamel style, `;` separated).
const (
	colNumber        = "NUMBER"
	colDriverNumber  = "DRIVER_NUMBER"
	colLapNumber     = "LAP_NUMBER"
	colLapTime       = "LAP_TIME"
	colLapImprove    = "LAP_IMPROVEMENT"
	colCrossingPit   = "CROSSING_FINISH_LINE_IN_PIT"
	colS1            = "S1"
	colS1Improve     = "S1_IMPROVEMENT"
	colS2            = "S2"
	colS2Improve     = "S2_IMPROVEMENT"
	colS3            = "S3"
	colS3Improve     = "S3_IMPROVEMENT"
	colKph           = "KPH"
	colElapsed       = "ELAPSED"
	colHour          = "HOUR"
	colTopSpeed      = "TOP_SPEED"
	colDriverName    = "DRIVER_NAME"
	colPitTime       = "PIT_TIME"
	colClass         = "CLASS"
	colGroup         = "GROUP"
	colTeam          = "TEAM"
	colManufacturer  = "MANUFACTURER"
)

// FieldError reports one malformed record of the feed. Records with a
// FieldError are never half-populated into the set, the loader skips
// them whole.
type FieldError struct {
	Line  int
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("line %d: field %s: %s", e.Line, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Decoder reads normalized lap records from a timing CSV. Blank values
// are tolerated for the sector, top speed and pit time columns, which
// some seasons omit; any other field that fails to parse rejects the
// record.
type Decoder struct {
	r      *csv.Reader
	fields map[string]int
	line   int
}

func NewDecoder(r io.Reader) (*Decoder, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "reading feed header")
	}
	fields := map[string]int{}
	for i, name := range header {
		fields[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{colNumber, colLapNumber, colLapTime, colElapsed, colDriverName, colClass, colTeam} {
		if _, ok := fields[required]; !ok {
			return nil, errors.Errorf("feed header misses column %s", required)
		}
	}
	return &Decoder{r: cr, fields: fields, line: 1}, nil
}

// Read returns the next lap record, io.EOF at the end of the feed, or a
// *FieldError for a malformed record.
func (d *Decoder) Read() (Lap, error) {
	record, err := d.r.Read()
	if err == io.EOF {
		return Lap{}, io.EOF
	}
	d.line++
	if err != nil {
		return Lap{}, errors.Wrapf(err, "reading record at line %d", d.line)
	}

	row := &rowReader{decoder: d, record: record}
	lap := Lap{
		CarNumber:     row.intField(colNumber),
		DriverNumber:  row.optionalIntField(colDriverNumber),
		DriverName:    row.stringField(colDriverName),
		LapNumber:     row.intField(colLapNumber),
		LapTime:       row.clockField(colLapTime),
		Improvement:   row.optionalIntField(colLapImprove),
		CrossedPit:    row.flagField(colCrossingPit, "B"),
		S1:            row.optionalClockField(colS1),
		S1Improvement: row.optionalIntField(colS1Improve),
		S2:            row.optionalClockField(colS2),
		S2Improvement: row.optionalIntField(colS2Improve),
		S3:            row.optionalClockField(colS3),
		S3Improvement: row.optionalIntField(colS3Improve),
		Kph:           row.optionalFloatField(colKph),
		Elapsed:       row.clockField(colElapsed),
		Hour:          row.optionalClockField(colHour),
		TopSpeed:      row.optionalFloatField(colTopSpeed),
		PitTime:       row.optionalClockField(colPitTime),
		Class:         row.stringField(colClass),
		Group:         row.optionalStringField(colGroup),
		Team:          row.stringField(colTeam),
		Manufacturer:  row.optionalStringField(colManufacturer),
	}
	if row.err != nil {
		return Lap{}, row.err
	}
	return lap, nil
}

// rowReader accumulates the first field error of a record so the field
// accessors can stay un-nested at the call site.
type rowReader struct {
	decoder *Decoder
	record  []string
	err     error
}

func (r *rowReader) raw(field string) (string, bool) {
	idx, ok := r.decoder.fields[field]
	if !ok || idx >= len(r.record) {
		return "", false
	}
	return strings.TrimSpace(r.record[idx]), true
}

func (r *rowReader) fail(field string, err error) {
	if r.err == nil {
		r.err = &FieldError{Line: r.decoder.line, Field: field, Err: err}
	}
}

func (r *rowReader) stringField(field string) string {
	v, ok := r.raw(field)
	if !ok || v == "" {
		r.fail(field, errors.New("missing value"))
		return ""
	}
	return v
}

func (r *rowReader) optionalStringField(field string) string {
	v, _ := r.raw(field)
	return v
}

func (r *rowReader) intField(field string) int {
	v, ok := r.raw(field)
	if !ok || v == "" {
		r.fail(field, errors.New("missing value"))
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	return n
}

func (r *rowReader) optionalIntField(field string) int {
	v, ok := r.raw(field)
	if !ok || v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	return n
}

func (r *rowReader) optionalFloatField(field string) float64 {
	v, ok := r.raw(field)
	if !ok || v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	return f
}

func (r *rowReader) clockField(field string) duration.Duration {
	v, ok := r.raw(field)
	if !ok || v == "" {
		r.fail(field, errors.New("missing value"))
		return 0
	}
	d, err := duration.Parse(v)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	return d
}

func (r *rowReader) optionalClockField(field string) duration.Duration {
	v, ok := r.raw(field)
	if !ok || v == "" {
		return 0
	}
	d, err := duration.Parse(v)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	return d
}

func (r *rowReader) flagField(field, set string) bool {
	v, _ := r.raw(field)
	return v == set
}

// LoadFile reads a whole event feed, skipping and logging malformed
// records, and groups the surviving laps into a car set.
func LoadFile(path, eventName string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening feed %s", path)
	}
	defer f.Close()

	d, err := NewDecoder(f)
	if err != nil {
		return nil, err
	}
	laps := []Lap{}
	for {
		lap, err := d.Read()
		if err == io.EOF {
			break
		}
		var fieldErr *FieldError
		if errors.As(err, &fieldErr) {
			log.Printf("Skipping malformed record in %s: %s", path, fieldErr)
			continue
		}
		if err != nil {
			return nil, err
		}
		laps = append(laps, lap)
	}
	return BuildSet(eventName, laps), nil
}
