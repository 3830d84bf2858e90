package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/logreport/internal/parser"
)

// TimestampLayout is the only accepted timestamp form, "YYYY-MM-DD HH:MM:SS".
const TimestampLayout = "2006-01-02 15:04:05"

// HoursPerDay is the size of HourTally.
const HoursPerDay = 24

// ErrMissingTimestamp marks a row too short to carry a timestamp field.
var ErrMissingTimestamp = errors.New("missing timestamp field")

// HourTally counts rows per hour of day.
type HourTally [HoursPerDay]int

// Sum returns the number of rows counted.
func (t HourTally) Sum() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// HourCount is one hour of day and its hit count.
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// RowError records a row left out of the hourly tally.
type RowError struct {
	// Row is the 1-based row number.
	Row   int    `json:"row"`
	Value string `json:"value"`
	Err   error  `json:"-"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// HourlyReport is the per-hour distribution of one dataset.
type HourlyReport struct {
	Tally HourTally `json:"tally"`
	// Ranked always holds 24 entries, count descending, ties by hour.
	Ranked   []HourCount `json:"ranked"`
	Failures []RowError  `json:"failures,omitempty"`
}

// ParseHour extracts the hour from a TimestampLayout string. Fractional
// seconds, which time.Parse would otherwise accept, are rejected.
func ParseHour(ts string) (int, error) {
	if len(ts) != len(TimestampLayout) {
		return 0, fmt.Errorf("parsing time %q: want layout %q", ts, TimestampLayout)
	}
	t, err := time.Parse(TimestampLayout, ts)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}

// HourlyHits tallies rows by the hour in their timestamp field. Rows whose
// timestamp is missing or does not parse are listed in Failures and
// skipped; they never stop the pass.
func HourlyHits(rows parser.Dataset) HourlyReport {
	var r HourlyReport
	for i, row := range rows {
		ts, ok := row.Timestamp()
		if !ok {
			r.Failures = append(r.Failures, RowError{Row: i + 1, Err: ErrMissingTimestamp})
			continue
		}
		hour, err := ParseHour(ts)
		if err != nil {
			r.Failures = append(r.Failures, RowError{Row: i + 1, Value: ts, Err: err})
			continue
		}
		r.Tally[hour]++
	}
	r.Ranked = rankHours(r.Tally)
	return r
}

func rankHours(tally HourTally) []HourCount {
	ranked := make([]HourCount, HoursPerDay)
	for h, c := range tally {
		ranked[h] = HourCount{Hour: h, Count: c}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	return ranked
}
