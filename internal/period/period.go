// Package period handles fiscal quarter boundaries and target pro-rating.
package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// ErrInvalidPeriod is returned for unparseable labels or inverted ranges
var ErrInvalidPeriod = errors.New("invalid period")

var quarterPattern = regexp.MustCompile(`Q([1-4])\s+(\d{4})`)

// Period is an inclusive range of calendar dates in UTC.
// Label is set when the period came from a quarter label.
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// ParseQuarter maps a "Q<1-4> <year>" label to its three-month window
func ParseQuarter(label string) (Period, error) {
	m := quarterPattern.FindStringSubmatch(label)
	if m == nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, label)
	}
	q, _ := strconv.Atoi(m[1])
	year, _ := strconv.Atoi(m[2])
	return Quarter(year, q), nil
}

// Quarter returns the period for quarter q (1-4) of year
func Quarter(year, q int) Period {
	startMonth := time.Month((q-1)*3 + 1)
	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the month after the window is its last day
	end := time.Date(year, startMonth+3, 0, 0, 0, 0, 0, time.UTC)
	return Period{
		Label: fmt.Sprintf("Q%d %d", q, year),
		Start: start,
		End:   end,
	}
}

// CurrentQuarter returns the quarter containing now
func CurrentQuarter(now time.Time) Period {
	now = now.UTC()
	return Quarter(now.Year(), (int(now.Month())-1)/3+1)
}

// QuarterLabel returns the "Q<n> <year>" label of the quarter containing t
func QuarterLabel(t time.Time) string {
	return CurrentQuarter(t).Label
}

// New builds a period from explicit dates. Times are truncated to the day.
func New(start, end time.Time) (Period, error) {
	s, e := Day(start), Day(end)
	if e.Before(s) {
		return Period{}, fmt.Errorf("%w: end %s before start %s", ErrInvalidPeriod, e.Format(DateLayout), s.Format(DateLayout))
	}
	return Period{Start: s, End: e}, nil
}

// Parse accepts either a quarter label or a pair of YYYY-MM-DD dates.
// A label wins when both are given; when neither is given the quarter containing now is used.
func Parse(label, start, end string, now time.Time) (Period, error) {
	if label != "" {
		return ParseQuarter(label)
	}
	if start == "" && end == "" {
		return CurrentQuarter(now), nil
	}
	if start == "" || end == "" {
		return Period{}, fmt.Errorf("%w: both start and end are required", ErrInvalidPeriod)
	}
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return Period{}, fmt.Errorf("%w: start: %v", ErrInvalidPeriod, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return Period{}, fmt.Errorf("%w: end: %v", ErrInvalidPeriod, err)
	}
	return New(s, e)
}

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EndExclusive returns midnight of the day after End, for half-open range queries
func (p Period) EndExclusive() time.Time {
	return p.End.AddDate(0, 0, 1)
}

// Contains reports whether t falls on a day inside the period
func (p Period) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// Overlaps reports whether [start, end] shares at least one day with the period
func (p Period) Overlaps(start, end time.Time) bool {
	return !Day(start).After(p.End) && !Day(end).Before(p.Start)
}

// String renders the label when present, otherwise the date range
func (p Period) String() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Start.Format(DateLayout) + ".." + p.End.Format(DateLayout)
}
