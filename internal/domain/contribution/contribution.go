// Package contribution builds the day-by-day completion calendar used to
// render an activity heatmap, together with its streak summary.
//
// All dates are UTC calendar days. The calendar is dense: every day of the
// window appears exactly once, newest first, with a zero count when nothing
// was completed that day.
package contribution

import (
	"fmt"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Window size limits for the days parameter.
const (
	MinDays     = 1
	MaxDays     = 365
	DefaultDays = 365

	// MaxWindowDays bounds explicit start/end ranges.
	MaxWindowDays = 3660
)

// Window validation errors
var (
	ErrInvalidDays  = fmt.Errorf("%w: days must be between %d and %d", domain.ErrValidation, MinDays, MaxDays)
	ErrInvalidRange = fmt.Errorf("%w: start date must not be after end date", domain.ErrValidation)
	ErrRangeTooLong = fmt.Errorf("%w: date range must not exceed %d days", domain.ErrValidation, MaxWindowDays)
)

// Day is one calendar entry.
type Day struct {
	Date  time.Time
	Count int
}

// DateString returns the day formatted as YYYY-MM-DD.
func (d Day) DateString() string {
	return d.Date.Format(DateLayout)
}

// Summary aggregates a calendar.
type Summary struct {
	TotalContributions int
	LongestStreak      int
	CurrentStreak      int
}

// Result is a dense calendar, newest day first, and its summary.
type Result struct {
	Calendar []Day
	Summary  Summary
}

// Window is an inclusive range of UTC calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days in the window.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// Contains reports whether the calendar day of t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	d := Truncate(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Truncate returns midnight UTC of the calendar day of t.
func Truncate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrInvalidFormat, s)
	}
	return t, nil
}

// ResolveWindow turns the optional request bounds into a concrete window.
// The end defaults to today; the start defaults to days-1 days before the end.
// When both bounds are given days is only range-checked, and the range may
// span at most MaxWindowDays.
func ResolveWindow(start, end *time.Time, days int, today time.Time) (Window, error) {
	if days < MinDays || days > MaxDays {
		return Window{}, ErrInvalidDays
	}

	w := Window{End: Truncate(today)}
	if end != nil {
		w.End = Truncate(*end)
	}

	if start != nil {
		w.Start = Truncate(*start)
	} else {
		w.Start = w.End.AddDate(0, 0, -(days - 1))
	}

	if w.Start.After(w.End) {
		return Window{}, ErrInvalidRange
	}
	if w.Start.Before(w.End.AddDate(0, 0, -(MaxWindowDays - 1))) {
		return Window{}, ErrRangeTooLong
	}

	return w, nil
}

// Compute counts each completion timestamp on its UTC calendar day and
// returns the dense calendar for w with its streak summary. Timestamps
// outside the window are ignored.
func Compute(completions []time.Time, w Window) Result {
	counts := make(map[string]int)
	for _, completedAt := range completions {
		if w.Contains(completedAt) {
			counts[completedAt.UTC().Format(DateLayout)]++
		}
	}

	calendar := make([]Day, 0, w.Days())
	for day := w.End; !day.Before(w.Start); day = day.AddDate(0, 0, -1) {
		calendar = append(calendar, Day{
			Date:  day,
			Count: counts[day.Format(DateLayout)],
		})
	}

	return Result{
		Calendar: calendar,
		Summary:  summarize(calendar),
	}
}

// summarize expects a dense calendar ordered newest first, so neighbouring
// entries are neighbouring days.
func summarize(calendar []Day) Summary {
	var summary Summary

	run := 0
	for i := len(calendar) - 1; i >= 0; i-- {
		summary.TotalContributions += calendar[i].Count
		if calendar[i].Count == 0 {
			run = 0
			continue
		}
		run++
		if run > summary.LongestStreak {
			summary.LongestStreak = run
		}
	}

	for _, day := range calendar {
		if day.Count == 0 {
			break
		}
		summary.CurrentStreak++
	}

	return summary
}
