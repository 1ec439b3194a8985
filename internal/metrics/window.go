// Package metrics implements the time-windowed activity aggregation engine:
// window calculation, per-metric aggregation and derived statistics. All
// functions are pure; callers pass an immutable snapshot of the activity
// data and the current time.
package metrics

import (
	"errors"
	"time"

	"github.com/fittrack-id/fittrack-backend/pkg/model"
)

// ErrInvalidRange is returned when a custom window's start is after its end.
var ErrInvalidRange = errors.New("invalid range: start is after end")

// WindowKind selects one of the predefined aggregation periods.
type WindowKind string

const (
	WindowToday      WindowKind = "today"
	WindowLast7Days  WindowKind = "7days"
	WindowLast30Days WindowKind = "30days"
	WindowLast90Days WindowKind = "90days"
)

// Days returns the rolling length of the window in days, 0 for today.
func (k WindowKind) Days() int {
	switch k {
	case WindowLast7Days:
		return 7
	case WindowLast30Days:
		return 30
	case WindowLast90Days:
		return 90
	}
	return 0
}

// Valid reports whether k is a known window kind.
func (k WindowKind) Valid() bool {
	switch k {
	case WindowToday, WindowLast7Days, WindowLast30Days, WindowLast90Days:
		return true
	}
	return false
}

// Window is the closed time interval [Start, End] used to filter events.
// An event timestamped exactly at Start is included.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, boundaries included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// DayKeys returns the calendar-day keys the window covers, from Start's day
// through End's day inclusive. Used for water ledger lookups.
func (w Window) DayKeys() []string {
	if w.End.Before(w.Start) {
		return nil
	}
	startDay := midnight(w.Start)
	endDay := midnight(w.End)

	var keys []string
	for d := startDay; !d.After(endDay); d = d.AddDate(0, 0, 1) {
		keys = append(keys, model.DayKey(d))
	}
	return keys
}

// WindowFor computes the aggregation window for the given kind relative to
// now. Today aligns to the local calendar day; the multi-day kinds are
// rolling windows with the time of day preserved.
func WindowFor(kind WindowKind, now time.Time) Window {
	if kind == WindowToday {
		return Window{Start: midnight(now), End: now}
	}
	days := kind.Days()
	if days == 0 {
		days = 7
	}
	return Window{Start: now.AddDate(0, 0, -days), End: now}
}

// CustomWindow builds a window from caller-supplied boundaries, used
// verbatim. Returns ErrInvalidRange when start is after end.
func CustomWindow(start, end time.Time) (Window, error) {
	if start.After(end) {
		return Window{}, ErrInvalidRange
	}
	return Window{Start: start, End: end}, nil
}

// PriorPeriod returns the window of the same length immediately preceding
// the current one, non-overlapping: for a 7-day window that is days 7-13
// ago. The prior window ends just before the current one begins.
func PriorPeriod(kind WindowKind, now time.Time) Window {
	cur := WindowFor(kind, now)
	end := cur.Start.Add(-time.Nanosecond)

	var start time.Time
	if kind == WindowToday {
		start = cur.Start.AddDate(0, 0, -1)
	} else {
		days := kind.Days()
		if days == 0 {
			days = 7
		}
		start = now.AddDate(0, 0, -2*days)
	}
	return Window{Start: start, End: end}
}

// midnight returns the start of t's calendar day in t's location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
