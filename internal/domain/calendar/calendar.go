// Package calendar holds the date bucketing engine: pure functions that
// decide which calendar day an event belongs to and how a week window moves.
package calendar

import (
	"sort"
	"time"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
)

// DateLayout is the yyyy-mm-dd form used for calendar-day keys throughout
// the trackers and the storage layer.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC, the canonical calendar-day value.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate renders t as a yyyy-mm-dd day key.
func FormatDate(t time.Time) string {
	return Day(t).Format(DateLayout)
}

// ParseDate parses a yyyy-mm-dd day key into a midnight-UTC time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// DaysInRange returns one entry per calendar day from start through end,
// both endpoints included, ascending. An inverted range yields no days.
func DaysInRange(start, end time.Time) []time.Time {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil
	}
	days := make([]time.Time, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// EventsForDate filters events to those occurring on date's calendar day,
// ordered by start time ascending. The sort is stable so events sharing a
// start time keep their collection order.
func EventsForDate(events []entities.Event, date time.Time) []entities.Event {
	var out []entities.Event
	for _, e := range events {
		if e.OccursOn(date) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// WeekWindow returns the inclusive [start, end] of the week containing
// anchor, where weeks begin on weekStart.
func WeekWindow(anchor time.Time, weekStart time.Weekday) (time.Time, time.Time) {
	day := Day(anchor)
	offset := (int(day.Weekday()) - int(weekStart) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// PrevWeek and NextWeek move a window anchor by a fixed seven-day offset.
func PrevWeek(anchor time.Time) time.Time { return Day(anchor).AddDate(0, 0, -7) }
func NextWeek(anchor time.Time) time.Time { return Day(anchor).AddDate(0, 0, 7) }

// InRange reports whether t's calendar day falls within [start, end],
// endpoints included.
func InRange(t, start, end time.Time) bool {
	d := Day(t)
	return !d.Before(Day(start)) && !d.After(Day(end))
}
