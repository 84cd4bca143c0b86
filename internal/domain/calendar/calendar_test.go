package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayTruncatesToMidnightUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2026, 3, 11, 2, 30, 0, 0, loc) // 2026-03-10 21:00 UTC

	assert.Equal(t, date(2026, 3, 10), Day(in))
}

func TestParseAndFormatDate(t *testing.T) {
	parsed, err := ParseDate("2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, date(2026, 3, 11), parsed)
	assert.Equal(t, "2026-03-11", FormatDate(parsed))

	_, err = ParseDate("11-03-2026")
	assert.Error(t, err)
}

func TestDaysInRange(t *testing.T) {
	days := DaysInRange(date(2026, 3, 10), date(2026, 3, 12))
	require.Len(t, days, 3)
	assert.Equal(t, date(2026, 3, 10), days[0])
	assert.Equal(t, date(2026, 3, 12), days[2])

	// Single-day range.
	assert.Len(t, DaysInRange(date(2026, 3, 10), date(2026, 3, 10)), 1)

	// Inverted range yields nothing.
	assert.Empty(t, DaysInRange(date(2026, 3, 12), date(2026, 3, 10)))
}

func TestEventsForDateFiltersAndSorts(t *testing.T) {
	events := []entities.Event{
		{ID: "late", Date: date(2026, 3, 11), StartTime: "15:00"},
		{ID: "other-day", Date: date(2026, 3, 12), StartTime: "08:00"},
		{ID: "early", Date: date(2026, 3, 11), StartTime: "08:00"},
		{ID: "tie-a", Date: date(2026, 3, 11), StartTime: "12:00"},
		{ID: "tie-b", Date: date(2026, 3, 11), StartTime: "12:00"},
	}

	got := EventsForDate(events, date(2026, 3, 11))
	require.Len(t, got, 4)
	assert.Equal(t, "early", got[0].ID)
	// Equal start times keep collection order.
	assert.Equal(t, "tie-a", got[1].ID)
	assert.Equal(t, "tie-b", got[2].ID)
	assert.Equal(t, "late", got[3].ID)
}

func TestWeekWindow(t *testing.T) {
	// 2026-03-11 is a Wednesday.
	wednesday := date(2026, 3, 11)

	start, end := WeekWindow(wednesday, time.Sunday)
	assert.Equal(t, date(2026, 3, 8), start)
	assert.Equal(t, date(2026, 3, 14), end)

	start, end = WeekWindow(wednesday, time.Monday)
	assert.Equal(t, date(2026, 3, 9), start)
	assert.Equal(t, date(2026, 3, 15), end)

	// An anchor on the week start begins its own window.
	start, _ = WeekWindow(date(2026, 3, 8), time.Sunday)
	assert.Equal(t, date(2026, 3, 8), start)
}

func TestPrevNextWeek(t *testing.T) {
	anchor := date(2026, 3, 11)
	assert.Equal(t, date(2026, 3, 4), PrevWeek(anchor))
	assert.Equal(t, date(2026, 3, 18), NextWeek(anchor))
}

func TestInRange(t *testing.T) {
	start, end := date(2026, 3, 8), date(2026, 3, 14)

	assert.True(t, InRange(date(2026, 3, 8), start, end))
	assert.True(t, InRange(date(2026, 3, 14), start, end))
	assert.False(t, InRange(date(2026, 3, 15), start, end))
	assert.False(t, InRange(date(2026, 3, 7), start, end))
}
