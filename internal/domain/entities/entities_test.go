package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesBetween(t *testing.T) {
	assert.Equal(t, 8*60+30, MinutesBetween("09:00", "17:30"))
	assert.Equal(t, 0, MinutesBetween("09:00", "09:00"))

	// Check-out before check-in means an overnight shift.
	assert.Equal(t, 8*60, MinutesBetween("22:00", "06:00"))
	assert.Equal(t, 24*60-1, MinutesBetween("12:01", "12:00"))
}

func TestFormatAndParseMinutes(t *testing.T) {
	assert.Equal(t, "8h 30m", FormatMinutes(8*60+30))
	assert.Equal(t, "0h 0m", FormatMinutes(0))

	assert.Equal(t, 8*60+30, ParseMinutes("8h 30m"))
	assert.Equal(t, 8*60+30, ParseMinutes("8h30m"))
	assert.Equal(t, 0, ParseMinutes(""))
	assert.Equal(t, 0, ParseMinutes("all day"))
}

func TestEventOccursOn(t *testing.T) {
	event := Event{Date: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)}

	assert.True(t, event.OccursOn(time.Date(2026, 3, 11, 23, 59, 0, 0, time.UTC)))
	assert.False(t, event.OccursOn(time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)))
}

func TestAttendanceMonthKey(t *testing.T) {
	r := AttendanceRecord{Date: "2026-03-11"}
	assert.Equal(t, "2026-03", r.MonthKey())

	short := AttendanceRecord{Date: "bad"}
	assert.Equal(t, "bad", short.MonthKey())
}

func TestReminderIsDue(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	due := Reminder{DueAt: now.Add(-time.Second)}
	assert.True(t, due.IsDue(now))

	exact := Reminder{DueAt: now}
	assert.True(t, exact.IsDue(now))

	future := Reminder{DueAt: now.Add(time.Second)}
	assert.False(t, future.IsDue(now))

	alerted := Reminder{DueAt: now.Add(-time.Hour), Alerted: true}
	assert.False(t, alerted.IsDue(now))
}

func TestEnumValidity(t *testing.T) {
	for _, s := range []EventStatus{EventStatusScheduled, EventStatusCompleted, EventStatusCancelled, EventStatusRescheduled} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, EventStatus("postponed").IsValid())

	assert.True(t, CategoryMeeting.IsValid())
	assert.False(t, EventCategory("leisure").IsValid())

	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("urgent").IsValid())

	assert.True(t, AttendancePresent.IsValid())
	assert.True(t, AttendanceAbsent.IsValid())
	assert.False(t, AttendanceStatus("WFH").IsValid())
}
