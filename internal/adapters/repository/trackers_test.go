package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
)

func TestAttendanceRepositoryRoundTrip(t *testing.T) {
	kv := newMemKV()
	repo := NewAttendanceRepository(kv, logger.NewNop())

	records := []entities.AttendanceRecord{
		{Date: "2026-03-11", CheckIn: "09:00", CheckOut: "17:30", TotalTime: "8h 30m", Status: entities.AttendancePresent},
		{Date: "2026-03-10", Status: entities.AttendanceAbsent, Notes: "sick"},
	}

	require.NoError(t, repo.Save(context.Background(), records))
	assert.Equal(t, records, repo.Load(context.Background()))
}

func TestAttendanceRepositoryCoercesBadValues(t *testing.T) {
	kv := newMemKV()
	kv.data["attendanceRecords"] = `[
		{"date":"2026-03-11","checkIn":"9am","checkOut":"late","status":"OOO","totalTime":"8h 0m"}
	]`

	repo := NewAttendanceRepository(kv, logger.NewNop())
	records := repo.Load(context.Background())
	require.Len(t, records, 1)

	got := records[0]
	assert.True(t, got.CheckIn.IsZero())
	assert.True(t, got.CheckOut.IsZero())
	assert.Equal(t, entities.AttendancePresent, got.Status)
	assert.Equal(t, "8h 0m", got.TotalTime)
}

func TestStepRepositoryRoundTrip(t *testing.T) {
	kv := newMemKV()
	repo := NewStepRepository(kv, logger.NewNop())

	records := []entities.StepRecord{{Date: "2026-03-11", Steps: 8000}}
	require.NoError(t, repo.Save(context.Background(), records))
	assert.Equal(t, records, repo.Load(context.Background()))
}

func TestStepRepositoryCorruptLoadsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.data["dailySteps"] = "][["

	repo := NewStepRepository(kv, logger.NewNop())
	assert.Empty(t, repo.Load(context.Background()))
}

func TestProfileRepositoryRoundTrip(t *testing.T) {
	kv := newMemKV()
	repo := NewProfileRepository(kv, logger.NewNop())

	// Never saved yet, the zero document comes back.
	assert.Equal(t, entities.Profile{}, repo.Load(context.Background()))

	profile := entities.Profile{ProfilePic: "me.png", LinkedIn: "https://linkedin.com/in/prakasam"}
	require.NoError(t, repo.Save(context.Background(), profile))
	assert.Equal(t, profile, repo.Load(context.Background()))
}

func TestReminderRepositoryRoundTrip(t *testing.T) {
	kv := newMemKV()
	repo := NewReminderRepository(kv, logger.NewNop())

	reminders := []entities.Reminder{{
		ID:        "r1",
		Title:     "standup",
		DueAt:     time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		Alerted:   true,
		CreatedAt: time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC),
	}}

	require.NoError(t, repo.Save(context.Background(), reminders))
	assert.Equal(t, reminders, repo.Load(context.Background()))
}

func TestWipeAllDeletesEveryKey(t *testing.T) {
	kv := newMemKV()
	for _, key := range []string{"daily-events", "attendanceRecords", "dailySteps", "csrEvents", "userProfile", "reminders"} {
		kv.data[key] = "[]"
	}

	require.NoError(t, WipeAll(context.Background(), kv))
	assert.Empty(t, kv.data)
}
