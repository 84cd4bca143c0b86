package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

func newAttendanceService(repo *memAttendanceRepo, now time.Time) *AttendanceService {
	return NewAttendanceService(repo, fixedClock{now: now}, logger.NewNop())
}

func TestMarkAttendanceComputesTotal(t *testing.T) {
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	svc := newAttendanceService(&memAttendanceRepo{}, now)

	record, err := svc.Mark(context.Background(), ports.MarkAttendanceRequest{
		Date: "2026-03-11", Status: "Present", CheckIn: "09:15", CheckOut: "17:45",
	})
	require.NoError(t, err)
	assert.Equal(t, "8h 30m", record.TotalTime)
}

func TestMarkAttendanceOvernightWraps(t *testing.T) {
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	svc := newAttendanceService(&memAttendanceRepo{}, now)

	record, err := svc.Mark(context.Background(), ports.MarkAttendanceRequest{
		Date: "2026-03-10", Status: "Present", CheckIn: "22:00", CheckOut: "06:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "8h 0m", record.TotalTime)
}

func TestMarkAttendanceRejections(t *testing.T) {
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	svc := newAttendanceService(&memAttendanceRepo{}, now)

	_, err := svc.Mark(context.Background(), ports.MarkAttendanceRequest{Date: "2026-03-12", Status: "Present"})
	assert.ErrorIs(t, err, entities.ErrFutureDate)

	_, err = svc.Mark(context.Background(), ports.MarkAttendanceRequest{Date: "2026-03-11", Status: "WFH"})
	assert.ErrorIs(t, err, entities.ErrInvalidStatus)

	_, err = svc.Mark(context.Background(), ports.MarkAttendanceRequest{Date: "2026-03-11", Status: "Absent"})
	require.NoError(t, err)
	_, err = svc.Mark(context.Background(), ports.MarkAttendanceRequest{Date: "2026-03-11", Status: "Present"})
	assert.ErrorIs(t, err, entities.ErrAlreadyMarked)
}

func TestAttendanceListNewestFirstAndFiltered(t *testing.T) {
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	svc := newAttendanceService(&memAttendanceRepo{}, now)

	for _, m := range []ports.MarkAttendanceRequest{
		{Date: "2026-02-27", Status: "Present", CheckIn: "09:00", CheckOut: "17:00"},
		{Date: "2026-03-02", Status: "Absent"},
		{Date: "2026-03-03", Status: "Present", CheckIn: "10:00", CheckOut: "18:00"},
	} {
		_, err := svc.Mark(context.Background(), m)
		require.NoError(t, err)
	}

	all := svc.List(ports.AttendanceFilter{})
	require.Len(t, all, 3)
	assert.Equal(t, "2026-03-03", all[0].Date)

	march := svc.List(ports.AttendanceFilter{Month: "2026-03"})
	assert.Len(t, march, 2)

	present := svc.List(ports.AttendanceFilter{Month: "2026-03", Status: "Present"})
	require.Len(t, present, 1)
	assert.Equal(t, "2026-03-03", present[0].Date)

	assert.Equal(t, []string{"2026-03", "2026-02"}, svc.Months())
}

func TestAttendanceSummaryTotalsTime(t *testing.T) {
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	svc := newAttendanceService(&memAttendanceRepo{}, now)

	for _, m := range []ports.MarkAttendanceRequest{
		{Date: "2026-03-02", Status: "Present", CheckIn: "09:00", CheckOut: "17:30"},
		{Date: "2026-03-03", Status: "Present", CheckIn: "09:00", CheckOut: "17:00"},
		{Date: "2026-03-04", Status: "Absent"},
	} {
		_, err := svc.Mark(context.Background(), m)
		require.NoError(t, err)
	}

	summary := svc.Summary(ports.AttendanceFilter{Month: "2026-03"})
	assert.Equal(t, 3, summary.Records)
	assert.Equal(t, 16*60+30, summary.TotalMinutes)
	assert.Equal(t, "16h 30m", summary.TotalTime)
}

func TestAttendanceDelete(t *testing.T) {
	now := time.Date(2026, 3, 11, 18, 0, 0, 0, time.UTC)
	svc := newAttendanceService(&memAttendanceRepo{}, now)

	_, err := svc.Mark(context.Background(), ports.MarkAttendanceRequest{Date: "2026-03-11", Status: "Absent"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "2026-03-11"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "2026-03-11"), entities.ErrRecordNotFound)
}
