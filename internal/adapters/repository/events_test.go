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

func TestEventRepositoryRoundTrip(t *testing.T) {
	kv := newMemKV()
	repo := NewEventRepository(kv, logger.NewNop())

	events := []entities.Event{
		{
			ID:        "e1",
			Title:     "standup",
			Date:      time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "09:15",
			Category:  entities.CategoryMeeting,
			Priority:  entities.PriorityHigh,
			Status:    entities.EventStatusScheduled,
		},
		{
			ID:              "e2",
			Title:           "dentist",
			Date:            time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
			StartTime:       "14:00",
			EndTime:         "15:00",
			Category:        entities.CategoryAppointment,
			Priority:        entities.PriorityMedium,
			Status:          entities.EventStatusScheduled,
			OriginalEventID: "e2",
		},
	}

	require.NoError(t, repo.Save(context.Background(), events))
	loaded := repo.Load(context.Background())
	assert.Equal(t, events, loaded)
}

func TestEventRepositoryLoadMissingKey(t *testing.T) {
	repo := NewEventRepository(newMemKV(), logger.NewNop())
	assert.Empty(t, repo.Load(context.Background()))
}

func TestEventRepositoryLoadCorruptPayload(t *testing.T) {
	kv := newMemKV()
	kv.data["daily-events"] = "{not json"

	repo := NewEventRepository(kv, logger.NewNop())
	assert.Empty(t, repo.Load(context.Background()))
}

func TestEventRepositoryLoadStorageFault(t *testing.T) {
	kv := newMemKV()
	kv.failing = true

	repo := NewEventRepository(kv, logger.NewNop())
	assert.Empty(t, repo.Load(context.Background()))
}

func TestEventRepositoryDecodeDefaults(t *testing.T) {
	kv := newMemKV()
	// An old payload: bare date form, no status/category/priority, and a
	// malformed start time.
	kv.data["daily-events"] = `[
		{"id":"old","title":"legacy","date":"2026-03-11","startTime":"9am"},
		{"id":"broken","title":"no date","date":"whenever"}
	]`

	repo := NewEventRepository(kv, logger.NewNop())
	loaded := repo.Load(context.Background())

	// The record with an unreadable date is skipped, not fatal.
	require.Len(t, loaded, 1)
	got := loaded[0]
	assert.Equal(t, "old", got.ID)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, entities.EventStatusScheduled, got.Status)
	assert.Equal(t, entities.CategoryOther, got.Category)
	assert.Equal(t, entities.PriorityMedium, got.Priority)
	assert.True(t, got.StartTime.IsZero())
}

func TestEventRepositoryClear(t *testing.T) {
	kv := newMemKV()
	repo := NewEventRepository(kv, logger.NewNop())

	require.NoError(t, repo.Save(context.Background(), []entities.Event{{ID: "e1", Date: time.Now()}}))
	require.NoError(t, repo.Clear(context.Background()))
	assert.Empty(t, repo.Load(context.Background()))
}
