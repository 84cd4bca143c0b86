package repository

import (
	"context"
	"time"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/calendar"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// EventRepositoryImpl implements the EventRepository interface
type EventRepositoryImpl struct {
	kv     ports.KeyValueStore
	logger *logger.Logger
}

// NewEventRepository creates a new event repository
func NewEventRepository(kv ports.KeyValueStore, log *logger.Logger) ports.EventRepository {
	return &EventRepositoryImpl{kv: kv, logger: log.WithComponent("event_repository")}
}

// storedEvent is the on-disk shape of an event. Older payloads may lack
// fields added since they were written; decode fills those with defaults
// instead of failing the whole collection.
type storedEvent struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	Priority        string `json:"priority"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
	OriginalEventID string `json:"originalEventId,omitempty"`
}

// Decode defaults for fields missing from older stored events.
const (
	defaultStatus   = entities.EventStatusScheduled
	defaultPriority = entities.PriorityMedium
	defaultCategory = entities.CategoryOther
)

func (r *EventRepositoryImpl) Load(ctx context.Context) []entities.Event {
	var stored []storedEvent
	if !loadRaw(ctx, r.kv, r.logger, eventsKey, &stored) {
		return []entities.Event{}
	}

	events := make([]entities.Event, 0, len(stored))
	for _, s := range stored {
		event, err := decodeEvent(s)
		if err != nil {
			// One unreadable record does not poison the rest.
			r.logger.Warnw("Skipping undecodable stored event", "id", s.ID, "error", err)
			continue
		}
		events = append(events, event)
	}
	return events
}

func (r *EventRepositoryImpl) Save(ctx context.Context, events []entities.Event) error {
	stored := make([]storedEvent, 0, len(events))
	for _, e := range events {
		stored = append(stored, encodeEvent(e))
	}
	return saveRaw(ctx, r.kv, eventsKey, stored)
}

func (r *EventRepositoryImpl) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, eventsKey)
}

func decodeEvent(s storedEvent) (entities.Event, error) {
	date, err := parseStoredDate(s.Date)
	if err != nil {
		return entities.Event{}, err
	}

	event := entities.Event{
		ID:              s.ID,
		Title:           s.Title,
		Description:     s.Description,
		Date:            date,
		Location:        s.Location,
		Notes:           s.Notes,
		OriginalEventID: s.OriginalEventID,
		Status:          entities.EventStatus(s.Status),
		Category:        entities.EventCategory(s.Category),
		Priority:        entities.Priority(s.Priority),
	}

	if !event.Status.IsValid() {
		event.Status = defaultStatus
	}
	if !event.Category.IsValid() {
		event.Category = defaultCategory
	}
	if !event.Priority.IsValid() {
		event.Priority = defaultPriority
	}

	// Malformed wall-clock strings decode to the unset value so they cannot
	// corrupt intra-day ordering.
	if t, err := entities.NewTimeOfDay(s.StartTime); err == nil {
		event.StartTime = t
	}
	if t, err := entities.NewTimeOfDay(s.EndTime); err == nil {
		event.EndTime = t
	}

	return event, nil
}

func encodeEvent(e entities.Event) storedEvent {
	return storedEvent{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Date:            calendar.Day(e.Date).Format(time.RFC3339),
		StartTime:       e.StartTime.String(),
		EndTime:         e.EndTime.String(),
		Location:        e.Location,
		Category:        string(e.Category),
		Priority:        string(e.Priority),
		Notes:           e.Notes,
		Status:          string(e.Status),
		OriginalEventID: e.OriginalEventID,
	}
}

// parseStoredDate accepts the RFC3339 form this repository writes as well
// as the bare yyyy-mm-dd form older payloads used, normalizing both to the
// calendar day.
func parseStoredDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return calendar.Day(t), nil
	}
	t, err := calendar.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
