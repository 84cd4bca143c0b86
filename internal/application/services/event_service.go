package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/calendar"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// EventService is the event lifecycle manager. It owns the in-memory event
// collection, which is the source of truth for a running session: loaded
// from the repository once at construction and written through after every
// mutation. A failed write is logged and swallowed; the in-memory change is
// never rolled back.
type EventService struct {
	mu        sync.Mutex
	events    []entities.Event
	repo      ports.EventRepository
	clock     ports.Clock
	ids       ports.IDGenerator
	weekStart time.Weekday
	logger    *logger.Logger
}

// NewEventService creates a new event service, loading the persisted
// collection.
func NewEventService(repo ports.EventRepository, clock ports.Clock, ids ports.IDGenerator, weekStart time.Weekday, log *logger.Logger) *EventService {
	return &EventService{
		events:    repo.Load(context.Background()),
		repo:      repo,
		clock:     clock,
		ids:       ids,
		weekStart: weekStart,
		logger:    log.WithComponent("event_service"),
	}
}

// List returns a copy of the current event collection.
func (s *EventService) List() []entities.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Event(nil), s.events...)
}

// Get returns the event with the given id.
func (s *EventService) Get(id string) (entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			return e, nil
		}
	}
	return entities.Event{}, entities.ErrEventNotFound
}

// Create appends a new event with a fresh id and status "scheduled".
// Duplicate titles, dates, and times are allowed.
func (s *EventService) Create(ctx context.Context, req ports.CreateEventRequest) (entities.Event, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return entities.Event{}, fmt.Errorf("invalid date: %w", err)
	}
	start, err := entities.NewTimeOfDay(req.StartTime)
	if err != nil {
		return entities.Event{}, err
	}
	end, err := entities.NewTimeOfDay(req.EndTime)
	if err != nil {
		return entities.Event{}, err
	}

	category := entities.EventCategory(req.Category)
	if !category.IsValid() {
		return entities.Event{}, entities.ErrInvalidCategory
	}
	priority := entities.Priority(req.Priority)
	if !priority.IsValid() {
		return entities.Event{}, entities.ErrInvalidPriority
	}

	event := entities.Event{
		ID:          s.ids(),
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
		Location:    req.Location,
		Category:    category,
		Priority:    priority,
		Notes:       req.Notes,
		Status:      entities.EventStatusScheduled,
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.Infow("Event created", "event_id", event.ID, "title", event.Title, "date", calendar.FormatDate(event.Date))
	return event, nil
}

// UpdateFields merges the non-nil fields of req into the matching event.
func (s *EventService) UpdateFields(ctx context.Context, id string, req ports.UpdateEventRequest) (entities.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return entities.Event{}, entities.ErrEventNotFound
	}
	event := &s.events[i]

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Notes != nil {
		event.Notes = *req.Notes
	}
	if req.Category != nil {
		category := entities.EventCategory(*req.Category)
		if !category.IsValid() {
			return entities.Event{}, entities.ErrInvalidCategory
		}
		event.Category = category
	}
	if req.Priority != nil {
		priority := entities.Priority(*req.Priority)
		if !priority.IsValid() {
			return entities.Event{}, entities.ErrInvalidPriority
		}
		event.Priority = priority
	}
	if req.StartTime != nil {
		t, err := entities.NewTimeOfDay(*req.StartTime)
		if err != nil {
			return entities.Event{}, err
		}
		event.StartTime = t
	}
	if req.EndTime != nil {
		t, err := entities.NewTimeOfDay(*req.EndTime)
		if err != nil {
			return entities.Event{}, err
		}
		event.EndTime = t
	}

	s.persistLocked(ctx)
	s.logger.Infow("Event updated", "event_id", event.ID)
	return *event, nil
}

// ChangeStatus transitions the event's status. Every listed status is
// reachable from every other; setting the current status again is a no-op.
func (s *EventService) ChangeStatus(ctx context.Context, id string, status entities.EventStatus) (entities.Event, error) {
	if !status.IsValid() {
		return entities.Event{}, entities.ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return entities.Event{}, entities.ErrEventNotFound
	}
	if s.events[i].Status != status {
		s.events[i].Status = status
		s.persistLocked(ctx)
		s.logger.Infow("Event status changed", "event_id", id, "status", status)
	}
	return s.events[i], nil
}

// Reschedule moves the event to a new date and time range in place,
// preserving its identity. The event always lands back in "scheduled", and
// the first reschedule records the event's prior id as its lineage.
func (s *EventService) Reschedule(ctx context.Context, id string, req ports.RescheduleRequest) (entities.Event, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return entities.Event{}, fmt.Errorf("invalid date: %w", err)
	}
	start, err := entities.NewTimeOfDay(req.StartTime)
	if err != nil {
		return entities.Event{}, err
	}
	end, err := entities.NewTimeOfDay(req.EndTime)
	if err != nil {
		return entities.Event{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return entities.Event{}, entities.ErrEventNotFound
	}
	event := &s.events[i]

	event.Date = date
	event.StartTime = start
	event.EndTime = end
	event.Status = entities.EventStatusScheduled
	if event.OriginalEventID == "" {
		event.OriginalEventID = event.ID
	}

	s.persistLocked(ctx)
	s.logger.Infow("Event rescheduled", "event_id", event.ID, "date", calendar.FormatDate(date))
	return *event, nil
}

// Delete removes the event permanently. There is no tombstone.
func (s *EventService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return entities.ErrEventNotFound
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	s.persistLocked(ctx)
	s.logger.Infow("Event deleted", "event_id", id)
	return nil
}

// ClearAll drops the whole collection, in memory and in storage.
func (s *EventService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = nil
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear events: %w", err)
	}
	s.logger.Infow("Event collection cleared")
	return nil
}

// EventsOn returns the events bucketed onto date's calendar day, ordered by
// start time.
func (s *EventService) EventsOn(date time.Time) []entities.Event {
	return calendar.EventsForDate(s.List(), date)
}

// EventsInRange returns one day bucket per calendar day of [start, end].
func (s *EventService) EventsInRange(start, end time.Time) []ports.DaySchedule {
	events := s.List()
	days := calendar.DaysInRange(start, end)
	schedule := make([]ports.DaySchedule, 0, len(days))
	for _, day := range days {
		schedule = append(schedule, ports.DaySchedule{
			Date:   calendar.FormatDate(day),
			Events: calendar.EventsForDate(events, day),
		})
	}
	return schedule
}

// Week returns the week view containing the anchor shifted by offset weeks.
// A zero anchor means "the week containing today".
func (s *EventService) Week(anchor time.Time, offset int) ports.WeekView {
	if anchor.IsZero() {
		anchor = s.clock.Now()
	}
	anchor = calendar.Day(anchor).AddDate(0, 0, offset*7)
	start, end := calendar.WeekWindow(anchor, s.weekStart)
	return ports.WeekView{
		Start: calendar.FormatDate(start),
		End:   calendar.FormatDate(end),
		Days:  s.EventsInRange(start, end),
	}
}

// indexLocked returns the position of id in the collection, or -1.
func (s *EventService) indexLocked(id string) int {
	for i := range s.events {
		if s.events[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the collection through to storage, best effort.
func (s *EventService) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.events); err != nil {
		s.logger.Errorw("Failed to persist events, in-memory state retained", "error", err)
	}
}
