package services

import (
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/calendar"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
)

// ExportService renders events as an iCalendar feed.
type ExportService struct {
	events *EventService
}

// NewExportService creates a new export service.
func NewExportService(events *EventService) *ExportService {
	return &ExportService{events: events}
}

// ICS serializes all events into iCalendar format. Events without a start
// time become all-day entries.
func (s *ExportService) ICS() string {
	return buildCalendar(s.events.List())
}

// ICSRange serializes the events between start and end inclusive.
func (s *ExportService) ICSRange(start, end time.Time) string {
	var filtered []entities.Event
	for _, e := range s.events.List() {
		if calendar.InRange(e.Date, start, end) {
			filtered = append(filtered, e)
		}
	}
	return buildCalendar(filtered)
}

func buildCalendar(events []entities.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//MOM Tracker//Calendar//EN")

	for _, e := range events {
		ev := cal.AddEvent(e.ID)
		ev.SetDtStampTime(time.Now().UTC())
		ev.SetSummary(e.Title)
		if e.Description != "" {
			ev.SetDescription(e.Description)
		}
		if e.Location != "" {
			ev.SetLocation(e.Location)
		}

		day := calendar.Day(e.Date)
		if e.StartTime.IsZero() {
			ev.SetAllDayStartAt(day)
			ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		} else {
			start := day.Add(time.Duration(e.StartTime.Minutes()) * time.Minute)
			end := start.Add(time.Hour)
			if !e.EndTime.IsZero() {
				end = day.Add(time.Duration(e.EndTime.Minutes()) * time.Minute)
				if !end.After(start) {
					end = end.AddDate(0, 0, 1)
				}
			}
			ev.SetStartAt(start)
			ev.SetEndAt(end)
		}

		switch e.Status {
		case entities.EventStatusCancelled:
			ev.SetStatus(ics.ObjectStatusCancelled)
		case entities.EventStatusRescheduled:
			ev.SetStatus(ics.ObjectStatusTentative)
		default:
			ev.SetStatus(ics.ObjectStatusConfirmed)
		}
	}
	return cal.Serialize()
}
