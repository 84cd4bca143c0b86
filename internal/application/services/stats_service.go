package services

import (
	"time"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/calendar"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// StatsService derives event counts from the live collection. Everything is
// recomputed on each read; nothing is cached.
type StatsService struct {
	events    *EventService
	clock     ports.Clock
	weekStart time.Weekday
}

// NewStatsService creates a new stats service
func NewStatsService(events *EventService, clock ports.Clock, weekStart time.Weekday) *StatsService {
	return &StatsService{events: events, clock: clock, weekStart: weekStart}
}

// Summary counts today's events, this week's events, and the per-status and
// per-category distributions.
func (s *StatsService) Summary() ports.EventStats {
	now := s.clock.Now()
	weekStart, weekEnd := calendar.WeekWindow(now, s.weekStart)

	stats := ports.EventStats{
		ByStatus:   make(map[entities.EventStatus]int),
		ByCategory: make(map[entities.EventCategory]int),
	}

	for _, e := range s.events.List() {
		if e.OccursOn(now) {
			stats.Today++
		}
		if calendar.InRange(e.Date, weekStart, weekEnd) {
			stats.ThisWeek++
		}
		stats.ByStatus[e.Status]++
		stats.ByCategory[e.Category]++
	}

	return stats
}
