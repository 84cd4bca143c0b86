package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// ReminderService keeps the reminders list and runs the periodic due scan.
// Each scan surfaces at most one due reminder; the alerted marker makes a
// reminder fire exactly once unless it is snoozed, which pushes its due
// time forward and clears the marker.
type ReminderService struct {
	mu        sync.Mutex
	reminders []entities.Reminder
	repo      ports.ReminderRepository
	clock     ports.Clock
	ids       ports.IDGenerator
	notifier  ports.Notifier
	interval  time.Duration
	cron      *cron.Cron
	logger    *logger.Logger
}

// NewReminderService creates a new reminder service. notifier may be nil,
// in which case due reminders are only logged.
func NewReminderService(repo ports.ReminderRepository, clock ports.Clock, ids ports.IDGenerator, notifier ports.Notifier, interval time.Duration, log *logger.Logger) *ReminderService {
	return &ReminderService{
		reminders: repo.Load(context.Background()),
		repo:      repo,
		clock:     clock,
		ids:       ids,
		notifier:  notifier,
		interval:  interval,
		logger:    log.WithComponent("reminder_service"),
	}
}

// Start launches the periodic scan.
func (s *ReminderService) Start() error {
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		s.tick(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder scan: %w", err)
	}
	c.Start()
	s.cron = c
	s.logger.Infow("Reminder scanner started", "interval", s.interval.String())
	return nil
}

// Stop tears the scanner down.
func (s *ReminderService) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		s.logger.Infow("Reminder scanner stopped")
	}
}

func (s *ReminderService) tick(ctx context.Context) {
	due := s.Due(ctx)
	if due == nil {
		return
	}

	s.logger.Infow("Reminder due", "reminder_id", due.ID, "title", due.Title)
	if s.notifier == nil {
		return
	}

	text := fmt.Sprintf("Reminder: %s", due.Title)
	if due.Message != "" {
		text = fmt.Sprintf("%s (%s)", text, due.Message)
	}
	if err := s.notifier.Notify(ctx, entities.SlackMessage{Text: text}); err != nil {
		s.logger.Errorw("Failed to deliver reminder alert", "reminder_id", due.ID, "error", err)
	}
}

// Due returns the first due, not-yet-alerted reminder and marks it alerted,
// or nil when nothing is due. At most one reminder surfaces per call.
func (s *ReminderService) Due(ctx context.Context) *entities.Reminder {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reminders {
		if s.reminders[i].IsDue(now) {
			s.reminders[i].Alerted = true
			s.persistLocked(ctx)
			due := s.reminders[i]
			return &due
		}
	}
	return nil
}

// Create adds a reminder due at the given RFC3339 instant.
func (s *ReminderService) Create(ctx context.Context, req ports.CreateReminderRequest) (entities.Reminder, error) {
	dueAt, err := time.Parse(time.RFC3339, req.DueAt)
	if err != nil {
		return entities.Reminder{}, fmt.Errorf("invalid due time: %w", err)
	}

	reminder := entities.Reminder{
		ID:        s.ids(),
		Title:     req.Title,
		Message:   req.Message,
		DueAt:     dueAt,
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, reminder)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.Infow("Reminder created", "reminder_id", reminder.ID, "due_at", reminder.DueAt)
	return reminder, nil
}

// List returns all reminders.
func (s *ReminderService) List() []entities.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.Reminder(nil), s.reminders...)
}

// Delete removes a reminder.
func (s *ReminderService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			s.persistLocked(ctx)
			s.logger.Infow("Reminder deleted", "reminder_id", id)
			return nil
		}
	}
	return entities.ErrReminderNotFound
}

// Snooze pushes the reminder's due time the given number of minutes past
// now and clears its alerted marker so it fires again.
func (s *ReminderService) Snooze(ctx context.Context, id string, minutes int) (entities.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.reminders {
		if s.reminders[i].ID == id {
			s.reminders[i].DueAt = s.clock.Now().Add(time.Duration(minutes) * time.Minute)
			s.reminders[i].Alerted = false
			s.persistLocked(ctx)
			s.logger.Infow("Reminder snoozed", "reminder_id", id, "due_at", s.reminders[i].DueAt)
			return s.reminders[i], nil
		}
	}
	return entities.Reminder{}, entities.ErrReminderNotFound
}

func (s *ReminderService) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.reminders); err != nil {
		s.logger.Errorw("Failed to persist reminders, in-memory state retained", "error", err)
	}
}
