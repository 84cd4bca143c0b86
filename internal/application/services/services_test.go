package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// In-memory repository fakes. failSave makes every Save return an error so
// tests can assert that persistence faults never roll back memory state.

type memEventRepo struct {
	events   []entities.Event
	failSave bool
	saves    int
}

func (m *memEventRepo) Load(ctx context.Context) []entities.Event {
	return append([]entities.Event(nil), m.events...)
}

func (m *memEventRepo) Save(ctx context.Context, events []entities.Event) error {
	m.saves++
	if m.failSave {
		return errors.New("storage unavailable")
	}
	m.events = append([]entities.Event(nil), events...)
	return nil
}

func (m *memEventRepo) Clear(ctx context.Context) error {
	if m.failSave {
		return errors.New("storage unavailable")
	}
	m.events = nil
	return nil
}

type memAttendanceRepo struct {
	records  []entities.AttendanceRecord
	failSave bool
}

func (m *memAttendanceRepo) Load(ctx context.Context) []entities.AttendanceRecord {
	return append([]entities.AttendanceRecord(nil), m.records...)
}

func (m *memAttendanceRepo) Save(ctx context.Context, records []entities.AttendanceRecord) error {
	if m.failSave {
		return errors.New("storage unavailable")
	}
	m.records = append([]entities.AttendanceRecord(nil), records...)
	return nil
}

type memStepRepo struct {
	records []entities.StepRecord
}

func (m *memStepRepo) Load(ctx context.Context) []entities.StepRecord {
	return append([]entities.StepRecord(nil), m.records...)
}

func (m *memStepRepo) Save(ctx context.Context, records []entities.StepRecord) error {
	m.records = append([]entities.StepRecord(nil), records...)
	return nil
}

type memCSRRepo struct {
	records []entities.CSRRecord
}

func (m *memCSRRepo) Load(ctx context.Context) []entities.CSRRecord {
	return append([]entities.CSRRecord(nil), m.records...)
}

func (m *memCSRRepo) Save(ctx context.Context, records []entities.CSRRecord) error {
	m.records = append([]entities.CSRRecord(nil), records...)
	return nil
}

type memReminderRepo struct {
	reminders []entities.Reminder
}

func (m *memReminderRepo) Load(ctx context.Context) []entities.Reminder {
	return append([]entities.Reminder(nil), m.reminders...)
}

func (m *memReminderRepo) Save(ctx context.Context, reminders []entities.Reminder) error {
	m.reminders = append([]entities.Reminder(nil), reminders...)
	return nil
}

// fixedClock pins "now" for deterministic date logic.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// seqIDs mints ev-1, ev-2, ... so tests can reference ids directly.
func seqIDs(prefix string) ports.IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// captureNotifier records delivered messages.
type captureNotifier struct {
	messages []entities.SlackMessage
}

func (n *captureNotifier) Notify(ctx context.Context, msg entities.SlackMessage) error {
	n.messages = append(n.messages, msg)
	return nil
}
