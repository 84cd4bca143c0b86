package ports

import (
	"context"
	"time"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
)

// KeyValueStore is the durable local storage capability. Each feature owns
// one key whose value is a serialized JSON collection.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// EventRepository persists the event collection. Load fails soft: a missing
// key, malformed stored data, or a storage fault all yield an empty
// collection rather than an error.
type EventRepository interface {
	Load(ctx context.Context) []entities.Event
	Save(ctx context.Context, events []entities.Event) error
	Clear(ctx context.Context) error
}

// AttendanceRepository persists attendance records.
type AttendanceRepository interface {
	Load(ctx context.Context) []entities.AttendanceRecord
	Save(ctx context.Context, records []entities.AttendanceRecord) error
}

// StepRepository persists daily step records.
type StepRepository interface {
	Load(ctx context.Context) []entities.StepRecord
	Save(ctx context.Context, records []entities.StepRecord) error
}

// CSRRepository persists CSR project records.
type CSRRepository interface {
	Load(ctx context.Context) []entities.CSRRecord
	Save(ctx context.Context, records []entities.CSRRecord) error
}

// ProfileRepository persists the single profile document.
type ProfileRepository interface {
	Load(ctx context.Context) entities.Profile
	Save(ctx context.Context, profile entities.Profile) error
}

// ReminderRepository persists reminders.
type ReminderRepository interface {
	Load(ctx context.Context) []entities.Reminder
	Save(ctx context.Context, reminders []entities.Reminder) error
}

// Clock abstracts "now" so services and tests do not read the wall clock
// directly.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// IDGenerator mints opaque unique identifiers for new records.
type IDGenerator func() string

// Notifier delivers outbound alert text, best effort.
type Notifier interface {
	Notify(ctx context.Context, msg entities.SlackMessage) error
}
