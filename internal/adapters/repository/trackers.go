package repository

import (
	"context"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// AttendanceRepositoryImpl implements the AttendanceRepository interface
type AttendanceRepositoryImpl struct {
	kv     ports.KeyValueStore
	logger *logger.Logger
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(kv ports.KeyValueStore, log *logger.Logger) ports.AttendanceRepository {
	return &AttendanceRepositoryImpl{kv: kv, logger: log.WithComponent("attendance_repository")}
}

// storedAttendance tolerates malformed check-in/check-out strings in older
// payloads, coercing them to the unset value.
type storedAttendance struct {
	Date      string `json:"date"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	TotalTime string `json:"totalTime"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

func (r *AttendanceRepositoryImpl) Load(ctx context.Context) []entities.AttendanceRecord {
	var stored []storedAttendance
	if !loadRaw(ctx, r.kv, r.logger, attendanceKey, &stored) {
		return []entities.AttendanceRecord{}
	}

	records := make([]entities.AttendanceRecord, 0, len(stored))
	for _, s := range stored {
		record := entities.AttendanceRecord{
			Date:      s.Date,
			TotalTime: s.TotalTime,
			Status:    entities.AttendanceStatus(s.Status),
			Notes:     s.Notes,
		}
		if !record.Status.IsValid() {
			record.Status = entities.AttendancePresent
		}
		if t, err := entities.NewTimeOfDay(s.CheckIn); err == nil {
			record.CheckIn = t
		}
		if t, err := entities.NewTimeOfDay(s.CheckOut); err == nil {
			record.CheckOut = t
		}
		records = append(records, record)
	}
	return records
}

func (r *AttendanceRepositoryImpl) Save(ctx context.Context, records []entities.AttendanceRecord) error {
	stored := make([]storedAttendance, 0, len(records))
	for _, rec := range records {
		stored = append(stored, storedAttendance{
			Date:      rec.Date,
			CheckIn:   rec.CheckIn.String(),
			CheckOut:  rec.CheckOut.String(),
			TotalTime: rec.TotalTime,
			Status:    string(rec.Status),
			Notes:     rec.Notes,
		})
	}
	return saveRaw(ctx, r.kv, attendanceKey, stored)
}

// StepRepositoryImpl implements the StepRepository interface
type StepRepositoryImpl struct {
	kv     ports.KeyValueStore
	logger *logger.Logger
}

// NewStepRepository creates a new step repository
func NewStepRepository(kv ports.KeyValueStore, log *logger.Logger) ports.StepRepository {
	return &StepRepositoryImpl{kv: kv, logger: log.WithComponent("step_repository")}
}

func (r *StepRepositoryImpl) Load(ctx context.Context) []entities.StepRecord {
	var records []entities.StepRecord
	if !loadRaw(ctx, r.kv, r.logger, stepsKey, &records) {
		return []entities.StepRecord{}
	}
	return records
}

func (r *StepRepositoryImpl) Save(ctx context.Context, records []entities.StepRecord) error {
	return saveRaw(ctx, r.kv, stepsKey, records)
}

// ProfileRepositoryImpl implements the ProfileRepository interface
type ProfileRepositoryImpl struct {
	kv     ports.KeyValueStore
	logger *logger.Logger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(kv ports.KeyValueStore, log *logger.Logger) ports.ProfileRepository {
	return &ProfileRepositoryImpl{kv: kv, logger: log.WithComponent("profile_repository")}
}

func (r *ProfileRepositoryImpl) Load(ctx context.Context) entities.Profile {
	var profile entities.Profile
	if !loadRaw(ctx, r.kv, r.logger, profileKey, &profile) {
		return entities.Profile{}
	}
	return profile
}

func (r *ProfileRepositoryImpl) Save(ctx context.Context, profile entities.Profile) error {
	return saveRaw(ctx, r.kv, profileKey, profile)
}

// ReminderRepositoryImpl implements the ReminderRepository interface
type ReminderRepositoryImpl struct {
	kv     ports.KeyValueStore
	logger *logger.Logger
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(kv ports.KeyValueStore, log *logger.Logger) ports.ReminderRepository {
	return &ReminderRepositoryImpl{kv: kv, logger: log.WithComponent("reminder_repository")}
}

func (r *ReminderRepositoryImpl) Load(ctx context.Context) []entities.Reminder {
	var reminders []entities.Reminder
	if !loadRaw(ctx, r.kv, r.logger, remindersKey, &reminders) {
		return []entities.Reminder{}
	}
	return reminders
}

func (r *ReminderRepositoryImpl) Save(ctx context.Context, reminders []entities.Reminder) error {
	return saveRaw(ctx, r.kv, remindersKey, reminders)
}
