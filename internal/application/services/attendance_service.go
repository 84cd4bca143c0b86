package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/calendar"
	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// AttendanceService tracks one attendance record per calendar day. Newest
// records sit at the front of the collection, matching the tracker's
// display order.
type AttendanceService struct {
	mu      sync.Mutex
	records []entities.AttendanceRecord
	repo    ports.AttendanceRepository
	clock   ports.Clock
	logger  *logger.Logger
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(repo ports.AttendanceRepository, clock ports.Clock, log *logger.Logger) *AttendanceService {
	return &AttendanceService{
		records: repo.Load(context.Background()),
		repo:    repo,
		clock:   clock,
		logger:  log.WithComponent("attendance_service"),
	}
}

// Mark records attendance for a date. The date must not be in the future
// and must not already be marked. For a "Present" record with both times
// set, the total is derived from check-in and check-out, wrapping by 24h
// for overnight spans; "Absent" records carry no times.
func (s *AttendanceService) Mark(ctx context.Context, req ports.MarkAttendanceRequest) (entities.AttendanceRecord, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return entities.AttendanceRecord{}, fmt.Errorf("invalid date: %w", err)
	}
	if date.After(calendar.Day(s.clock.Now())) {
		return entities.AttendanceRecord{}, entities.ErrFutureDate
	}

	status := entities.AttendanceStatus(req.Status)
	if !status.IsValid() {
		return entities.AttendanceRecord{}, entities.ErrInvalidStatus
	}

	record := entities.AttendanceRecord{
		Date:   req.Date,
		Status: status,
		Notes:  req.Notes,
	}

	if status == entities.AttendancePresent {
		if req.CheckIn != "" {
			record.CheckIn, err = entities.NewTimeOfDay(req.CheckIn)
			if err != nil {
				return entities.AttendanceRecord{}, err
			}
		}
		if req.CheckOut != "" {
			record.CheckOut, err = entities.NewTimeOfDay(req.CheckOut)
			if err != nil {
				return entities.AttendanceRecord{}, err
			}
		}
		if !record.CheckIn.IsZero() && !record.CheckOut.IsZero() {
			record.TotalTime = entities.FormatMinutes(entities.MinutesBetween(record.CheckIn, record.CheckOut))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.Date == req.Date {
			return entities.AttendanceRecord{}, entities.ErrAlreadyMarked
		}
	}

	s.records = append([]entities.AttendanceRecord{record}, s.records...)
	s.persistLocked(ctx)
	s.logger.Infow("Attendance marked", "date", record.Date, "status", record.Status)
	return record, nil
}

// Delete removes the record for a date.
func (s *AttendanceService) Delete(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.Date == date {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persistLocked(ctx)
			s.logger.Infow("Attendance record deleted", "date", date)
			return nil
		}
	}
	return entities.ErrRecordNotFound
}

// List returns the records matching the filter, newest first.
func (s *AttendanceService) List(filter ports.AttendanceFilter) []entities.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.AttendanceRecord, 0, len(s.records))
	for _, r := range s.records {
		if filter.Month != "" && r.MonthKey() != filter.Month {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Months returns the distinct yyyy-mm buckets present, newest first.
func (s *AttendanceService) Months() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var months []string
	for _, r := range s.records {
		key := r.MonthKey()
		if !seen[key] {
			seen[key] = true
			months = append(months, key)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Summary totals the tracked time across the filtered records.
func (s *AttendanceService) Summary(filter ports.AttendanceFilter) ports.AttendanceSummary {
	records := s.List(filter)
	total := 0
	for _, r := range records {
		total += entities.ParseMinutes(r.TotalTime)
	}
	return ports.AttendanceSummary{
		Records:      len(records),
		TotalMinutes: total,
		TotalTime:    entities.FormatMinutes(total),
	}
}

func (s *AttendanceService) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.records); err != nil {
		s.logger.Errorw("Failed to persist attendance records, in-memory state retained", "error", err)
	}
}
