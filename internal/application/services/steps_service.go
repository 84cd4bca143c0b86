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

// StepsService tracks one step count per calendar day and derives the
// week/month/year trend views.
type StepsService struct {
	mu        sync.Mutex
	records   []entities.StepRecord
	repo      ports.StepRepository
	clock     ports.Clock
	weekStart time.Weekday
	logger    *logger.Logger
}

// NewStepsService creates a new steps service
func NewStepsService(repo ports.StepRepository, clock ports.Clock, weekStart time.Weekday, log *logger.Logger) *StepsService {
	return &StepsService{
		records:   repo.Load(context.Background()),
		repo:      repo,
		clock:     clock,
		weekStart: weekStart,
		logger:    log.WithComponent("steps_service"),
	}
}

// Add records a step count for a date. One record per date, no negative
// counts, no future dates.
func (s *StepsService) Add(ctx context.Context, req ports.AddStepsRequest) (entities.StepRecord, error) {
	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return entities.StepRecord{}, fmt.Errorf("invalid date: %w", err)
	}
	if date.After(calendar.Day(s.clock.Now())) {
		return entities.StepRecord{}, entities.ErrFutureDate
	}
	if req.Steps < 0 {
		return entities.StepRecord{}, entities.ErrNegativeSteps
	}

	record := entities.StepRecord{Date: req.Date, Steps: req.Steps}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.Date == req.Date {
			return entities.StepRecord{}, entities.ErrAlreadyMarked
		}
	}

	s.records = append([]entities.StepRecord{record}, s.records...)
	s.persistLocked(ctx)
	s.logger.Infow("Steps recorded", "date", record.Date, "steps", record.Steps)
	return record, nil
}

// Delete removes the record for a date.
func (s *StepsService) Delete(ctx context.Context, date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.Date == date {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persistLocked(ctx)
			s.logger.Infow("Step record deleted", "date", date)
			return nil
		}
	}
	return entities.ErrRecordNotFound
}

// List returns all step records, newest first.
func (s *StepsService) List() []entities.StepRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entities.StepRecord(nil), s.records...)
}

// Trend buckets the current period's records: per day for a week, per
// week-of-month for a month, per month for a year. The cumulative total
// covers every record between the period start and today.
func (s *StepsService) Trend(period ports.TrendPeriod) (ports.StepsTrend, error) {
	now := calendar.Day(s.clock.Now())

	var start time.Time
	switch period {
	case ports.TrendWeek:
		start, _ = calendar.WeekWindow(now, s.weekStart)
	case ports.TrendMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case ports.TrendYear:
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return ports.StepsTrend{}, fmt.Errorf("invalid trend period %q", period)
	}

	trend := ports.StepsTrend{Period: period}
	inPeriod := s.recordsBetween(start, now)
	for _, r := range inPeriod {
		trend.Cumulative += r.Steps
	}

	switch period {
	case ports.TrendWeek:
		// One row per day of the week, zero-filled.
		byDate := make(map[string]int, len(inPeriod))
		for _, r := range inPeriod {
			byDate[r.Date] = r.Steps
		}
		for i := 0; i < 7; i++ {
			day := start.AddDate(0, 0, i)
			trend.Buckets = append(trend.Buckets, ports.TrendBucket{
				Label: day.Format("Mon Jan 2"),
				Steps: byDate[calendar.FormatDate(day)],
			})
		}
	case ports.TrendMonth:
		weeks := make(map[int]int)
		for _, r := range inPeriod {
			if d, err := calendar.ParseDate(r.Date); err == nil {
				weeks[(d.Day()-1)/7+1] += r.Steps
			}
		}
		for week := 1; week <= 5; week++ {
			if steps, ok := weeks[week]; ok {
				trend.Buckets = append(trend.Buckets, ports.TrendBucket{
					Label: fmt.Sprintf("Week %d", week),
					Steps: steps,
				})
			}
		}
	case ports.TrendYear:
		months := make(map[time.Month]int)
		for _, r := range inPeriod {
			if d, err := calendar.ParseDate(r.Date); err == nil {
				months[d.Month()] += r.Steps
			}
		}
		for month := time.January; month <= time.December; month++ {
			if steps, ok := months[month]; ok {
				trend.Buckets = append(trend.Buckets, ports.TrendBucket{
					Label: month.String()[:3],
					Steps: steps,
				})
			}
		}
	}

	return trend, nil
}

// recordsBetween returns the records whose date falls in [start, end].
func (s *StepsService) recordsBetween(start, end time.Time) []entities.StepRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.StepRecord
	for _, r := range s.records {
		d, err := calendar.ParseDate(r.Date)
		if err != nil {
			continue
		}
		if calendar.InRange(d, start, end) {
			out = append(out, r)
		}
	}
	return out
}

func (s *StepsService) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.records); err != nil {
		s.logger.Errorw("Failed to persist step records, in-memory state retained", "error", err)
	}
}
