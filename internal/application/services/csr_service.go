package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// CSRService keeps the CSR project records.
type CSRService struct {
	mu      sync.Mutex
	records []entities.CSRRecord
	repo    ports.CSRRepository
	ids     ports.IDGenerator
	logger  *logger.Logger
}

// NewCSRService creates a new CSR service
func NewCSRService(repo ports.CSRRepository, ids ports.IDGenerator, log *logger.Logger) *CSRService {
	return &CSRService{
		records: repo.Load(context.Background()),
		repo:    repo,
		ids:     ids,
		logger:  log.WithComponent("csr_service"),
	}
}

// Create adds a new record with a fresh id.
func (s *CSRService) Create(ctx context.Context, req ports.CSRRecordRequest) (entities.CSRRecord, error) {
	record, err := s.fromRequest(req)
	if err != nil {
		return entities.CSRRecord{}, err
	}
	record.ID = s.ids()

	s.mu.Lock()
	s.records = append(s.records, record)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.logger.Infow("CSR record created", "record_id", record.ID, "project", record.Project)
	return record, nil
}

// Update replaces the fields of the matching record, keeping its id.
func (s *CSRService) Update(ctx context.Context, id string, req ports.CSRRecordRequest) (entities.CSRRecord, error) {
	record, err := s.fromRequest(req)
	if err != nil {
		return entities.CSRRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			record.ID = id
			s.records[i] = record
			s.persistLocked(ctx)
			s.logger.Infow("CSR record updated", "record_id", id)
			return record, nil
		}
	}
	return entities.CSRRecord{}, entities.ErrRecordNotFound
}

// Delete removes the record permanently.
func (s *CSRService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.persistLocked(ctx)
			s.logger.Infow("CSR record deleted", "record_id", id)
			return nil
		}
	}
	return entities.ErrRecordNotFound
}

// List returns the records matching the filter.
func (s *CSRService) List(filter ports.CSRFilter) []entities.CSRRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.CSRRecord, 0, len(s.records))
	for _, r := range s.records {
		if filter.FinancialYear != "" && r.FinancialYear != filter.FinancialYear {
			continue
		}
		if filter.NGOName != "" && r.NGOName != filter.NGOName {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summary totals participants and cost across the filtered records.
func (s *CSRService) Summary(filter ports.CSRFilter) ports.CSRSummary {
	summary := ports.CSRSummary{TotalCost: decimal.Zero}
	for _, r := range s.List(filter) {
		summary.Records++
		summary.Participants += r.Participants
		summary.TotalCost = summary.TotalCost.Add(r.TotalCost)
	}
	return summary
}

// fromRequest builds a record, defaulting blank option fields to the first
// entry of their option list.
func (s *CSRService) fromRequest(req ports.CSRRecordRequest) (entities.CSRRecord, error) {
	cost := decimal.Zero
	if req.TotalCost != "" {
		parsed, err := decimal.NewFromString(req.TotalCost)
		if err != nil {
			return entities.CSRRecord{}, fmt.Errorf("invalid total cost: %w", err)
		}
		cost = parsed
	}

	record := entities.CSRRecord{
		FinancialYear:    req.FinancialYear,
		NGOName:          req.NGOName,
		Phase:            req.Phase,
		Project:          req.Project,
		Location:         req.Location,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		InaugurationDate: req.InaugurationDate,
		Participants:     req.Participants,
		TotalCost:        cost,
		GoogleLocation:   req.GoogleLocation,
		Status:           req.Status,
	}
	if record.Phase == "" {
		record.Phase = entities.Phases[0]
	}
	if record.Project == "" {
		record.Project = entities.CSRProjects[0]
	}
	if record.Status == "" {
		record.Status = entities.CSRStatuses[0]
	}
	return record, nil
}

func (s *CSRService) persistLocked(ctx context.Context) {
	if err := s.repo.Save(ctx, s.records); err != nil {
		s.logger.Errorw("Failed to persist CSR records, in-memory state retained", "error", err)
	}
}
