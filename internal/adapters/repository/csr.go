package repository

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// CSRRepositoryImpl implements the CSRRepository interface. CSR records
// have grown fields over time, so the load path migrates each stored record
// field by field, substituting documented defaults for anything missing or
// of the wrong type.
type CSRRepositoryImpl struct {
	kv     ports.KeyValueStore
	ids    ports.IDGenerator
	logger *logger.Logger
}

// NewCSRRepository creates a new CSR repository. ids mints identifiers for
// legacy records stored before records carried one.
func NewCSRRepository(kv ports.KeyValueStore, ids ports.IDGenerator, log *logger.Logger) ports.CSRRepository {
	return &CSRRepositoryImpl{kv: kv, ids: ids, logger: log.WithComponent("csr_repository")}
}

func (r *CSRRepositoryImpl) Load(ctx context.Context) []entities.CSRRecord {
	var stored []map[string]json.RawMessage
	if !loadRaw(ctx, r.kv, r.logger, csrKey, &stored) {
		return []entities.CSRRecord{}
	}

	records := make([]entities.CSRRecord, 0, len(stored))
	for _, raw := range stored {
		records = append(records, r.migrate(raw))
	}
	return records
}

func (r *CSRRepositoryImpl) Save(ctx context.Context, records []entities.CSRRecord) error {
	return saveRaw(ctx, r.kv, csrKey, records)
}

// migrate coerces one stored record into the current shape.
func (r *CSRRepositoryImpl) migrate(raw map[string]json.RawMessage) entities.CSRRecord {
	record := entities.CSRRecord{
		ID:               stringField(raw, "id", ""),
		FinancialYear:    stringField(raw, "financialYear", entities.FinancialYears[0]),
		NGOName:          stringField(raw, "ngoName", entities.NGONames[0]),
		Phase:            stringField(raw, "phase", entities.Phases[0]),
		Project:          stringField(raw, "project", entities.CSRProjects[0]),
		Location:         stringField(raw, "location", ""),
		StartDate:        stringField(raw, "startDate", ""),
		EndDate:          stringField(raw, "endDate", ""),
		InaugurationDate: stringField(raw, "inaugurationDate", ""),
		Participants:     intField(raw, "participants", 0),
		TotalCost:        decimalField(raw, "totalCost"),
		GoogleLocation:   stringField(raw, "googleLocation", ""),
		Status:           stringField(raw, "status", entities.CSRStatuses[0]),
	}
	if record.ID == "" {
		record.ID = r.ids()
	}
	return record
}

func stringField(raw map[string]json.RawMessage, key, def string) string {
	data, ok := raw[key]
	if !ok {
		return def
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return def
	}
	return s
}

func intField(raw map[string]json.RawMessage, key string, def int) int {
	data, ok := raw[key]
	if !ok {
		return def
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return def
	}
	return n
}

// decimalField accepts both the numeric form older records stored and the
// quoted form decimal marshals to.
func decimalField(raw map[string]json.RawMessage, key string) decimal.Decimal {
	data, ok := raw[key]
	if !ok {
		return decimal.Zero
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return decimal.Zero
	}
	return d
}
