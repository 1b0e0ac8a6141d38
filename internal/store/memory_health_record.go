package store

import (
	"context"
	"slices"
	"sync"

	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/models"
)

// MemoryHealthRecordRepository is an in-process [HealthRecordRepository].
// It is selected by the "memory" DSN and keeps nothing across restarts.
type MemoryHealthRecordRepository struct {
	mu      sync.RWMutex
	records []models.HealthRecord
	ids     *utils.UUIDGenerator
	logger  *logger.Logger
}

// NewMemoryHealthRecordRepository returns an empty in-memory repository.
func NewMemoryHealthRecordRepository(logger *logger.Logger) *MemoryHealthRecordRepository {
	logger.Debug().Msg("creating in-memory health record repository")
	return &MemoryHealthRecordRepository{
		ids:    utils.NewUUIDGenerator(),
		logger: logger,
	}
}

func (m *MemoryHealthRecordRepository) Save(ctx context.Context, rec models.HealthRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if rec.ID == "" {
		rec = rec.WithID(m.ids.Generate())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)
	return nil
}

func (m *MemoryHealthRecordRepository) QueryRecent(ctx context.Context, limit int) ([]models.HealthRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return []models.HealthRecord{}, nil
	}

	m.mu.RLock()
	out := slices.Clone(m.records)
	m.mu.RUnlock()

	// stable sort keeps insertion order between records sharing a timestamp,
	// the reversal then puts the most recently saved one first
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.HealthRecord) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemoryHealthRecordRepository) GetLatest(ctx context.Context) (*models.HealthRecord, error) {
	records, err := m.QueryRecent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// Len reports how many records are stored.
func (m *MemoryHealthRecordRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
