package store

import (
	"context"

	"github.com/MKhiriev/wear-health-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// HealthRecordRepository persists health records and serves the most recent
// ones back, newest first.
type HealthRecordRepository interface {
	// Save persists rec. A record without ID gets a fresh UUIDv7.
	Save(ctx context.Context, rec models.HealthRecord) error

	// QueryRecent returns at most limit records ordered by timestamp
	// descending. A non-positive limit yields an empty result.
	QueryRecent(ctx context.Context, limit int) ([]models.HealthRecord, error)

	// GetLatest returns the newest record, or nil when the store is empty.
	GetLatest(ctx context.Context) (*models.HealthRecord, error)
}

// ErrorClassificator decides whether a failed database operation may succeed
// if attempted again. Used to enrich failure logs.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
