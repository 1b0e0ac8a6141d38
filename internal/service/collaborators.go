package service

import (
	"context"
	"time"

	"github.com/MKhiriev/wear-health-sync/models"
)

// DataProvider is the subset of the device-data source the controller uses.
type DataProvider interface {
	RequestPermission(ctx context.Context) (bool, error)
	Connect(ctx context.Context) (bool, error)
	Fetch(ctx context.Context) (models.HealthRecord, error)
}

// RecordStore is the subset of the record store the controller uses.
type RecordStore interface {
	Save(ctx context.Context, rec models.HealthRecord) error
	QueryRecent(ctx context.Context, limit int) ([]models.HealthRecord, error)
}

// SyncMetrics receives cycle observations. A nil SyncMetrics is replaced
// with a no-op implementation.
type SyncMetrics interface {
	ObserveCycle(trigger models.TriggerSource, outcome models.SyncOutcome, took time.Duration)
	TriggerDropped(trigger models.TriggerSource)
}
