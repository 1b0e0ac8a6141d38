package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/wear-health-sync/models"
)

// RecordReader reads the newest persisted record.
type RecordReader interface {
	GetLatest(ctx context.Context) (*models.HealthRecord, error)
}

// MetricsExporter observes served requests and exposes the collected metrics.
type MetricsExporter interface {
	ObserveRequest(method, route string, status int, took time.Duration)
	Handler() http.Handler
}
