package service

import (
	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/models"
)

// Services groups the application services handed to the transport layer.
type Services struct {
	SyncService    SyncService
	AppInfoService AppInfoService
	AuthService    AuthService
}

// NewServices wires the sync controller around provider and store and
// builds the supporting services from cfg.
func NewServices(provider DataProvider, store RecordStore, metrics SyncMetrics, cfg config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		SyncService:    NewSyncController(provider, store, cfg.Workers, logger, WithMetrics(metrics)),
		AppInfoService: appInfo,
		AuthService:    NewAuthService(cfg.App, logger),
	}, nil
}
