package service

import (
	"context"
	"time"

	"github.com/MKhiriev/wear-health-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService is what the control API and the runtime need from the
// controller.
type SyncService interface {
	Initialize(ctx context.Context) error
	SyncOnce(ctx context.Context) (models.SyncOutcome, error)
	TriggerManual(ctx context.Context) (models.SyncOutcome, error)
	OnAppForegrounded(ctx context.Context)
	AppStateChanged(ctx context.Context, next models.AppState) bool
	ClearError()
	Snapshot() models.SyncSnapshot
	Stop()
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

type AuthService interface {
	CreateToken(ctx context.Context, subject string, ttl time.Duration) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncJob runs a function on a fixed interval until stopped.
type SyncJob interface {
	Start(ctx context.Context, interval time.Duration)
	Stop()
}
