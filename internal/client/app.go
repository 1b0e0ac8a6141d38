package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/handler"
	myHTTP "github.com/MKhiriev/wear-health-sync/internal/handler/http"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/metrics"
	"github.com/MKhiriev/wear-health-sync/internal/provider"
	"github.com/MKhiriev/wear-health-sync/internal/server"
	"github.com/MKhiriev/wear-health-sync/internal/service"
	"github.com/MKhiriev/wear-health-sync/internal/store"
	"github.com/MKhiriev/wear-health-sync/internal/workers"
	"github.com/MKhiriev/wear-health-sync/models"
)

type App struct {
	storages *store.Storages
	services *service.Services
	server   server.Server
	workers  *workers.Workers

	logger *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp opens the store and wires every component described by cfg. The
// control API is skipped when cfg.Server disables it.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, logger *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create storages: %w", err)
	}

	dataProvider, err := provider.New(cfg.Provider, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create provider: %w", err)
	}

	appMetrics := metrics.New()

	services, err := service.NewServices(dataProvider, storages.HealthRecords, appMetrics, *cfg, build, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create services: %w", err)
	}

	app := &App{
		storages: storages,
		services: services,
		workers:  workers.NewWorkers(workers.NewSyncWorker(services.SyncService, logger)),
		logger:   logger,
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, logger,
		myHTTP.WithRecords(storages.HealthRecords),
		myHTTP.WithMetrics(appMetrics),
		myHTTP.WithAuth(cfg.App.TokenSignKey != ""),
	)
	switch {
	case handler.IsNoHandlers(err):
		logger.Info().Msg("control API disabled, running headless")
	case err != nil:
		storages.Close()
		return nil, fmt.Errorf("create handlers: %w", err)
	default:
		app.server, err = server.NewServer(handlers, cfg.Server, logger)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("create server: %w", err)
		}
		app.workers.Add(app.server)
	}

	logger.Info().
		Str("storage", storages.Backend).
		Str("provider", cfg.Provider.Kind).
		Dur("sync_interval", cfg.Workers.SyncInterval).
		Msg("app created")

	return app, nil
}

// Run blocks until a termination signal arrives or a worker fails.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return a.run(ctx)
}

func (a *App) run(ctx context.Context) error {
	defer a.close()

	a.logger.Info().Msg("app started")
	if err := a.workers.Run(ctx); err != nil {
		return fmt.Errorf("workers stopped: %w", err)
	}
	a.logger.Info().Msg("app shutdown gracefully")

	return nil
}

func (a *App) close() {
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("error closing storages")
	}
}

// Services exposes the wired services, e.g. for issuing tokens.
func (a *App) Services() *service.Services {
	return a.services
}
