package server

import (
	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/handler"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
)

// NewServer creates the control API server for handlers.
func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errAPIDisabled
	}

	return newHTTPServer(handlers.HTTP.Init(), cfg.HTTPAddress, logger), nil
}
