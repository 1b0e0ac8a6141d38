package handler

import (
	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/handler/http"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. The control API
// is the only transport; it is disabled by an empty address or "-".
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger, opts ...http.Option) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" && cfg.APIEnabled() {
		handlers.HTTP = http.NewHandler(services, logger, opts...)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
