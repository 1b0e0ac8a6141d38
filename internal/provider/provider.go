package provider

import (
	"fmt"

	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
)

// New builds the [DataProvider] selected by cfg.Kind.
func New(cfg config.Provider, logger *logger.Logger) (DataProvider, error) {
	switch cfg.Kind {
	case config.ProviderSimulated, "":
		logger.Info().Str("kind", config.ProviderSimulated).Msg("using simulated watch provider")
		return NewSimulatedProvider(cfg, logger), nil
	case config.ProviderHTTP:
		logger.Info().Str("kind", config.ProviderHTTP).Str("address", cfg.HTTPAddress).Msg("using watch bridge provider")
		return NewHTTPProvider(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProviderKind, cfg.Kind)
	}
}
