package http

import (
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/service"
)

type Handler struct {
	services *service.Services
	records  RecordReader
	metrics  MetricsExporter

	authEnabled bool

	logger *logger.Logger
}

// Option configures optional Handler collaborators.
type Option func(*Handler)

// WithRecords lets GET /api/health/latest fall back to the store before the
// first cycle of this process has produced a record.
func WithRecords(records RecordReader) Option {
	return func(h *Handler) {
		h.records = records
	}
}

// WithMetrics records request metrics and serves GET /metrics.
func WithMetrics(metrics MetricsExporter) Option {
	return func(h *Handler) {
		h.metrics = metrics
	}
}

// WithAuth protects the /api/health and /api/app routes with bearer tokens
// verified by services.AuthService.
func WithAuth(enabled bool) Option {
	return func(h *Handler) {
		h.authEnabled = enabled
	}
}

func NewHandler(services *service.Services, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services: services,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Bool("auth", h.authEnabled).Msg("http handler created")
	return h
}
