package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/wear-health-sync/internal/config"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/internal/validators"
	"github.com/MKhiriev/wear-health-sync/models"
)

// Watch bridge endpoints.
const (
	permissionPath = "/api/permissions/health"
	statusPath     = "/api/device/status"
	metricsPath    = "/api/health/current"
)

type httpProvider struct {
	client    *utils.HTTPClient
	validator validators.Validator
	logger    *logger.Logger
}

// NewHTTPProvider constructs a [DataProvider] that talks to a watch bridge
// over HTTP. It normalises and validates cfg.HTTPAddress and applies
// cfg.RequestTimeout to every request.
func NewHTTPProvider(cfg config.Provider, logger *logger.Logger) (DataProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid provider http address: %w", err)
	}

	return &httpProvider{
		client:    utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		validator: validators.NewHealthRecordValidator(),
		logger:    logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// RequestPermission implements [DataProvider]. It POSTs to
// /api/permissions/health and returns the bridge's "granted" flag.
// A 403 from the bridge is a denial, not an error.
func (h *httpProvider) RequestPermission(ctx context.Context) (bool, error) {
	var result models.PermissionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&result).
		Post(permissionPath)
	if err != nil {
		return false, fmt.Errorf("permission request: %w", err)
	}
	if resp.StatusCode() == http.StatusForbidden {
		return false, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return result.Granted, nil
}

// Connect implements [DataProvider]. It GETs /api/device/status. A 503 means
// the bridge is up but the watch is not paired or out of range.
func (h *httpProvider) Connect(ctx context.Context) (bool, error) {
	var status models.DeviceStatus

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&status).
		Get(statusPath)
	if err != nil {
		return false, fmt.Errorf("device status request: %w", err)
	}
	if resp.StatusCode() == http.StatusServiceUnavailable {
		logger.FromContextOr(ctx, h.logger).Warn().Str("func", "*httpProvider.Connect").Msg("bridge reports watch unreachable")
		return false, nil
	}
	if err = mapHTTPError(resp); err != nil {
		return false, err
	}

	return status.Connected, nil
}

// Fetch implements [DataProvider]. It GETs /api/health/current and decodes
// the record. Records failing [validators.HealthRecordValidator] are
// rejected with ErrInvalidRecord.
func (h *httpProvider) Fetch(ctx context.Context) (models.HealthRecord, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get(metricsPath)
	if err != nil {
		return models.HealthRecord{}, fmt.Errorf("fetch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContextOr(ctx, h.logger).Err(err).Str("func", "*httpProvider.Fetch").Int("status", resp.StatusCode()).Msg("bridge rejected fetch")
		return models.HealthRecord{}, err
	}

	var rec models.HealthRecord
	if err = json.Unmarshal(resp.Body(), &rec); err != nil {
		return models.HealthRecord{}, fmt.Errorf("decode health record: %w", err)
	}
	if err = h.validator.Validate(ctx, rec); err != nil {
		logger.FromContextOr(ctx, h.logger).Warn().Err(err).Str("func", "*httpProvider.Fetch").Msg("bridge returned implausible record")
		return models.HealthRecord{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	rec.ID = ""
	rec.Timestamp = rec.Timestamp.UTC()
	return rec, nil
}
