package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/wear-health-sync/internal/service"
)

func TestStatusFromError(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"already syncing", service.ErrAlreadySyncing, http.StatusConflict},
		{"permission denied", fmt.Errorf("%w: %w", service.ErrPermissionDenied, cause), http.StatusForbidden},
		{"connection", fmt.Errorf("%w: %w", service.ErrConnection, cause), http.StatusBadGateway},
		{"fetch", fmt.Errorf("%w: %w", service.ErrFetch, cause), http.StatusBadGateway},
		{"persist", fmt.Errorf("%w: %w", service.ErrPersist, cause), http.StatusBadGateway},
		{"token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
		{"unknown", cause, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
