package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/wear-health-sync/internal/service"
)

var errorStatusMap = map[error]int{
	service.ErrAlreadySyncing:          http.StatusConflict,
	service.ErrPermissionDenied:        http.StatusForbidden,
	service.ErrConnection:              http.StatusBadGateway,
	service.ErrFetch:                   http.StatusBadGateway,
	service.ErrPersist:                 http.StatusBadGateway,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
}

func statusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
