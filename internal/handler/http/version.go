package http

import (
	"net/http"

	"github.com/MKhiriev/wear-health-sync/internal/logger"
)

func (h *Handler) getAppVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte(version)); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getAppVersion").Msg("error writing response")
	}
}
