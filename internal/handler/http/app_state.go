package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/wear-health-sync/internal/app"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/models"
)

// appStateChanged receives a host lifecycle notification. A background or
// inactive to active transition runs a cycle before the response is written.
func (h *Handler) appStateChanged(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.AppStateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.appStateChanged").Msg("Invalid JSON was passed")
		utils.WriteError(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	state, err := models.ParseAppState(request.State)
	if err != nil {
		log.Err(err).Str("func", "*Handler.appStateChanged").Send()
		utils.WriteError(w, app.MsgUnknownAppState, http.StatusBadRequest)
		return
	}

	triggered := h.services.SyncService.AppStateChanged(r.Context(), state)

	utils.WriteJSON(w, models.AppStateResponse{Triggered: triggered}, http.StatusOK)
}
