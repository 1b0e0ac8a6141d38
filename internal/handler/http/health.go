package http

import (
	"net/http"

	"github.com/MKhiriev/wear-health-sync/internal/app"
	"github.com/MKhiriev/wear-health-sync/internal/logger"
	"github.com/MKhiriev/wear-health-sync/internal/service"
	"github.com/MKhiriev/wear-health-sync/internal/utils"
	"github.com/MKhiriev/wear-health-sync/models"
)

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Snapshot(), http.StatusOK)
}

func (h *Handler) getLatest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if latest := h.services.SyncService.Snapshot().Latest; latest != nil {
		utils.WriteJSON(w, latest, http.StatusOK)
		return
	}

	if h.records == nil {
		utils.WriteError(w, app.MsgNoRecordYet, http.StatusNotFound)
		return
	}

	latest, err := h.records.GetLatest(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getLatest").Msg("error reading latest record from store")
		utils.WriteError(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}
	if latest == nil {
		utils.WriteError(w, app.MsgNoRecordYet, http.StatusNotFound)
		return
	}

	utils.WriteJSON(w, latest, http.StatusOK)
}

func (h *Handler) getHistory(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.SyncService.Snapshot().History, http.StatusOK)
}

func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	outcome, err := h.services.SyncService.TriggerManual(r.Context())
	if err != nil {
		log.Warn().Err(err).Str("outcome", string(outcome)).Msg("manual sync did not succeed")
	}

	response := models.SyncResponse{
		Outcome: outcome,
		Error:   service.UserMessage(err),
	}

	utils.WriteJSON(w, response, statusFromError(err))
}

func (h *Handler) clearError(w http.ResponseWriter, r *http.Request) {
	h.services.SyncService.ClearError()
	w.WriteHeader(http.StatusNoContent)
}
