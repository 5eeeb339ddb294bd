package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
)

func (h *Handler) getSettings(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, h.settings.Get())
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var payload struct {
		StoreName string `json:"storeName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid")
		return
	}

	settings, err := h.settings.UpdateStoreName(payload.StoreName)
	if err != nil {
		if errors.Is(err, model.ErrInvalidStoreName) {
			respondError(w, http.StatusBadRequest, "invalid")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal")
		return
	}

	mutationsTotal.WithLabelValues("settings", "updated").Inc()
	respondJSON(w, http.StatusOK, settings)
}
