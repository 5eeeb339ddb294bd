package transport

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (h *Handler) dashboardOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboard.Overview(r.URL.Query().Get("range"))
	if err != nil {
		log.WithError(err).Error("dashboard overview failed")
		respondError(w, http.StatusInternalServerError, "internal")
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

func (h *Handler) settlementReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.settlement.Report(r.URL.Query().Get("range"))
	if err != nil {
		log.WithError(err).Error("settlement report failed")
		respondError(w, http.StatusInternalServerError, "internal")
		return
	}
	respondJSON(w, http.StatusOK, report)
}
