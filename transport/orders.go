package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/auth"
	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/listquery"
)

// OrdersCodec accepts the order status and channel enumerations plus "all".
var OrdersCodec = listquery.Codec{
	Statuses: []string{
		string(model.StatusPaid), string(model.StatusPreparing), string(model.StatusShipped),
		string(model.StatusCancelled), string(model.StatusRefunded),
	},
	Channels: []string{string(model.ChannelOnline), string(model.ChannelPOS)},
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	// Explicit identity lookup bypasses filtering and pagination entirely.
	if id := r.URL.Query().Get("id"); id != "" {
		order, err := h.orders.Get(id)
		if err != nil {
			if errors.Is(err, model.ErrOrderNotFound) {
				respondJSON(w, http.StatusOK, map[string]*model.Order{"item": nil})
				return
			}
			respondError(w, http.StatusInternalServerError, "internal")
			return
		}
		respondJSON(w, http.StatusOK, map[string]*model.Order{"item": order})
		return
	}

	query := OrdersCodec.Decode(r.URL.Query())
	page, err := h.orders.List(query)
	if err != nil {
		log.WithError(err).Error("order listing failed")
		respondError(w, http.StatusInternalServerError, "internal")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var payload struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.ID == "" || payload.Status == "" {
		respondError(w, http.StatusBadRequest, "invalid")
		return
	}

	status := model.OrderStatus(payload.Status)
	if !status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status")
		return
	}
	if _, err := h.orders.Get(payload.ID); err != nil {
		respondError(w, http.StatusNotFound, "not_found")
		return
	}

	// The simulated failure fires only once the request would otherwise
	// succeed, so clients exercise their rollback path, not their validation.
	if h.faults.Trip() {
		mutationsTotal.WithLabelValues("orders", "random_fail").Inc()
		respondError(w, http.StatusInternalServerError, "random_fail")
		return
	}

	order, err := h.orders.UpdateStatus(payload.ID, status)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidStatus):
			respondError(w, http.StatusBadRequest, "invalid_status")
		case errors.Is(err, model.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "not_found")
		default:
			log.WithError(err).Error("order status update failed")
			respondError(w, http.StatusInternalServerError, "internal")
		}
		mutationsTotal.WithLabelValues("orders", "error").Inc()
		return
	}

	mutationsTotal.WithLabelValues("orders", "updated").Inc()
	respondJSON(w, http.StatusOK, map[string]*model.Order{"item": order})
}

func (h *Handler) bulkUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var payload struct {
		IDs    []string `json:"ids"`
		Status string   `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_ids")
		return
	}

	ids := payload.IDs[:0:0]
	for _, id := range payload.IDs {
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_ids")
		return
	}

	// The bulk action defaults to shipping, the common back-office batch.
	status := model.StatusShipped
	if payload.Status != "" {
		status = model.OrderStatus(payload.Status)
	}

	result, err := h.orders.BulkUpdateStatus(ids, status)
	if err != nil {
		if errors.Is(err, model.ErrInvalidStatus) {
			respondError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		log.WithError(err).Error("bulk order status update failed")
		respondError(w, http.StatusInternalServerError, "internal")
		return
	}

	mutationsTotal.WithLabelValues("orders", "bulk").Inc()
	respondJSON(w, http.StatusOK, struct {
		OK        bool              `json:"ok"`
		Status    model.OrderStatus `json:"status"`
		Requested int               `json:"requested"`
		Updated   []string          `json:"updated"`
		Skipped   []string          `json:"skipped"`
		NotFound  []string          `json:"notFound"`
	}{true, status, result.Requested, result.Updated, result.Skipped, result.NotFound})
}

// requireAdmin writes the forbidden response and reports whether the caller
// may proceed. The role check runs before any payload parsing.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	role := auth.FromContext(r.Context())
	if role != auth.RoleAdmin {
		respondJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden", "role": string(role)})
		return false
	}
	return true
}
