package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/listquery"
)

// InventoryCodec accepts the derived stock statuses; inventory has no channel
// dimension.
var InventoryCodec = listquery.Codec{
	Statuses: []string{string(model.StockOK), string(model.StockLow), string(model.StockOOS)},
}

func (h *Handler) listInventory(w http.ResponseWriter, r *http.Request) {
	if sku := r.URL.Query().Get("sku"); sku != "" {
		item, err := h.inventory.Get(sku)
		if err != nil {
			if errors.Is(err, model.ErrItemNotFound) {
				respondJSON(w, http.StatusOK, map[string]*model.InventoryItem{"item": nil})
				return
			}
			respondError(w, http.StatusInternalServerError, "internal")
			return
		}
		respondJSON(w, http.StatusOK, map[string]*model.InventoryItem{"item": item})
		return
	}

	query := InventoryCodec.Decode(r.URL.Query())
	page, err := h.inventory.List(query)
	if err != nil {
		log.WithError(err).Error("inventory listing failed")
		respondError(w, http.StatusInternalServerError, "internal")
		return
	}
	respondJSON(w, http.StatusOK, page)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}

	var payload struct {
		SKU   string `json:"sku"`
		Delta *int   `json:"delta"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.SKU == "" || payload.Delta == nil {
		respondError(w, http.StatusBadRequest, "invalid")
		return
	}

	current, err := h.inventory.Get(payload.SKU)
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found")
		return
	}
	if *payload.Delta < 0 && current.Stock <= 0 {
		respondError(w, http.StatusBadRequest, "stock_already_zero")
		return
	}

	if h.faults.Trip() {
		mutationsTotal.WithLabelValues("inventory", "random_fail").Inc()
		respondError(w, http.StatusInternalServerError, "random_fail")
		return
	}

	item, err := h.inventory.AdjustStock(payload.SKU, *payload.Delta)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrStockAlreadyZero):
			respondError(w, http.StatusBadRequest, "stock_already_zero")
		case errors.Is(err, model.ErrItemNotFound):
			respondError(w, http.StatusNotFound, "not_found")
		default:
			log.WithError(err).Error("stock adjustment failed")
			respondError(w, http.StatusInternalServerError, "internal")
		}
		mutationsTotal.WithLabelValues("inventory", "error").Inc()
		return
	}

	mutationsTotal.WithLabelValues("inventory", "updated").Inc()
	respondJSON(w, http.StatusOK, map[string]*model.InventoryItem{"item": item})
}
