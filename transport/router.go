package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/service"
)

// Handler bundles the domain services behind the JSON API.
type Handler struct {
	orders     service.OrderService
	inventory  service.InventoryService
	settings   service.SettingsService
	dashboard  service.DashboardService
	settlement service.SettlementService
	faults     *FaultInjector
}

func NewHandler(
	orders service.OrderService,
	inventory service.InventoryService,
	settings service.SettingsService,
	dashboard service.DashboardService,
	settlement service.SettlementService,
	faults *FaultInjector,
) *Handler {
	if faults == nil {
		faults = NewFaultInjector(0, 0)
	}
	return &Handler{
		orders:     orders,
		inventory:  inventory,
		settings:   settings,
		dashboard:  dashboard,
		settlement: settlement,
		faults:     faults,
	}
}

// Router wires all endpoints and the middleware chain.
func Router(h *Handler) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders", h.updateOrderStatus).Methods(http.MethodPatch)
	api.HandleFunc("/orders/bulk", h.bulkUpdateOrderStatus).Methods(http.MethodPost)
	api.HandleFunc("/inventory", h.listInventory).Methods(http.MethodGet)
	api.HandleFunc("/inventory", h.adjustStock).Methods(http.MethodPatch)
	api.HandleFunc("/settings", h.getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.updateSettings).Methods(http.MethodPatch)
	api.HandleFunc("/dashboard", h.dashboardOverview).Methods(http.MethodGet)
	api.HandleFunc("/settlement", h.settlementReport).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return requestIDMiddleware(roleMiddleware(logMiddleware(metricsMiddleware(r))))
}
