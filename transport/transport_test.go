package transport_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/domain/service"
	"github.com/hayoungbuilds/storeops-admin/pkg/storage/memstore"
	"github.com/hayoungbuilds/storeops-admin/transport"
)

var seedDay = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

type fixture struct {
	server *httptest.Server
	orders *memstore.OrderStore
}

func newFixture(t *testing.T, orders []model.Order, failureRate float64) *fixture {
	t.Helper()
	orderStore := memstore.NewOrderStore(orders)
	inventoryStore := memstore.NewInventoryStore([]model.InventoryItem{
		{SKU: "S1", Name: "Latte", Stock: 0, SafetyStock: 5, Status: model.StockOOS, UpdatedAt: seedDay},
		{SKU: "S2", Name: "Cookie", Stock: 20, SafetyStock: 5, Status: model.StockOK, UpdatedAt: seedDay},
	})
	settingsStore := memstore.NewSettingsStore(model.Settings{StoreName: "StoreOps"})

	handler := transport.NewHandler(
		service.NewOrderService(orderStore, nil),
		service.NewInventoryService(inventoryStore, nil),
		service.NewSettingsService(settingsStore, nil),
		service.NewDashboardService(orderStore, seedDay, nil),
		service.NewSettlementService(seedDay, nil),
		transport.NewFaultInjector(failureRate, 1),
	)

	srv := httptest.NewServer(transport.Router(handler))
	t.Cleanup(srv.Close)
	return &fixture{server: srv, orders: orderStore}
}

func (f *fixture) do(t *testing.T, method, path, role string, payload any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, f.server.URL+path, body)
	require.NoError(t, err)
	if role != "" {
		req.Header.Set("x-role", role)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })

	fields := map[string]json.RawMessage{}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&fields))
	return res, fields
}

func errorCode(t *testing.T, fields map[string]json.RawMessage) string {
	t.Helper()
	var code string
	require.NoError(t, json.Unmarshal(fields["error"], &code))
	return code
}

func TestListOrdersDefaultPage(t *testing.T) {
	f := newFixture(t, memstore.SeedOrders(seedDay, 42), 0)

	res, fields := f.do(t, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var meta service.PageMeta
	require.NoError(t, json.Unmarshal(fields["meta"], &meta))
	assert.Equal(t, 42, meta.Total)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, 5, meta.TotalPages)

	var items []model.Order
	require.NoError(t, json.Unmarshal(fields["items"], &items))
	assert.Len(t, items, 10)
}

func TestListOrdersSingleLookup(t *testing.T) {
	f := newFixture(t, memstore.SeedOrders(seedDay, 3), 0)

	res, fields := f.do(t, http.MethodGet, "/api/orders?id=ORD-20260202-0002", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var item model.Order
	require.NoError(t, json.Unmarshal(fields["item"], &item))
	assert.Equal(t, "ORD-20260202-0002", item.ID)

	res, fields = f.do(t, http.MethodGet, "/api/orders?id=ORD-0000", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "unknown id is not an error on the read path")
	assert.Equal(t, "null", string(fields["item"]))
}

func TestUpdateOrderStatusRoleGate(t *testing.T) {
	f := newFixture(t, []model.Order{{ID: "X", Status: model.StatusPaid, Channel: model.ChannelOnline}}, 0)

	res, fields := f.do(t, http.MethodPatch, "/api/orders", "viewer",
		map[string]string{"id": "X", "status": "preparing"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "forbidden", errorCode(t, fields))

	stored, err := f.orders.Find("X")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, stored.Status, "forbidden request must not touch the store")

	// Absent role defaults to viewer.
	res, _ = f.do(t, http.MethodPatch, "/api/orders", "",
		map[string]string{"id": "X", "status": "preparing"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestRoleQueryFallback(t *testing.T) {
	f := newFixture(t, []model.Order{{ID: "X", Status: model.StatusPaid, Channel: model.ChannelOnline}}, 0)

	res, _ := f.do(t, http.MethodPatch, "/api/orders?role=admin", "",
		map[string]string{"id": "X", "status": "preparing"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestRoleHeaderBeatsQuery(t *testing.T) {
	f := newFixture(t, []model.Order{{ID: "X", Status: model.StatusPaid, Channel: model.ChannelOnline}}, 0)

	res, fields := f.do(t, http.MethodPatch, "/api/orders?role=admin", "viewer",
		map[string]string{"id": "X", "status": "preparing"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode, "header role wins over the query fallback")
	assert.Equal(t, "forbidden", errorCode(t, fields))

	stored, err := f.orders.Find("X")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, stored.Status)
}

func TestUpdateOrderStatusErrors(t *testing.T) {
	f := newFixture(t, []model.Order{{ID: "X", Status: model.StatusPaid, Channel: model.ChannelOnline}}, 0)

	res, fields := f.do(t, http.MethodPatch, "/api/orders", "admin", map[string]string{"id": "X"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "invalid", errorCode(t, fields))

	res, fields = f.do(t, http.MethodPatch, "/api/orders", "admin",
		map[string]string{"id": "X", "status": "misplaced"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "invalid_status", errorCode(t, fields))

	res, fields = f.do(t, http.MethodPatch, "/api/orders", "admin",
		map[string]string{"id": "NOPE", "status": "shipped"})
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "not_found", errorCode(t, fields))
}

func TestUpdateOrderStatusSuccess(t *testing.T) {
	f := newFixture(t, []model.Order{{ID: "X", Status: model.StatusPaid, Channel: model.ChannelOnline}}, 0)

	res, fields := f.do(t, http.MethodPatch, "/api/orders", "admin",
		map[string]string{"id": "X", "status": "shipped"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var item model.Order
	require.NoError(t, json.Unmarshal(fields["item"], &item))
	assert.Equal(t, model.StatusShipped, item.Status)
}

func TestBulkUpdatePartitions(t *testing.T) {
	f := newFixture(t, []model.Order{
		{ID: "A", Status: model.StatusShipped, Channel: model.ChannelOnline},
		{ID: "B", Status: model.StatusPaid, Channel: model.ChannelOnline},
	}, 0)

	res, fields := f.do(t, http.MethodPost, "/api/orders/bulk", "admin",
		map[string]any{"ids": []string{"A", "B", "C"}, "status": "shipped"})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var result struct {
		OK        bool     `json:"ok"`
		Status    string   `json:"status"`
		Requested int      `json:"requested"`
		Updated   []string `json:"updated"`
		Skipped   []string `json:"skipped"`
		NotFound  []string `json:"notFound"`
	}
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &result))

	assert.True(t, result.OK)
	assert.Equal(t, "shipped", result.Status)
	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, []string{"B"}, result.Updated)
	assert.Equal(t, []string{"A"}, result.Skipped)
	assert.Equal(t, []string{"C"}, result.NotFound)
}

func TestBulkUpdateValidation(t *testing.T) {
	f := newFixture(t, nil, 0)

	res, fields := f.do(t, http.MethodPost, "/api/orders/bulk", "admin", map[string]any{"ids": []string{}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "invalid_ids", errorCode(t, fields))

	res, fields = f.do(t, http.MethodPost, "/api/orders/bulk", "admin",
		map[string]any{"ids": []string{"A"}, "status": "imaginary"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "invalid_status", errorCode(t, fields))

	res, _ = f.do(t, http.MethodPost, "/api/orders/bulk", "viewer",
		map[string]any{"ids": []string{"A"}})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestBulkUpdateDefaultsToShipped(t *testing.T) {
	f := newFixture(t, []model.Order{{ID: "B", Status: model.StatusPaid, Channel: model.ChannelOnline}}, 0)

	res, fields := f.do(t, http.MethodPost, "/api/orders/bulk", "admin", map[string]any{"ids": []string{"B"}})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var status string
	require.NoError(t, json.Unmarshal(fields["status"], &status))
	assert.Equal(t, "shipped", status)
}

func TestInventoryEndpoints(t *testing.T) {
	f := newFixture(t, nil, 0)

	res, fields := f.do(t, http.MethodGet, "/api/inventory", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var kpi service.InventoryKPI
	require.NoError(t, json.Unmarshal(fields["kpi"], &kpi))
	assert.Equal(t, 2, kpi.Total)
	assert.Equal(t, 1, kpi.OOS)

	res, fields = f.do(t, http.MethodGet, "/api/inventory?sku=S2", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var item model.InventoryItem
	require.NoError(t, json.Unmarshal(fields["item"], &item))
	assert.Equal(t, "S2", item.SKU)

	res, fields = f.do(t, http.MethodPatch, "/api/inventory", "admin",
		map[string]any{"sku": "S1", "delta": -1})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "stock_already_zero", errorCode(t, fields))

	res, fields = f.do(t, http.MethodPatch, "/api/inventory", "admin",
		map[string]any{"sku": "S2", "delta": -5})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(fields["item"], &item))
	assert.Equal(t, 15, item.Stock)

	res, fields = f.do(t, http.MethodPatch, "/api/inventory", "admin",
		map[string]any{"sku": "S2"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "invalid", errorCode(t, fields))

	res, _ = f.do(t, http.MethodPatch, "/api/inventory", "viewer",
		map[string]any{"sku": "S2", "delta": 1})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestSettingsEndpoints(t *testing.T) {
	f := newFixture(t, nil, 0)

	res, fields := f.do(t, http.MethodGet, "/api/settings", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var name string
	require.NoError(t, json.Unmarshal(fields["storeName"], &name))
	assert.Equal(t, "StoreOps", name)

	res, fields = f.do(t, http.MethodPatch, "/api/settings", "admin",
		map[string]string{"storeName": "  "})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "invalid", errorCode(t, fields))

	res, fields = f.do(t, http.MethodPatch, "/api/settings", "admin",
		map[string]string{"storeName": "My Cafe"})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(fields["storeName"], &name))
	assert.Equal(t, "My Cafe", name)

	res, _ = f.do(t, http.MethodPatch, "/api/settings", "viewer",
		map[string]string{"storeName": "Sneaky"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestReportEndpoints(t *testing.T) {
	f := newFixture(t, memstore.SeedOrders(seedDay, 20), 0)

	res, fields := f.do(t, http.MethodGet, "/api/dashboard", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, fields, "kpi")
	assert.Contains(t, fields, "recent")
	assert.Contains(t, fields, "charts")

	res, fields = f.do(t, http.MethodGet, "/api/settlement?range=30d", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var rng string
	require.NoError(t, json.Unmarshal(fields["range"], &rng))
	assert.Equal(t, "30d", rng)
}

func TestSimulatedFailure(t *testing.T) {
	f := newFixture(t, []model.Order{{ID: "X", Status: model.StatusPaid, Channel: model.ChannelOnline}}, 1.0)

	res, fields := f.do(t, http.MethodPatch, "/api/orders", "admin",
		map[string]string{"id": "X", "status": "shipped"})
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "random_fail", errorCode(t, fields))

	stored, err := f.orders.Find("X")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaid, stored.Status)
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, nil, 0)
	res, fields := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var status string
	require.NoError(t, json.Unmarshal(fields["status"], &status))
	assert.Equal(t, "ok", status)
}
