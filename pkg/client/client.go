// Package client is a Go consumer of the StoreOps API that mirrors the admin
// console's fetch behavior: list responses are cached under the canonical
// query string, mutations are applied optimistically and rolled back on
// failure, and settlement invalidates the affected cache regions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/auth"
	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/domain/service"
	"github.com/hayoungbuilds/storeops-admin/pkg/listquery"
	"github.com/hayoungbuilds/storeops-admin/transport"
)

// APIError carries the server's error code alongside the HTTP status.
type APIError struct {
	Status int
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s (http %d)", e.Code, e.Status)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	role    auth.Role
	cache   *Cache
	logger  log.FieldLogger
}

func New(baseURL string, role auth.Role, httpc *http.Client, logger log.FieldLogger) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   httpc,
		role:    role,
		cache:   NewCache(),
		logger:  logger,
	}
}

// SetRole switches the role sent on subsequent requests.
func (c *Client) SetRole(role auth.Role) { c.role = role }

// Cache exposes the cache for inspection in tests and tooling.
func (c *Client) Cache() *Cache { return c.cache }

// ListOrders serves from cache when the entry is fresh, otherwise fetches and
// commits under the generation captured before the request went out.
func (c *Client) ListOrders(ctx context.Context, q listquery.Query) (service.OrderPage, error) {
	key := transport.OrdersCodec.String(q)
	if data, fresh := c.cache.Get(KindOrders, key); fresh {
		if page, ok := data.(service.OrderPage); ok {
			return page, nil
		}
	}

	gen := c.cache.Generation(KindOrders, key)
	var page service.OrderPage
	if err := c.getJSON(ctx, "/api/orders", transport.OrdersCodec.Encode(q), &page); err != nil {
		return service.OrderPage{}, err
	}
	c.cache.Commit(KindOrders, key, gen, page)
	return page, nil
}

// GetOrder returns nil without error when the id is unknown, mirroring the
// endpoint's {item: null} short-circuit.
func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	if data, fresh := c.cache.Get(KindOrder, id); fresh {
		if order, ok := data.(model.Order); ok {
			return &order, nil
		}
	}

	gen := c.cache.Generation(KindOrder, id)
	var body struct {
		Item *model.Order `json:"item"`
	}
	params := url.Values{"id": []string{id}}
	if err := c.getJSON(ctx, "/api/orders", params, &body); err != nil {
		return nil, err
	}
	if body.Item == nil {
		return nil, nil
	}
	c.cache.Commit(KindOrder, id, gen, *body.Item)
	return body.Item, nil
}

// UpdateOrderStatus applies the optimistic write, issues the request, rolls
// back on failure, and always settles so the next read refetches.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	m := newOrderMutation(c.cache, []string{id}, status)
	defer m.Settle()

	var body struct {
		Item *model.Order `json:"item"`
	}
	err := c.doJSON(ctx, http.MethodPatch, "/api/orders", map[string]string{
		"id": id, "status": string(status),
	}, &body)
	if err != nil {
		m.Rollback()
		return nil, err
	}
	m.Confirm()
	return body.Item, nil
}

func (c *Client) BulkUpdateOrderStatus(ctx context.Context, ids []string, status model.OrderStatus) (service.BulkResult, error) {
	m := newOrderMutation(c.cache, ids, status)
	defer m.Settle()

	var body struct {
		OK        bool     `json:"ok"`
		Requested int      `json:"requested"`
		Updated   []string `json:"updated"`
		Skipped   []string `json:"skipped"`
		NotFound  []string `json:"notFound"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/orders/bulk", map[string]any{
		"ids": ids, "status": string(status),
	}, &body)
	if err != nil {
		m.Rollback()
		return service.BulkResult{}, err
	}
	m.Confirm()
	return service.BulkResult{
		Requested: body.Requested,
		Updated:   body.Updated,
		Skipped:   body.Skipped,
		NotFound:  body.NotFound,
	}, nil
}

func (c *Client) ListInventory(ctx context.Context, q listquery.Query) (service.InventoryPage, error) {
	key := transport.InventoryCodec.String(q)
	if data, fresh := c.cache.Get(KindInventory, key); fresh {
		if page, ok := data.(service.InventoryPage); ok {
			return page, nil
		}
	}

	gen := c.cache.Generation(KindInventory, key)
	var page service.InventoryPage
	if err := c.getJSON(ctx, "/api/inventory", transport.InventoryCodec.Encode(q), &page); err != nil {
		return service.InventoryPage{}, err
	}
	c.cache.Commit(KindInventory, key, gen, page)
	return page, nil
}

func (c *Client) GetInventoryItem(ctx context.Context, sku string) (*model.InventoryItem, error) {
	if data, fresh := c.cache.Get(KindItem, sku); fresh {
		if item, ok := data.(model.InventoryItem); ok {
			return &item, nil
		}
	}

	gen := c.cache.Generation(KindItem, sku)
	var body struct {
		Item *model.InventoryItem `json:"item"`
	}
	params := url.Values{"sku": []string{sku}}
	if err := c.getJSON(ctx, "/api/inventory", params, &body); err != nil {
		return nil, err
	}
	if body.Item == nil {
		return nil, nil
	}
	c.cache.Commit(KindItem, sku, gen, *body.Item)
	return body.Item, nil
}

func (c *Client) AdjustStock(ctx context.Context, sku string, delta int) (*model.InventoryItem, error) {
	m := newStockMutation(c.cache, sku, delta)
	defer m.Settle()

	var body struct {
		Item *model.InventoryItem `json:"item"`
	}
	err := c.doJSON(ctx, http.MethodPatch, "/api/inventory", map[string]any{
		"sku": sku, "delta": delta,
	}, &body)
	if err != nil {
		m.Rollback()
		return nil, err
	}
	m.Confirm()
	return body.Item, nil
}

func (c *Client) GetSettings(ctx context.Context) (model.Settings, error) {
	var settings model.Settings
	if err := c.getJSON(ctx, "/api/settings", nil, &settings); err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

func (c *Client) UpdateStoreName(ctx context.Context, name string) (model.Settings, error) {
	var settings model.Settings
	err := c.doJSON(ctx, http.MethodPatch, "/api/settings", map[string]string{"storeName": name}, &settings)
	if err != nil {
		return model.Settings{}, err
	}
	return settings, nil
}

// getJSON fetches with a single generic retry on transport errors and 5xx
// responses; everything else is returned as-is.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	err := c.request(ctx, http.MethodGet, path, params, nil, out)
	var apiErr *APIError
	if err == nil {
		return nil
	}
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return err
	}
	c.logger.WithError(err).WithField("path", path).Warn("fetch failed, retrying once")
	return c.request(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	return c.request(ctx, method, path, nil, payload, out)
}

func (c *Client) request(ctx context.Context, method, path string, params url.Values, payload, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(err, "marshal request payload")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set(auth.HeaderKey, string(c.role))
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&errBody)
		if errBody.Error == "" {
			errBody.Error = http.StatusText(res.StatusCode)
		}
		return &APIError{Status: res.StatusCode, Code: errBody.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode response body")
	}
	return nil
}
