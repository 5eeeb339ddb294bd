package client

import (
	"github.com/google/uuid"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/domain/service"
)

// MutationState tracks a pending mutation through its lifecycle.
type MutationState string

const (
	MutationOptimistic MutationState = "optimistic"
	MutationConfirmed  MutationState = "confirmed"
	MutationRolledBack MutationState = "rolled-back"
)

// PendingMutation holds the pre-mutation snapshot of every affected cache
// entry. Apply rewrites the cache to the presumed outcome, Rollback restores
// the snapshot verbatim, and Settle marks the affected regions stale so the
// next read reconciles against the server. A server-side skipped or
// not-found id is corrected by that refetch, never by a second optimistic
// pass.
type PendingMutation struct {
	ID        uuid.UUID
	state     MutationState
	cache     *Cache
	listKind  Kind
	itemKind  Kind
	targetIDs []string
	snapshot  map[cacheKey]any
}

func (m *PendingMutation) State() MutationState { return m.state }

// newOrderMutation snapshots and optimistically rewrites every cached orders
// list and every cached detail entry for the targeted ids. Bumping entry
// generations also discards any in-flight fetch that raced the write.
func newOrderMutation(cache *Cache, ids []string, status model.OrderStatus) *PendingMutation {
	m := &PendingMutation{
		ID:        uuid.New(),
		state:     MutationOptimistic,
		cache:     cache,
		listKind:  KindOrders,
		itemKind:  KindOrder,
		targetIDs: ids,
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	m.snapshot = cache.snapshotKind(KindOrders)
	for k, data := range m.snapshot {
		page, ok := data.(service.OrderPage)
		if !ok {
			continue
		}
		next := page
		next.Items = append([]model.Order(nil), page.Items...)
		for i, o := range next.Items {
			if _, hit := idSet[o.ID]; hit {
				next.Items[i].Status = status
			}
		}
		cache.put(k, next)
	}

	for _, id := range ids {
		k := cacheKey{KindOrder, id}
		e, ok := cache.entries[k]
		if !ok || e.data == nil {
			continue
		}
		order, ok := e.data.(model.Order)
		if !ok {
			continue
		}
		m.snapshot[k] = order
		next := order
		next.Status = status
		cache.put(k, next)
	}
	return m
}

// newStockMutation optimistically applies a stock delta to every cached
// inventory entry holding the targeted SKU, recomputing the derived status.
func newStockMutation(cache *Cache, sku string, delta int) *PendingMutation {
	m := &PendingMutation{
		ID:        uuid.New(),
		state:     MutationOptimistic,
		cache:     cache,
		listKind:  KindInventory,
		itemKind:  KindItem,
		targetIDs: []string{sku},
	}

	adjust := func(item model.InventoryItem) model.InventoryItem {
		next := item.Stock + delta
		if next < 0 {
			next = 0
		}
		item.Stock = next
		item.Status = model.StatusOf(next, item.SafetyStock)
		return item
	}

	cache.mu.Lock()
	defer cache.mu.Unlock()

	m.snapshot = cache.snapshotKind(KindInventory)
	for k, data := range m.snapshot {
		page, ok := data.(service.InventoryPage)
		if !ok {
			continue
		}
		next := page
		next.Items = append([]model.InventoryItem(nil), page.Items...)
		for i, item := range next.Items {
			if item.SKU == sku {
				next.Items[i] = adjust(item)
			}
		}
		cache.put(k, next)
	}

	k := cacheKey{KindItem, sku}
	if e, ok := cache.entries[k]; ok && e.data != nil {
		if item, ok := e.data.(model.InventoryItem); ok {
			m.snapshot[k] = item
			cache.put(k, adjust(item))
		}
	}
	return m
}

// Rollback restores every snapshotted entry verbatim.
func (m *PendingMutation) Rollback() {
	if m.state != MutationOptimistic {
		return
	}
	m.cache.mu.Lock()
	for k, data := range m.snapshot {
		m.cache.put(k, data)
	}
	m.cache.mu.Unlock()
	m.state = MutationRolledBack
}

// Confirm records that the server accepted the mutation.
func (m *PendingMutation) Confirm() {
	if m.state == MutationOptimistic {
		m.state = MutationConfirmed
	}
}

// Settle invalidates the affected cache regions regardless of outcome,
// forcing the next read to reconcile with the server.
func (m *PendingMutation) Settle() {
	m.cache.MarkStale(m.listKind)
	m.cache.MarkStaleKeys(m.itemKind, m.targetIDs)
}
