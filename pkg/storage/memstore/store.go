// Package memstore holds the demo data for a single StoreOps process. Stores
// are constructed at startup, injected into the domain services, and die with
// the process; there is no durability layer behind them.
package memstore

import (
	"sync"
	"time"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
)

// OrderStore keeps orders in insertion order, guarded by a RWMutex so
// concurrent list reads never observe a half-applied write.
type OrderStore struct {
	mu     sync.RWMutex
	orders []model.Order
	byID   map[string]int
}

func NewOrderStore(orders []model.Order) *OrderStore {
	s := &OrderStore{
		orders: append([]model.Order(nil), orders...),
		byID:   make(map[string]int, len(orders)),
	}
	for i, o := range s.orders {
		s.byID[o.ID] = i
	}
	return s
}

// Snapshot returns a copy of every order. Callers may filter and sort the
// result freely without holding the lock.
func (s *OrderStore) Snapshot() []model.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Order(nil), s.orders...)
}

func (s *OrderStore) Find(id string) (*model.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	o := s.orders[i]
	return &o, nil
}

// UpdateStatus replaces only the status field of the matched order.
func (s *OrderStore) UpdateStatus(id string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	s.orders[i].Status = status
	o := s.orders[i]
	return &o, nil
}

// InventoryStore keeps items in SKU insertion order behind a RWMutex.
type InventoryStore struct {
	mu    sync.RWMutex
	items []model.InventoryItem
	bySKU map[string]int
}

func NewInventoryStore(items []model.InventoryItem) *InventoryStore {
	s := &InventoryStore{
		items: append([]model.InventoryItem(nil), items...),
		bySKU: make(map[string]int, len(items)),
	}
	for i, item := range s.items {
		s.bySKU[item.SKU] = i
	}
	return s
}

func (s *InventoryStore) Snapshot() []model.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.InventoryItem(nil), s.items...)
}

func (s *InventoryStore) Find(sku string) (*model.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.bySKU[sku]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	item := s.items[i]
	return &item, nil
}

// AdjustStock applies delta, clamps the result at zero, and recomputes the
// derived status. Decrementing an item already at zero is a domain error.
func (s *InventoryStore) AdjustStock(sku string, delta int, now time.Time) (*model.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.bySKU[sku]
	if !ok {
		return nil, model.ErrItemNotFound
	}
	item := &s.items[i]
	if delta < 0 && item.Stock <= 0 {
		return nil, model.ErrStockAlreadyZero
	}
	next := item.Stock + delta
	if next < 0 {
		next = 0
	}
	item.Stock = next
	item.Status = model.StatusOf(item.Stock, item.SafetyStock)
	item.UpdatedAt = now
	out := *item
	return &out, nil
}

// SettingsStore holds the single mutable settings record.
type SettingsStore struct {
	mu       sync.RWMutex
	settings model.Settings
}

func NewSettingsStore(initial model.Settings) *SettingsStore {
	return &SettingsStore{settings: initial}
}

func (s *SettingsStore) Get() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *SettingsStore) SetStoreName(name string) model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.StoreName = name
	return s.settings
}
