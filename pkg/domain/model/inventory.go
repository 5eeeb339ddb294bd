package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrItemNotFound     = errors.New("inventory item not found")
	ErrStockAlreadyZero = errors.New("stock is already zero")
)

type StockStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
	StockOOS StockStatus = "oos"
)

var StockStatuses = []StockStatus{StockOK, StockLow, StockOOS}

func (s StockStatus) Valid() bool {
	return s == StockOK || s == StockLow || s == StockOOS
}

// StatusOf derives the stock status from the current level and safety
// threshold. Status is never stored independently of these two values.
func StatusOf(stock, safetyStock int) StockStatus {
	switch {
	case stock <= 0:
		return StockOOS
	case stock <= safetyStock:
		return StockLow
	default:
		return StockOK
	}
}

type InventoryItem struct {
	SKU         string      `json:"sku"`
	Name        string      `json:"name"`
	Stock       int         `json:"stock"`
	SafetyStock int         `json:"safetyStock"`
	Status      StockStatus `json:"status"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (i InventoryItem) MarshalJSON() ([]byte, error) {
	type alias InventoryItem
	return json.Marshal(struct {
		alias
		UpdatedAt string `json:"updatedAt"`
	}{alias(i), i.UpdatedAt.Format(TimeLayout)})
}

func (i *InventoryItem) UnmarshalJSON(data []byte) error {
	type alias InventoryItem
	var raw struct {
		alias
		UpdatedAt string `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = InventoryItem(raw.alias)
	if raw.UpdatedAt == "" {
		return nil
	}
	t, err := time.Parse(TimeLayout, raw.UpdatedAt)
	if err != nil {
		return err
	}
	i.UpdatedAt = t
	return nil
}

func (i InventoryItem) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(i.SKU), term) ||
		strings.Contains(strings.ToLower(i.Name), term)
}

type InventoryRepository interface {
	Snapshot() []InventoryItem
	Find(sku string) (*InventoryItem, error)
	// AdjustStock applies delta to the item's stock, clamping at zero, and
	// recomputes the derived status.
	AdjustStock(sku string, delta int, now time.Time) (*InventoryItem, error)
}
