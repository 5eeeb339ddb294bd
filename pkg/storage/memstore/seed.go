package memstore

import (
	"fmt"
	"time"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
)

// seedCustomers cycles through a fixed roster so searches have stable hits.
var seedCustomers = []string{"Kim", "Lee", "Park", "Choi", "Jung", "Han", "Yoon"}

var seedItemNames = []string{
	"Americano", "Latte", "Vanilla Latte", "Sandwich",
	"Cookie", "Cake", "Scone", "Cold Brew",
}

// SeedOrders generates count demo orders spread across the business day,
// cycling statuses, channels, and customers. Deterministic given baseDay.
func SeedOrders(baseDay time.Time, count int) []model.Order {
	day := time.Date(baseDay.Year(), baseDay.Month(), baseDay.Day(), 0, 0, 0, 0, time.UTC)
	orders := make([]model.Order, 0, count)
	for i := 0; i < count; i++ {
		idx := i + 1
		hour := 9 + idx%14 // 09:00 .. 22:00
		minute := (idx * 13) % 60
		orders = append(orders, model.Order{
			ID:       fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), idx),
			Time:     day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute),
			Customer: seedCustomers[idx%len(seedCustomers)],
			Channel:  model.Channels[idx%len(model.Channels)],
			Status:   model.OrderStatuses[idx%len(model.OrderStatuses)],
			Amount:   10_000 + int64(idx%20)*3_500,
		})
	}
	return orders
}

// SeedInventory generates count demo items with stock levels that cover all
// three derived statuses.
func SeedInventory(baseDay time.Time, count int) []model.InventoryItem {
	day := time.Date(baseDay.Year(), baseDay.Month(), baseDay.Day(), 0, 0, 0, 0, time.UTC)
	items := make([]model.InventoryItem, 0, count)
	for i := 0; i < count; i++ {
		idx := i + 1
		safety := 5 + (idx%4)*5
		stock := (idx * 7) % 38
		items = append(items, model.InventoryItem{
			SKU:         fmt.Sprintf("SKU-%04d", idx),
			Name:        fmt.Sprintf("%s %d", seedItemNames[idx%len(seedItemNames)], idx),
			Stock:       stock,
			SafetyStock: safety,
			Status:      model.StatusOf(stock, safety),
			UpdatedAt:   day.Add(time.Duration(10+idx%10)*time.Hour + time.Duration((idx*3)%60)*time.Minute),
		})
	}
	return items
}
