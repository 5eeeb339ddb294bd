package service

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/listquery"
)

// InventoryKPI summarizes the filtered result set, not the whole store, so
// the numbers always agree with what the list shows.
type InventoryKPI struct {
	Total int `json:"total"`
	Low   int `json:"low"`
	OOS   int `json:"oos"`
}

type InventoryPage struct {
	Items []model.InventoryItem `json:"items"`
	KPI   InventoryKPI          `json:"kpi"`
	Meta  PageMeta              `json:"meta"`
}

type InventoryService interface {
	List(query listquery.Query) (InventoryPage, error)
	Get(sku string) (*model.InventoryItem, error)
	AdjustStock(sku string, delta int) (*model.InventoryItem, error)
}

func NewInventoryService(repo model.InventoryRepository, logger log.FieldLogger) InventoryService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &inventoryService{repo: repo, logger: logger, now: time.Now}
}

type inventoryService struct {
	repo   model.InventoryRepository
	logger log.FieldLogger
	now    func() time.Time
}

func (s *inventoryService) List(query listquery.Query) (InventoryPage, error) {
	snapshot := s.repo.Snapshot()

	filtered := snapshot[:0:0]
	for _, item := range snapshot {
		if !item.Matches(query.Term) {
			continue
		}
		if query.Status != listquery.All && string(item.Status) != query.Status {
			continue
		}
		filtered = append(filtered, item)
	}

	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].SKU < filtered[j].SKU })

	kpi := InventoryKPI{Total: len(filtered)}
	for _, item := range filtered {
		switch item.Status {
		case model.StockLow:
			kpi.Low++
		case model.StockOOS:
			kpi.OOS++
		}
	}

	total := len(filtered)
	meta := clampPage(total, query.Page, query.PageSize)
	start := (meta.Page - 1) * meta.PageSize
	end := start + meta.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := append([]model.InventoryItem(nil), filtered[start:end]...)
	return InventoryPage{Items: items, KPI: kpi, Meta: meta}, nil
}

func (s *inventoryService) Get(sku string) (*model.InventoryItem, error) {
	return s.repo.Find(sku)
}

func (s *inventoryService) AdjustStock(sku string, delta int) (*model.InventoryItem, error) {
	item, err := s.repo.AdjustStock(sku, delta, s.now().UTC().Truncate(time.Minute))
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(log.Fields{
		"sku":    sku,
		"delta":  delta,
		"stock":  item.Stock,
		"status": item.Status,
	}).Info("inventory stock adjusted")
	return item, nil
}
