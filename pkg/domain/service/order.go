package service

import (
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
	"github.com/hayoungbuilds/storeops-admin/pkg/listquery"
)

// PageMeta describes the pagination window actually served. Page reflects the
// clamped value, which may differ from the requested page; callers must treat
// it as ground truth.
type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

type OrderPage struct {
	Items []model.Order `json:"items"`
	Meta  PageMeta      `json:"meta"`
}

// BulkResult partitions the deduplicated input ids into three disjoint sets.
type BulkResult struct {
	Requested int      `json:"requested"`
	Updated   []string `json:"updated"`
	Skipped   []string `json:"skipped"`
	NotFound  []string `json:"notFound"`
}

type OrderService interface {
	List(query listquery.Query) (OrderPage, error)
	Get(id string) (*model.Order, error)
	UpdateStatus(id string, status model.OrderStatus) (*model.Order, error)
	BulkUpdateStatus(ids []string, status model.OrderStatus) (BulkResult, error)
}

func NewOrderService(repo model.OrderRepository, logger log.FieldLogger) OrderService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &orderService{repo: repo, logger: logger}
}

type orderService struct {
	repo   model.OrderRepository
	logger log.FieldLogger
}

func (s *orderService) List(query listquery.Query) (OrderPage, error) {
	snapshot := s.repo.Snapshot()

	filtered := snapshot[:0:0]
	for _, o := range snapshot {
		if !o.Matches(query.Term) {
			continue
		}
		if query.Status != listquery.All && string(o.Status) != query.Status {
			continue
		}
		if query.Channel != listquery.All && string(o.Channel) != query.Channel {
			continue
		}
		filtered = append(filtered, o)
	}

	sortOrders(filtered, query.Sort)

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

	items := append([]model.Order(nil), filtered[start:end]...)
	return OrderPage{Items: items, Meta: meta}, nil
}

func (s *orderService) Get(id string) (*model.Order, error) {
	return s.repo.Find(id)
}

func (s *orderService) UpdateStatus(id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}
	order, err := s.repo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	s.logger.WithFields(log.Fields{"id": id, "status": status}).Info("order status updated")
	return order, nil
}

// BulkUpdateStatus classifies each id independently: first absence, then
// already-at-target, then the write. Unmatched ids never abort the rest of
// the batch.
func (s *orderService) BulkUpdateStatus(ids []string, status model.OrderStatus) (BulkResult, error) {
	if !status.Valid() {
		return BulkResult{}, model.ErrInvalidStatus
	}

	seen := make(map[string]struct{}, len(ids))
	result := BulkResult{
		Updated:  []string{},
		Skipped:  []string{},
		NotFound: []string{},
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result.Requested++

		current, err := s.repo.Find(id)
		if err != nil {
			result.NotFound = append(result.NotFound, id)
			continue
		}
		if current.Status == status {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if _, err := s.repo.UpdateStatus(id, status); err != nil {
			// The record vanished between Find and the write; a demo store
			// never deletes, but classify it consistently anyway.
			result.NotFound = append(result.NotFound, id)
			continue
		}
		result.Updated = append(result.Updated, id)
	}

	s.logger.WithFields(log.Fields{
		"status":   status,
		"updated":  len(result.Updated),
		"skipped":  len(result.Skipped),
		"notFound": len(result.NotFound),
	}).Info("bulk order status update applied")
	return result, nil
}

func sortOrders(orders []model.Order, key string) {
	switch key {
	case listquery.SortAmountDesc:
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].Amount > orders[j].Amount })
	case listquery.SortAmountAsc:
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].Amount < orders[j].Amount })
	default: // time_desc
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].Time.After(orders[j].Time) })
	}
}

// clampPage computes pagination metadata, forcing the page into
// [1, totalPages] with a minimum of one page even for an empty result.
func clampPage(total, page, pageSize int) PageMeta {
	if pageSize < 1 {
		pageSize = listquery.DefaultPageSize
	}
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return PageMeta{Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}
}
