package service

import (
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
)

const (
	RangeToday = "today"
	Range7d    = "7d"
)

type DashboardKPI struct {
	Total      int   `json:"total"`
	Preparing  int   `json:"preparing"`
	Shipped    int   `json:"shipped"`
	TodaySales int64 `json:"todaySales"`
}

type HourlySales struct {
	Hour  string `json:"hour"`
	Sales int64  `json:"sales"`
}

type StatusCount struct {
	Status model.OrderStatus `json:"status"`
	Count  int               `json:"count"`
}

type DashboardCharts struct {
	SalesByHour    []HourlySales `json:"salesByHour"`
	OrdersByStatus []StatusCount `json:"ordersByStatus"`
}

type DashboardOverview struct {
	KPI    DashboardKPI    `json:"kpi"`
	Recent []model.Order   `json:"recent"`
	Charts DashboardCharts `json:"charts"`
}

type DashboardService interface {
	Overview(rng string) (DashboardOverview, error)
}

// NewDashboardService builds the overview against a fixed reference day, the
// day the demo data was generated for.
func NewDashboardService(repo model.OrderRepository, today time.Time, logger log.FieldLogger) DashboardService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &dashboardService{repo: repo, today: today, logger: logger}
}

type dashboardService struct {
	repo   model.OrderRepository
	today  time.Time
	logger log.FieldLogger
}

func (s *dashboardService) Overview(rng string) (DashboardOverview, error) {
	if rng != Range7d {
		rng = RangeToday
	}

	base := s.repo.Snapshot()
	if rng == RangeToday {
		filtered := base[:0:0]
		for _, o := range base {
			if sameDay(o.Time, s.today) {
				filtered = append(filtered, o)
			}
		}
		base = filtered
	}

	kpi := DashboardKPI{Total: len(base)}
	for _, o := range base {
		switch o.Status {
		case model.StatusPreparing:
			kpi.Preparing++
		case model.StatusShipped:
			kpi.Shipped++
		}
		kpi.TodaySales += o.Amount
	}

	recent := append([]model.Order(nil), base...)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].Time.After(recent[j].Time) })
	if len(recent) > 5 {
		recent = recent[:5]
	}

	buckets := make([]HourlySales, 24)
	for h := range buckets {
		buckets[h].Hour = fmt.Sprintf("%02d:00", h)
	}
	for _, o := range base {
		buckets[o.Time.Hour()].Sales += o.Amount
	}

	counts := make([]StatusCount, 0, len(model.OrderStatuses))
	byStatus := make(map[model.OrderStatus]int, len(model.OrderStatuses))
	for _, o := range base {
		byStatus[o.Status]++
	}
	for _, status := range model.OrderStatuses {
		counts = append(counts, StatusCount{Status: status, Count: byStatus[status]})
	}

	return DashboardOverview{
		KPI:    kpi,
		Recent: recent,
		Charts: DashboardCharts{SalesByHour: buckets, OrdersByStatus: counts},
	}, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
