package service

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hayoungbuilds/storeops-admin/pkg/domain/model"
)

const (
	Range30d = "30d"
)

type SettlementRow struct {
	Date    string        `json:"date"`
	Channel model.Channel `json:"channel"`
	Orders  int           `json:"orders"`
	Sales   int64         `json:"sales"`
	Fee     int64         `json:"fee"`
	Payout  int64         `json:"payout"`
}

type SettlementSummary struct {
	Orders int   `json:"orders"`
	Sales  int64 `json:"sales"`
	Fee    int64 `json:"fee"`
	Payout int64 `json:"payout"`
}

type SettlementReport struct {
	Range   string            `json:"range"`
	Summary SettlementSummary `json:"summary"`
	Rows    []SettlementRow   `json:"rows"`
}

type SettlementService interface {
	Report(rng string) (SettlementReport, error)
}

// NewSettlementService produces deterministic per-day settlement rows anchored
// at a fixed base date; real settlement data has no place in a demo store.
func NewSettlementService(base time.Time, logger log.FieldLogger) SettlementService {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &settlementService{base: base, logger: logger}
}

type settlementService struct {
	base   time.Time
	logger log.FieldLogger
}

func (s *settlementService) Report(rng string) (SettlementReport, error) {
	if rng != Range30d {
		rng = Range7d
	}
	days := 7
	if rng == Range30d {
		days = 30
	}

	rows := make([]SettlementRow, 0, days*2)
	for i := 0; i < days; i++ {
		date := s.base.AddDate(0, 0, -i).Format("2006-01-02")

		onlineOrders := 12 + (i*3)%10
		onlineSales := int64(onlineOrders) * (18_000 + int64((i*7)%6)*1_500)
		onlineFee := onlineSales * 35 / 1000
		rows = append(rows, SettlementRow{
			Date: date, Channel: model.ChannelOnline,
			Orders: onlineOrders, Sales: onlineSales, Fee: onlineFee, Payout: onlineSales - onlineFee,
		})

		posOrders := 9 + (i*5)%8
		posSales := int64(posOrders) * (16_000 + int64((i*11)%7)*1_200)
		posFee := posSales * 2 / 100
		rows = append(rows, SettlementRow{
			Date: date, Channel: model.ChannelPOS,
			Orders: posOrders, Sales: posSales, Fee: posFee, Payout: posSales - posFee,
		})
	}

	var summary SettlementSummary
	for _, r := range rows {
		summary.Orders += r.Orders
		summary.Sales += r.Sales
		summary.Fee += r.Fee
		summary.Payout += r.Payout
	}

	return SettlementReport{Range: rng, Summary: summary, Rows: rows}, nil
}
