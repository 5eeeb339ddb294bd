package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("status is not a valid order status")
)

// TimeLayout is the wire format for order timestamps.
const TimeLayout = "2006-01-02 15:04"

type OrderStatus string

const (
	StatusPaid      OrderStatus = "paid"
	StatusPreparing OrderStatus = "preparing"
	StatusShipped   OrderStatus = "shipped"
	StatusCancelled OrderStatus = "cancelled"
	StatusRefunded  OrderStatus = "refunded"
)

// OrderStatuses lists every valid status in display order.
var OrderStatuses = []OrderStatus{StatusPaid, StatusPreparing, StatusShipped, StatusCancelled, StatusRefunded}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPaid, StatusPreparing, StatusShipped, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

type Channel string

const (
	ChannelOnline Channel = "Online"
	ChannelPOS    Channel = "POS"
)

var Channels = []Channel{ChannelOnline, ChannelPOS}

func (c Channel) Valid() bool {
	return c == ChannelOnline || c == ChannelPOS
}

type Order struct {
	ID       string      `json:"id"`
	Time     time.Time   `json:"time"`
	Customer string      `json:"customer"`
	Channel  Channel     `json:"channel"`
	Status   OrderStatus `json:"status"`
	Amount   int64       `json:"amount"`
}

// MarshalJSON renders Time with the admin console's minute-precision layout.
func (o Order) MarshalJSON() ([]byte, error) {
	type alias Order
	return json.Marshal(struct {
		alias
		Time string `json:"time"`
	}{alias(o), o.Time.Format(TimeLayout)})
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	var raw struct {
		alias
		Time string `json:"time"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Order(raw.alias)
	if raw.Time == "" {
		return nil
	}
	t, err := time.Parse(TimeLayout, raw.Time)
	if err != nil {
		return err
	}
	o.Time = t
	return nil
}

// Matches reports whether the order satisfies a case-insensitive substring
// search over its id and customer name.
func (o Order) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(o.ID), term) ||
		strings.Contains(strings.ToLower(o.Customer), term)
}

type OrderRepository interface {
	Snapshot() []Order
	Find(id string) (*Order, error)
	UpdateStatus(id string, status OrderStatus) (*Order, error)
}
