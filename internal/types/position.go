package types

import (
	"github.com/shopspring/decimal"
)

// Position is an open holding. Quantity, average price and stop-loss only ever exist together.
type Position struct {
	Quantity     float64 `yaml:"quantity" json:"quantity"`
	AveragePrice float64 `yaml:"average_price" json:"average_price"`
	StopLoss     float64 `yaml:"stop_loss" json:"stop_loss"`
}

// ProfitAt returns quantity * (price - average price).
// For example, 300 shares at an average of 100.01 sold at 110 yield (110-100.01)*300 = 2997.
func (p Position) ProfitAt(price float64) float64 {
	return decimal.NewFromFloat(p.Quantity).
		Mul(decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(p.AveragePrice))).
		InexactFloat64()
}

// Cost returns quantity * average price.
func (p Position) Cost() float64 {
	return decimal.NewFromFloat(p.Quantity).Mul(decimal.NewFromFloat(p.AveragePrice)).InexactFloat64()
}

// StopLossBreached reports whether price is at or below the stop-loss.
func (p Position) StopLossBreached(price float64) bool {
	return price <= p.StopLoss
}

// Collection names the orchestrator collection a ticker lives in.
type Collection string

const (
	CollectionWatch    Collection = "watch"
	CollectionHoldings Collection = "holdings"
	CollectionPending  Collection = "pending"
)

// PendingOrder is a submitted order awaiting a fill.
type PendingOrder struct {
	Side     OrderSide  `yaml:"side" json:"side"`
	OrderID  string     `yaml:"order_id" json:"order_id"`
	Origin   Collection `yaml:"origin" json:"origin"`
	Quantity float64    `yaml:"quantity" json:"quantity"`
	Price    float64    `yaml:"price" json:"price"`
	// Profit is the realized profit a pending sell books when it fills.
	Profit float64 `yaml:"profit" json:"profit"`
	Reason string  `yaml:"reason" json:"reason"`
}
