package types

import "time"

// Transaction is one filled order in the ledger.
type Transaction struct {
	ID       string    `yaml:"id" json:"id" csv:"id"`
	OrderID  string    `yaml:"order_id" json:"order_id" csv:"order_id"`
	Symbol   string    `yaml:"symbol" json:"symbol" csv:"symbol"`
	Side     OrderSide `yaml:"side" json:"side" csv:"side"`
	Quantity float64   `yaml:"quantity" json:"quantity" csv:"quantity"`
	Price    float64   `yaml:"price" json:"price" csv:"price"`
	// Profit is zero for buys. For sells it is quantity * (price - average price).
	Profit     float64   `yaml:"profit" json:"profit" csv:"profit"`
	Reason     string    `yaml:"reason" json:"reason" csv:"reason"`
	ExecutedAt time.Time `yaml:"executed_at" json:"executed_at" csv:"executed_at"`
}

// IsWin reports whether a sell closed above its average price.
func (t Transaction) IsWin() bool {
	return t.Side == OrderSideSell && t.Profit > 0
}

// IsLoss reports whether a sell closed below its average price.
func (t Transaction) IsLoss() bool {
	return t.Side == OrderSideSell && t.Profit < 0
}
