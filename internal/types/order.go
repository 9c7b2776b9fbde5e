package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

type OrderSide string

type OrderState string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

const (
	OrderStateUnconfirmed     OrderState = "unconfirmed"
	OrderStateQueued          OrderState = "queued"
	OrderStatePartiallyFilled OrderState = "partially_filled"
	OrderStateFilled          OrderState = "filled"
	OrderStateConfirmed       OrderState = "confirmed"
	OrderStateRejected        OrderState = "rejected"
)

const (
	OrderReasonSignal        string = "signal"
	OrderReasonStopLoss      string = "stop_loss"
	OrderReasonConservative  string = "conservative_market"
	OrderReasonPennyProfit   string = "penny_profit"
	OrderReasonReversal      string = "reversal"
	OrderReasonForced        string = "forced"
	OrderReasonEndOfDay      string = "end_of_day"
	OrderReasonReconciled    string = "reconciled"
	OrderReasonLowPriceClimb string = "low_price_climb"
)

// IsFilled reports whether the order is filled far enough to finalize the transition.
// A partial fill counts.
func (s OrderState) IsFilled() bool {
	switch s {
	case OrderStateFilled, OrderStateConfirmed, OrderStatePartiallyFilled:
		return true
	default:
		return false
	}
}

// IsWaiting reports whether the broker has accepted the order but not filled it yet.
func (s OrderState) IsWaiting() bool {
	return s == OrderStateUnconfirmed || s == OrderStateQueued
}

// OrderRequest is what the engine hands to the broker.
type OrderRequest struct {
	ClientOrderID string    `yaml:"client_order_id" json:"client_order_id" validate:"required,uuid"`
	Symbol        string    `yaml:"symbol" json:"symbol" validate:"required"`
	Side          OrderSide `yaml:"side" json:"side" validate:"required,oneof=BUY SELL"`
	Quantity      float64   `yaml:"quantity" json:"quantity" validate:"required,gt=0"`
	Price         float64   `yaml:"price" json:"price" validate:"required,gt=0"`
	Reason        string    `yaml:"reason" json:"reason"`
}

// Validate validates the OrderRequest struct.
func (r *OrderRequest) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrderRequest, "invalid order request", err)
	}

	return nil
}

// OrderReceipt is the broker's answer to a submit or a poll.
type OrderReceipt struct {
	OrderID        string     `yaml:"order_id" json:"order_id"`
	State          OrderState `yaml:"state" json:"state"`
	FilledQuantity float64    `yaml:"filled_quantity" json:"filled_quantity"`
	FilledPrice    float64    `yaml:"filled_price" json:"filled_price"`
	UpdatedAt      time.Time  `yaml:"updated_at" json:"updated_at"`
}
