package ticker

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
)

// PositionState is where a ticker is in its trading lifecycle.
type PositionState string

const (
	StateWatching    PositionState = "watching"
	StatePendingBuy  PositionState = "pending_buy"
	StateHeld        PositionState = "held"
	StatePendingSell PositionState = "pending_sell"
)

// TradingState is the mutable part of a ticker that an order attempt changes and a revert restores.
type TradingState struct {
	Position      optional.Option[types.Position]
	BuyReversals  int
	SellReversals int
	// ReferencePrice is the last price the reversal counters compared against.
	ReferencePrice float64
	Pending        optional.Option[types.PendingOrder]
}

func (s TradingState) clone() TradingState {
	c := TradingState{
		Position:       optional.None[types.Position](),
		BuyReversals:   s.BuyReversals,
		SellReversals:  s.SellReversals,
		ReferencePrice: s.ReferencePrice,
		Pending:        optional.None[types.PendingOrder](),
	}

	if s.Position.IsSome() {
		c.Position = optional.Some(s.Position.Unwrap())
	}

	if s.Pending.IsSome() {
		c.Pending = optional.Some(s.Pending.Unwrap())
	}

	return c
}

func (s TradingState) lifecycle() PositionState {
	if s.Pending.IsSome() {
		if s.Pending.Unwrap().Side == types.OrderSideBuy {
			return StatePendingBuy
		}

		return StatePendingSell
	}

	if s.Position.IsSome() {
		return StateHeld
	}

	return StateWatching
}
