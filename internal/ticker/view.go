package ticker

import "github.com/rxtech-lab/argo-daytrader/internal/types"

// View is a read-only copy of a ticker for the presentation layer.
type View struct {
	Symbol           string              `json:"symbol"`
	State            PositionState       `json:"state"`
	Quote            *types.Quote        `json:"quote,omitempty"`
	ProposedQuantity float64             `json:"proposed_quantity"`
	Position         *types.Position     `json:"position,omitempty"`
	Pending          *types.PendingOrder `json:"pending,omitempty"`
	UnrealizedProfit float64             `json:"unrealized_profit"`
	BuyReversals     int                 `json:"buy_reversals"`
	SellReversals    int                 `json:"sell_reversals"`
	Tradeable        bool                `json:"tradeable"`
	Samples          int                 `json:"samples"`
}

// View copies the ticker into a View.
func (t *Ticker) View() View {
	v := View{
		Symbol:           t.symbol,
		State:            t.State(),
		Quote:            nil,
		ProposedQuantity: t.proposedQuantity,
		Position:         nil,
		Pending:          nil,
		UnrealizedProfit: 0,
		BuyReversals:     t.state.BuyReversals,
		SellReversals:    t.state.SellReversals,
		Tradeable:        t.tradeable,
		Samples:          t.history.Len(),
	}

	if t.quote.IsSome() {
		q := t.quote.Unwrap()
		v.Quote = &q
	}

	if t.state.Position.IsSome() {
		p := t.state.Position.Unwrap()
		v.Position = &p
		v.UnrealizedProfit = p.ProfitAt(t.Price())
	}

	if t.state.Pending.IsSome() {
		p := t.state.Pending.Unwrap()
		v.Pending = &p
	}

	return v
}
