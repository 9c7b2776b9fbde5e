package ticker

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-daytrader/internal/indicator"
	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/utils"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"go.uber.org/zap"
)

// Ticker is the Position State Machine of one symbol.
type Ticker struct {
	symbol           string
	rules            Rules
	quote            optional.Option[types.Quote]
	proposedQuantity float64
	history          *indicator.History
	tradeable        bool
	strategy         Strategy
	state            TradingState
	snapshot         optional.Option[TradingState]
	log              *logger.Logger
}

// Decision is an accepted buy or sell.
type Decision struct {
	Symbol   string          `json:"symbol"`
	Side     types.OrderSide `json:"side"`
	Quantity float64         `json:"quantity"`
	Price    float64         `json:"price"`
	// Profit is the realized profit of a sell.
	Profit float64 `json:"profit"`
	Reason string  `json:"reason"`
}

// BuyOptions tunes a buy evaluation.
type BuyOptions struct {
	// Forced accepts unconditionally.
	Forced bool
}

// SellOptions tunes a sell evaluation.
type SellOptions struct {
	// Forced accepts unconditionally.
	Forced bool
	// MarketDown is the broad-market downtrend signal.
	MarketDown bool
}

// New creates a watching, tradeable ticker with no quote.
func New(symbol string, rules Rules, log *logger.Logger) *Ticker {
	log = &logger.Logger{Logger: log.Named("ticker").With(zap.String("symbol", types.NormalizeSymbol(symbol)))}

	return &Ticker{
		symbol:           types.NormalizeSymbol(symbol),
		rules:            rules,
		quote:            optional.None[types.Quote](),
		proposedQuantity: 0,
		history:          indicator.NewHistory(rules.Signal, log),
		tradeable:        true,
		strategy:         StrategyShortTrade,
		state: TradingState{
			Position:       optional.None[types.Position](),
			BuyReversals:   0,
			SellReversals:  0,
			ReferencePrice: 0,
			Pending:        optional.None[types.PendingOrder](),
		},
		snapshot: optional.None[TradingState](),
		log:      log,
	}
}

func (t *Ticker) Symbol() string {
	return t.symbol
}

// ApplyQuote replaces the quote fields, recomputes the proposed quantity from purchaseAmount,
// appends the price to the history and updates the reversal counters. An invalid quote or a
// sample the history would reject changes nothing.
func (t *Ticker) ApplyQuote(q types.Quote, purchaseAmount float64) error {
	q = q.Normalize()

	if q.Symbol != t.symbol {
		return errors.Newf(errors.ErrCodeInvalidQuote, "quote for %s applied to %s", q.Symbol, t.symbol)
	}

	if err := q.Validate(); err != nil {
		return err
	}

	if err := t.history.AppendSample(q.Last, q.Time); err != nil {
		return err
	}

	t.quote = optional.Some(q)
	t.proposedQuantity = utils.ProposedQuantity(purchaseAmount, q.Last)
	t.observe(q)

	return nil
}

// Reprice recomputes the proposed quantity against the quote already applied.
func (t *Ticker) Reprice(purchaseAmount float64) error {
	if t.quote.IsNone() {
		return errors.Newf(errors.ErrCodeQuoteMissing, "%s has no quote", t.symbol)
	}

	t.proposedQuantity = utils.ProposedQuantity(purchaseAmount, t.quote.Unwrap().Last)

	return nil
}

func (t *Ticker) observe(q types.Quote) {
	if t.rules.Variant == VariantReversal {
		t.countReversals(q)

		return
	}

	price := q.Last
	ref := t.state.ReferencePrice
	t.state.ReferencePrice = price

	if ref == 0 {
		return
	}

	held := t.state.Position.IsSome()

	switch {
	case price < ref:
		t.state.BuyReversals = 0
		if held {
			t.state.SellReversals++
		}
	case price > ref:
		if held {
			t.state.SellReversals = 0
		} else {
			t.state.BuyReversals++
		}
	}
}

// countReversals keeps the reference price as a watermark instead of the previous sample.
// Short-trade buys count rises over the lowest price seen. Price-swing buys count rises while
// the day high sits PriceSwingHighMargin above the price. Sells count drops under the highest
// price seen, and only while the price is above the average.
func (t *Ticker) countReversals(q types.Quote) {
	price := q.Last
	ref := t.state.ReferencePrice

	if t.state.Position.IsSome() {
		if price <= t.state.Position.Unwrap().AveragePrice {
			return
		}

		switch {
		case price < ref:
			t.state.SellReversals++
		case price > ref:
			t.state.ReferencePrice = price
			t.state.SellReversals = 0
		}

		return
	}

	swing := t.strategy == StrategyPriceSwing
	if swing && (q.DayHigh-price)/price <= t.rules.PriceSwingHighMargin {
		return
	}

	if ref == 0 {
		t.state.ReferencePrice = price

		return
	}

	switch {
	case price < ref:
		t.state.ReferencePrice = price
		t.state.BuyReversals = 0
	case price > ref:
		if swing {
			t.state.ReferencePrice = price
		}
		t.state.BuyReversals++
	}
}

// SetStrategy picks the reversal sub-strategy used for counting and entries.
func (t *Ticker) SetStrategy(strategy Strategy) {
	t.strategy = strategy
}

func (t *Ticker) Strategy() Strategy {
	return t.strategy
}

// ShouldBuy evaluates the entry rules. On acceptance it snapshots the trading state and opens
// the position with the proposed quantity at the current price.
func (t *Ticker) ShouldBuy(opts BuyOptions) (Decision, bool) {
	if t.state.Position.IsSome() || t.state.Pending.IsSome() || t.quote.IsNone() {
		return Decision{}, false
	}

	if t.proposedQuantity < 1 {
		return Decision{}, false
	}

	q := t.quote.Unwrap()

	if opts.Forced {
		return t.open(q.Last, types.OrderReasonForced), true
	}

	if !t.tradeable {
		return Decision{}, false
	}

	reason, ok := t.entrySignal(q)
	if !ok {
		return Decision{}, false
	}

	return t.open(q.Last, reason), true
}

func (t *Ticker) entrySignal(q types.Quote) (string, bool) {
	if t.rules.Variant == VariantReversal {
		if t.strategy == StrategyPriceSwing {
			swingHigh := (q.DayHigh-q.Last)/q.Last > t.rules.PriceSwingHighMargin

			return types.OrderReasonReversal, swingHigh && t.state.BuyReversals >= t.rules.PriceSwingReversals
		}

		return types.OrderReasonReversal, t.state.BuyReversals >= t.rules.ShortTradeReversals
	}

	if q.Last < t.rules.LowPriceThreshold {
		if q.Ask-q.Last > t.rules.SpreadGuard {
			return "", false
		}

		return types.OrderReasonLowPriceClimb, t.state.BuyReversals >= t.rules.LowPriceConfirmations
	}

	if slope, ok := t.history.Slope(); ok && slope < t.rules.TrendVeto {
		t.log.Debug("Trend veto", zap.Float64("slope", slope))

		return "", false
	}

	return types.OrderReasonSignal, t.history.ValleyWithin(t.rules.FreshnessWindow)
}

func (t *Ticker) open(price float64, reason string) Decision {
	stopLoss := utils.DiscountedPrice(price, t.rules.StopLossFraction, 2)
	if stopLoss < t.rules.StopLossFloor {
		stopLoss = 0
	}

	t.takeSnapshot()
	t.state.Position = optional.Some(types.Position{
		Quantity:     t.proposedQuantity,
		AveragePrice: price,
		StopLoss:     stopLoss,
	})
	t.state.BuyReversals = 0
	t.state.SellReversals = 0
	t.history.Bound(t.rules.HeldHistoryBound)

	t.log.Info("Buy accepted",
		zap.Float64("quantity", t.proposedQuantity),
		zap.Float64("price", price),
		zap.Float64("stop_loss", stopLoss),
		zap.String("reason", reason),
	)

	return Decision{
		Symbol:   t.symbol,
		Side:     types.OrderSideBuy,
		Quantity: t.proposedQuantity,
		Price:    price,
		Profit:   0,
		Reason:   reason,
	}
}

// Adopt opens a position the broker already holds. The stop-loss sits ReconcileStopLossFraction
// below the broker's average price. No snapshot is taken since no order is involved.
func (t *Ticker) Adopt(p types.BrokerPosition) error {
	if t.state.Position.IsSome() {
		return errors.Newf(errors.ErrCodeSymbolDuplicate, "%s already holds a position", t.symbol)
	}

	if p.Quantity <= 0 || p.AveragePrice <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "cannot adopt %s: quantity %v at %v", t.symbol, p.Quantity, p.AveragePrice)
	}

	average := utils.RoundPrice(p.AveragePrice, 2)
	t.state.Position = optional.Some(types.Position{
		Quantity:     p.Quantity,
		AveragePrice: average,
		StopLoss:     utils.DiscountedPrice(average, t.rules.ReconcileStopLossFraction, 2),
	})
	t.state.BuyReversals = 0
	t.history.Bound(t.rules.HeldHistoryBound)

	return nil
}

// ShouldSell evaluates the exit rules in priority order. A stop-loss breach always sells. On
// acceptance it snapshots, books the realized profit and clears the position.
func (t *Ticker) ShouldSell(opts SellOptions) (Decision, bool) {
	if t.state.Position.IsNone() || t.state.Pending.IsSome() || t.quote.IsNone() {
		return Decision{}, false
	}

	pos := t.state.Position.Unwrap()
	price := t.quote.Unwrap().Last

	if opts.Forced {
		return t.close(pos, price, types.OrderReasonForced), true
	}

	if pos.StopLossBreached(price) {
		return t.close(pos, price, types.OrderReasonStopLoss), true
	}

	if !t.tradeable {
		return Decision{}, false
	}

	reason, ok := t.exitSignal(pos, price, opts.MarketDown)
	if !ok {
		return Decision{}, false
	}

	return t.close(pos, price, reason), true
}

func (t *Ticker) exitSignal(pos types.Position, price float64, marketDown bool) (string, bool) {
	aboveAverage := price > pos.AveragePrice

	if marketDown && aboveAverage && price > t.rules.ConservativeFloor {
		return types.OrderReasonConservative, true
	}

	if t.rules.Variant == VariantReversal {
		return types.OrderReasonReversal, aboveAverage && t.state.SellReversals >= t.rules.SellReversals
	}

	if price < t.rules.PennyThreshold {
		return types.OrderReasonPennyProfit, aboveAverage && pos.ProfitAt(price) > t.rules.PennyMinProfit
	}

	return types.OrderReasonSignal, aboveAverage && t.history.PeakWithin(t.rules.FreshnessWindow)
}

func (t *Ticker) close(pos types.Position, price float64, reason string) Decision {
	profit := pos.ProfitAt(price)

	t.takeSnapshot()
	t.state.Position = optional.None[types.Position]()
	t.state.SellReversals = 0
	t.history.Bound(0)

	t.log.Info("Sell accepted",
		zap.Float64("quantity", pos.Quantity),
		zap.Float64("price", price),
		zap.Float64("average_price", pos.AveragePrice),
		zap.Float64("profit", profit),
		zap.String("reason", reason),
	)

	return Decision{
		Symbol:   t.symbol,
		Side:     types.OrderSideSell,
		Quantity: pos.Quantity,
		Price:    price,
		Profit:   profit,
		Reason:   reason,
	}
}

func (t *Ticker) takeSnapshot() {
	t.snapshot = optional.Some(t.state.clone())
}

// Revert restores the state saved by the last accepted buy or sell and drops the snapshot.
func (t *Ticker) Revert() error {
	if t.snapshot.IsNone() {
		return errors.Newf(errors.ErrCodeNoRevertSnapshot, "%s has nothing to revert", t.symbol)
	}

	t.state = t.snapshot.Unwrap().clone()
	t.snapshot = optional.None[TradingState]()

	if t.state.Position.IsSome() {
		t.history.Bound(t.rules.HeldHistoryBound)
	} else {
		t.history.Bound(0)
	}

	t.log.Info("Reverted trading state", zap.String("state", string(t.State())))

	return nil
}

// Commit drops the snapshot once the broker has finalized the transition.
func (t *Ticker) Commit() {
	t.snapshot = optional.None[TradingState]()
}

// HasSnapshot reports whether a revert is possible.
func (t *Ticker) HasSnapshot() bool {
	return t.snapshot.IsSome()
}

// SetPending records the broker order the latest transition waits on.
func (t *Ticker) SetPending(order types.PendingOrder) {
	t.state.Pending = optional.Some(order)
}

// ClearPending forgets the pending order after it resolved.
func (t *Ticker) ClearPending() {
	t.state.Pending = optional.None[types.PendingOrder]()
}

func (t *Ticker) Pending() optional.Option[types.PendingOrder] {
	return t.state.Pending
}

func (t *Ticker) Position() optional.Option[types.Position] {
	return t.state.Position
}

// TradingState returns a copy of the mutable trading state.
func (t *Ticker) TradingState() TradingState {
	return t.state.clone()
}

// State derives the lifecycle state from position and pending order.
func (t *Ticker) State() PositionState {
	return t.state.lifecycle()
}

func (t *Ticker) Quote() optional.Option[types.Quote] {
	return t.quote
}

// Price returns the last traded price, or 0 before the first quote.
func (t *Ticker) Price() float64 {
	if t.quote.IsNone() {
		return 0
	}

	return t.quote.Unwrap().Last
}

func (t *Ticker) ProposedQuantity() float64 {
	return t.proposedQuantity
}

// ProjectedCost is price * proposed quantity.
func (t *Ticker) ProjectedCost() float64 {
	return utils.Notional(t.proposedQuantity, t.Price())
}

func (t *Ticker) History() *indicator.History {
	return t.history
}

func (t *Ticker) Tradeable() bool {
	return t.tradeable
}

func (t *Ticker) SetTradeable(tradeable bool) {
	t.tradeable = tradeable
}
