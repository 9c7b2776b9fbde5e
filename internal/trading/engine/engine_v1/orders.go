package engine_v1

import (
	"context"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-daytrader/internal/ticker"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/utils"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// applyDecisions submits the orders a watch or holdings worker accepted.
func (e *DayTradingEngineV1) applyDecisions(ctx context.Context, result *workerResult) {
	if result == nil {
		return
	}

	for _, accepted := range result.decisions {
		switch accepted.decision.Side {
		case types.OrderSideBuy:
			e.submitBuy(ctx, accepted.ticker, accepted.decision)
		case types.OrderSideSell:
			e.submitSell(ctx, accepted.ticker, accepted.decision)
		}
	}
}

func (e *DayTradingEngineV1) submit(ctx context.Context, decision ticker.Decision) (types.OrderReceipt, error) {
	request := types.OrderRequest{
		ClientOrderID: uuid.NewString(),
		Symbol:        decision.Symbol,
		Side:          decision.Side,
		Quantity:      decision.Quantity,
		Price:         decision.Price,
		Reason:        decision.Reason,
	}

	receipt, err := e.broker.SubmitOrder(ctx, request)
	if err != nil {
		return types.OrderReceipt{}, err //nolint:exhaustruct // no receipt on error
	}

	e.log.Info("Order submitted",
		zap.String("symbol", request.Symbol),
		zap.String("side", string(request.Side)),
		zap.Float64("quantity", request.Quantity),
		zap.Float64("price", request.Price),
		zap.String("reason", request.Reason),
		zap.String("order_id", receipt.OrderID),
		zap.String("state", string(receipt.State)),
	)

	if e.callbacks.OnOrderSubmitted != nil {
		(*e.callbacks.OnOrderSubmitted)(request, receipt)
	}

	return receipt, nil
}

// submitBuy moves a watching ticker to Holdings on a fill, to Pending while the broker queues the
// order, and reverts it otherwise.
func (e *DayTradingEngineV1) submitBuy(ctx context.Context, t *ticker.Ticker, decision ticker.Decision) {
	receipt, err := e.submit(ctx, decision)
	if err != nil {
		e.revert(t, decision.Side, err)

		return
	}

	cost := decimal.NewFromFloat(utils.Notional(decision.Quantity, decision.Price))

	switch {
	case receipt.State.IsFilled():
		t.Commit()
		e.move(t, e.watch, e.holdings)
		e.dayTradeCost = e.dayTradeCost.Add(cost)
		e.book(t.Symbol(), decision, receipt)
	case receipt.State.IsWaiting():
		t.SetPending(pendingFrom(decision, receipt.OrderID, types.CollectionWatch))
		e.move(t, e.watch, e.pending)
		// committed now so later buys cannot spend it twice
		e.dayTradeCost = e.dayTradeCost.Add(cost)
	default:
		e.revert(t, decision.Side, errors.Newf(errors.ErrCodeOrderRejected,
			"buy %s returned %s", decision.Symbol, receipt.State))
	}
}

// submitSell moves a held ticker out of Holdings on a fill, to Pending while queued, and reverts
// it into Holdings otherwise.
func (e *DayTradingEngineV1) submitSell(ctx context.Context, t *ticker.Ticker, decision ticker.Decision) {
	receipt, err := e.submit(ctx, decision)
	if err != nil {
		e.revert(t, decision.Side, err)

		return
	}

	switch {
	case receipt.State.IsFilled():
		t.Commit()
		e.finishSell(t, e.holdings)
		e.realized = e.realized.Add(decimal.NewFromFloat(decision.Profit))
		e.book(t.Symbol(), decision, receipt)
	case receipt.State.IsWaiting():
		t.SetPending(pendingFrom(decision, receipt.OrderID, types.CollectionHoldings))
		e.move(t, e.holdings, e.pending)
	default:
		e.revert(t, decision.Side, errors.Newf(errors.ErrCodeOrderRejected,
			"sell %s returned %s", decision.Symbol, receipt.State))
	}
}

// applyPending refreshes pending tickers and resolves the orders the broker finished.
func (e *DayTradingEngineV1) applyPending(result *workerResult) {
	if result == nil {
		return
	}

	purchaseAmount := e.config.EffectivePurchaseAmount()

	for _, q := range result.quotes {
		t, ok := e.pending.Get(types.NormalizeSymbol(q.Symbol))
		if !ok {
			continue
		}

		if err := t.ApplyQuote(q, purchaseAmount); err != nil {
			e.log.Debug("Quote skipped", zap.String("symbol", t.Symbol()), zap.Error(err))
		}
	}

	for _, polled := range result.polled {
		e.resolvePending(polled.ticker, polled.receipt)
	}
}

func (e *DayTradingEngineV1) resolvePending(t *ticker.Ticker, receipt types.OrderReceipt) {
	if t.Pending().IsNone() {
		return
	}

	order := t.Pending().Unwrap()

	switch {
	case receipt.State.IsFilled():
		t.ClearPending()
		t.Commit()

		decision := ticker.Decision{
			Symbol:   t.Symbol(),
			Side:     order.Side,
			Quantity: order.Quantity,
			Price:    order.Price,
			Profit:   order.Profit,
			Reason:   order.Reason,
		}

		if order.Side == types.OrderSideBuy {
			e.move(t, e.pending, e.holdings)
		} else {
			e.finishSell(t, e.pending)
			e.realized = e.realized.Add(decimal.NewFromFloat(order.Profit))
		}

		e.book(t.Symbol(), decision, receipt)
	case receipt.State.IsWaiting():
		e.log.Debug("Order still pending", zap.String("symbol", t.Symbol()), zap.String("order_id", order.OrderID))
	default:
		origin := e.holdings
		if order.Origin == types.CollectionWatch {
			origin = e.watch
		}

		if order.Side == types.OrderSideBuy {
			e.dayTradeCost = e.dayTradeCost.Sub(decimal.NewFromFloat(utils.Notional(order.Quantity, order.Price)))
		}

		e.revert(t, order.Side, errors.Newf(errors.ErrCodeOrderRejected,
			"pending %s %s returned %s", order.Side, t.Symbol(), receipt.State))
		e.move(t, e.pending, origin)
	}
}

// finishSell returns a sold ticker to the watch-list when rebuying, otherwise drops it.
func (e *DayTradingEngineV1) finishSell(t *ticker.Ticker, from *tickerCollection) {
	from.Remove(t.Symbol())

	if e.config.Rebuy {
		e.watch.Add(t)
	}
}

func (e *DayTradingEngineV1) move(t *ticker.Ticker, from *tickerCollection, to *tickerCollection) {
	from.Remove(t.Symbol())
	to.Add(t)

	e.log.Debug("Ticker moved",
		zap.String("symbol", t.Symbol()),
		zap.String("from", string(from.name)),
		zap.String("to", string(to.name)),
	)
}

// revert restores the pre-order state. The ticker stays in the collection it is in.
func (e *DayTradingEngineV1) revert(t *ticker.Ticker, side types.OrderSide, cause error) {
	if err := t.Revert(); err != nil {
		e.log.Error("Failed to revert ticker", zap.String("symbol", t.Symbol()), zap.Error(err))
	}

	e.log.Warn("Order reverted",
		zap.String("symbol", t.Symbol()),
		zap.String("side", string(side)),
		zap.Error(cause),
	)

	if e.callbacks.OnOrderReverted != nil {
		(*e.callbacks.OnOrderReverted)(t.Symbol(), side, cause)
	}
}

// book appends the fill to the ledger and the stats.
func (e *DayTradingEngineV1) book(symbol string, decision ticker.Decision, receipt types.OrderReceipt) {
	tx := types.Transaction{
		ID:         uuid.NewString(),
		OrderID:    receipt.OrderID,
		Symbol:     symbol,
		Side:       decision.Side,
		Quantity:   decision.Quantity,
		Price:      decision.Price,
		Profit:     0,
		Reason:     decision.Reason,
		ExecutedAt: e.executedAt(receipt),
	}

	if decision.Side == types.OrderSideSell {
		tx.Profit = decision.Profit
	}

	e.statsTracker.RecordTransaction(tx)

	if e.transactionsWriter != nil {
		if err := e.transactionsWriter.Write(tx); err != nil {
			e.log.Warn("Failed to write transaction", zap.Error(err))
			e.emitError(err)
		}
	}

	if e.callbacks.OnOrderFilled != nil {
		(*e.callbacks.OnOrderFilled)(tx)
	}
}

func pendingFrom(decision ticker.Decision, orderID string, origin types.Collection) types.PendingOrder {
	return types.PendingOrder{
		Side:     decision.Side,
		OrderID:  orderID,
		Origin:   origin,
		Quantity: decision.Quantity,
		Price:    decision.Price,
		Profit:   decision.Profit,
		Reason:   decision.Reason,
	}
}
