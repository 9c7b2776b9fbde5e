package engine_v1

import (
	"context"

	"github.com/rxtech-lab/argo-daytrader/internal/ticker"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"go.uber.org/zap"
)

// track adds a watching ticker for symbol unless a collection already has it.
func (e *DayTradingEngineV1) track(symbol string) (*ticker.Ticker, bool) {
	symbol = types.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, false
	}

	if t, ok := e.find(symbol); ok {
		return t, false
	}

	t := ticker.New(symbol, e.config.Rules, e.log)
	e.watch.Add(t)

	return t, true
}

// find looks symbol up in all three collections.
func (e *DayTradingEngineV1) find(symbol string) (*ticker.Ticker, bool) {
	for _, c := range []*tickerCollection{e.watch, e.holdings, e.pending} {
		if t, ok := c.Get(symbol); ok {
			return t, true
		}
	}

	return nil, false
}

// persistWatchlist saves every tracked symbol so a restart sees the same universe.
func (e *DayTradingEngineV1) persistWatchlist() error {
	symbols := e.watch.Symbols()
	symbols = append(symbols, e.holdings.Symbols()...)
	symbols = append(symbols, e.pending.Symbols()...)

	return e.store.Save(symbols)
}

// AddToWatch implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) AddToWatch(symbol string) error {
	normalized := types.NormalizeSymbol(symbol)
	if normalized == "" {
		return errors.Newf(errors.ErrCodeInvalidSymbol, "invalid symbol %q", symbol)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, added := e.track(normalized); !added {
		e.log.Debug("Symbol already tracked", zap.String("symbol", normalized))

		return nil
	}

	e.log.Info("Symbol added to watch-list", zap.String("symbol", normalized))

	return e.persistWatchlist()
}

// RemoveFromWatch implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) RemoveFromWatch(symbol string) error {
	normalized := types.NormalizeSymbol(symbol)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.watch.Remove(normalized) == nil {
		return errors.Newf(errors.ErrCodeSymbolNotTracked, "%s is not on the watch-list", normalized)
	}

	e.log.Info("Symbol removed from watch-list", zap.String("symbol", normalized))

	return e.persistWatchlist()
}

// SetTradeable implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) SetTradeable(symbol string, tradeable bool) error {
	normalized := types.NormalizeSymbol(symbol)

	e.mu.Lock()
	defer e.mu.Unlock()

	t, ok := e.find(normalized)
	if !ok {
		return errors.Newf(errors.ErrCodeSymbolNotTracked, "%s is not tracked", normalized)
	}

	t.SetTradeable(tradeable)

	return nil
}

// ForceBuy implements engine.DayTradingEngine. The budget gate still applies.
func (e *DayTradingEngineV1) ForceBuy(ctx context.Context, symbol string) error {
	normalized := types.NormalizeSymbol(symbol)
	if normalized == "" {
		return errors.Newf(errors.ErrCodeInvalidSymbol, "invalid symbol %q", symbol)
	}

	if err := e.preRunCheck(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.holdings.Contains(normalized) || e.pending.Contains(normalized) {
		return errors.Newf(errors.ErrCodeSymbolDuplicate, "%s is already held or pending", normalized)
	}

	t, added := e.track(normalized)
	if added {
		if err := e.persistWatchlist(); err != nil {
			e.log.Warn("Failed to save watch-list", zap.Error(err))
		}
	}

	afterHours := e.clock.IsMarketClosed(e.now())

	quote, err := e.quotes.FetchQuote(ctx, normalized, afterHours)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeQuoteFetchFailed, err, "failed to fetch quote for %s", normalized)
	}

	if err := e.applyForcedQuote(t, quote); err != nil {
		return err
	}

	account, err := e.broker.AccountSnapshot(ctx)
	if err != nil {
		return err
	}

	e.account = account

	gate := newBudgetGate(e.config.Budget, e.dayTradeCost.InexactFloat64(), account)
	if !gate.Allows(t.ProjectedCost()) {
		return errors.Newf(errors.ErrCodeInsufficientBudget, "cannot buy %s: %s", normalized, gate.Reason())
	}

	decision, ok := t.ShouldBuy(ticker.BuyOptions{Forced: true})
	if !ok {
		return errors.Newf(errors.ErrCodeInsufficientBudget, "cannot buy %s: proposed quantity %v", normalized, t.ProposedQuantity())
	}

	e.submitBuy(ctx, t, decision)

	if e.watch.Contains(normalized) {
		return errors.Newf(errors.ErrCodeOrderRejected, "buy %s was not accepted by the broker", normalized)
	}

	return nil
}

// applyForcedQuote applies a freshly fetched quote. A quote no newer than the one the last cycle
// applied keeps the current quote and only reprices it.
func (e *DayTradingEngineV1) applyForcedQuote(t *ticker.Ticker, quote types.Quote) error {
	purchaseAmount := e.config.EffectivePurchaseAmount()

	err := t.ApplyQuote(quote, purchaseAmount)
	if err == nil {
		return nil
	}

	if !errors.HasCode(err, errors.ErrCodeInvalidPriceSample) || t.Quote().IsNone() {
		return err
	}

	e.log.Debug("Quote not newer than the last one, keeping it", zap.String("symbol", t.Symbol()), zap.Error(err))

	return t.Reprice(purchaseAmount)
}

// ForceSellAll implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) ForceSellAll(ctx context.Context) (int, error) {
	if err := e.preRunCheck(); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.dumpAll(ctx, types.OrderReasonForced), nil
}

// PauseResume implements engine.DayTradingEngine. Trading cannot resume below the regulatory minimum.
func (e *DayTradingEngineV1) PauseResume() (types.TradingSwitch, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tradingState == types.TradingSwitchRunning {
		e.setTradingState(types.TradingSwitchStopped)

		return e.tradingState, nil
	}

	if e.zone == zoneBelow {
		return e.tradingState, errors.New(errors.ErrCodeBelowRegulatoryMinimum,
			"balance is below the regulatory minimum, trading stays stopped")
	}

	e.setTradingState(types.TradingSwitchRunning)

	return e.tradingState, nil
}

// ReconcilePositions implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) ReconcilePositions(ctx context.Context) error {
	if err := e.preRunCheck(); err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	positions, err := e.broker.Positions(ctx)
	if err != nil {
		return err
	}

	adopted := 0

	for _, position := range positions {
		symbol := types.NormalizeSymbol(position.Symbol)

		if _, ok := e.find(symbol); ok {
			e.log.Debug("Position already tracked", zap.String("symbol", symbol))

			continue
		}

		t := ticker.New(symbol, e.config.Rules, e.log)
		if err := t.Adopt(position); err != nil {
			e.log.Warn("Position not adopted", zap.String("symbol", symbol), zap.Error(err))

			continue
		}

		e.holdings.Add(t)
		adopted++

		e.log.Info("Position reconciled",
			zap.String("symbol", symbol),
			zap.Float64("quantity", position.Quantity),
			zap.Float64("average_price", position.AveragePrice),
			zap.String("reason", types.OrderReasonReconciled),
		)
	}

	e.log.Info("Reconciliation finished", zap.Int("positions", len(positions)), zap.Int("adopted", adopted))

	return nil
}
