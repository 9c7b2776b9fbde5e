package engine_v1

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/ticker"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/utils"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// cycleView is the read side every worker of a cycle shares.
type cycleView struct {
	afterHours   bool
	evaluate     bool
	canBuy       bool
	marketDown   bool
	strategy     ticker.Strategy
	dayTradeCost float64
	account      types.AccountSnapshot
}

type acceptedDecision struct {
	ticker   *ticker.Ticker
	decision ticker.Decision
}

type polledOrder struct {
	ticker  *ticker.Ticker
	receipt types.OrderReceipt
}

// workerResult is what one collection worker hands back at the barrier.
type workerResult struct {
	collection types.Collection
	decisions  []acceptedDecision
	quotes     []types.Quote
	polled     []polledOrder
	err        error
}

// RunCycle implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) RunCycle(ctx context.Context) (engine.Snapshot, error) {
	if err := e.preRunCheck(); err != nil {
		return engine.Snapshot{}, err //nolint:exhaustruct // empty snapshot on error
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.lastCycle = now
	e.rollDate(now)

	accountKnown := true

	account, err := e.broker.AccountSnapshot(ctx)
	if err != nil {
		accountKnown = false

		e.log.Warn("Account snapshot unavailable, no buys this cycle", zap.Error(err))
		e.emitError(err)
	} else {
		e.account = account
	}

	afterHours := e.clock.IsMarketClosed(now)
	e.marketOpen = !afterHours

	if accountKnown {
		e.checkThresholds(account, afterHours)
	}

	closing := !afterHours && e.clock.InClosingWindow(now)
	evaluate := !afterHours && !closing && e.tradingState == types.TradingSwitchRunning

	view := cycleView{
		afterHours:   afterHours,
		evaluate:     evaluate,
		canBuy:       evaluate && accountKnown,
		marketDown:   false,
		strategy:     ticker.StrategyShortTrade,
		dayTradeCost: e.dayTradeCost.InexactFloat64(),
		account:      e.account,
	}

	if evaluate && e.clock.InOpeningSwing(now) {
		view.strategy = ticker.StrategyPriceSwing
	}

	if evaluate && e.holdings.Len() > 0 {
		view.marketDown = e.broadMarketDown(ctx)
	}

	results := e.runWorkers(ctx, view)

	e.applyPending(results[types.CollectionPending])
	e.applyDecisions(ctx, results[types.CollectionHoldings])
	e.applyDecisions(ctx, results[types.CollectionWatch])

	if closing && e.holdings.Len() > 0 {
		e.log.Info("Closing window reached, dumping holdings", zap.Int("holdings", e.holdings.Len()))
		e.dumpAll(ctx, types.OrderReasonEndOfDay)
	}

	if err := e.statsTracker.WriteStatsYAML(); err != nil {
		e.log.Warn("Failed to write stats", zap.Error(err))
	}

	return e.snapshotLocked(), nil
}

// broadMarketDown treats an unavailable signal as "not down".
func (e *DayTradingEngineV1) broadMarketDown(ctx context.Context) bool {
	down, err := e.conditions.IsBroadMarketDown(ctx)
	if err != nil {
		e.log.Warn("Broad market signal unavailable", zap.Error(err))

		return false
	}

	return down
}

// checkThresholds acts once each time the balance enters a new zone.
func (e *DayTradingEngineV1) checkThresholds(account types.AccountSnapshot, afterHours bool) {
	if e.config.RegulatoryMinimum <= 0 {
		return
	}

	balance := account.ThresholdBalance(afterHours)
	minimum := e.config.RegulatoryMinimum

	zone := zoneClear

	switch {
	case balance < minimum:
		zone = zoneBelow
	case balance < minimum+e.config.ThresholdMargin:
		zone = zoneNear
	}

	if zone == e.zone {
		return
	}

	e.zone = zone

	switch zone {
	case zoneBelow:
		e.setTradingState(types.TradingSwitchStopped)
		e.emitWarning(errors.Newf(errors.ErrCodeBelowRegulatoryMinimum,
			"balance %.2f is below the regulatory minimum %.2f, trading stopped", balance, minimum))
	case zoneNear:
		e.setTradingState(types.TradingSwitchStopped)
		e.emitWarning(errors.Newf(errors.ErrCodeNearRegulatoryMinimum,
			"balance %.2f is within %.2f of the regulatory minimum %.2f, trading paused", balance, e.config.ThresholdMargin, minimum))
	case zoneClear:
		e.log.Info("Balance back above the regulatory threshold", zap.Float64("balance", balance))
	}
}

// runWorkers fans out one worker per collection and waits for all of them.
func (e *DayTradingEngineV1) runWorkers(ctx context.Context, view cycleView) map[types.Collection]*workerResult {
	results := map[types.Collection]*workerResult{
		types.CollectionWatch:    {collection: types.CollectionWatch, decisions: nil, quotes: nil, polled: nil, err: nil},
		types.CollectionHoldings: {collection: types.CollectionHoldings, decisions: nil, quotes: nil, polled: nil, err: nil},
		types.CollectionPending:  {collection: types.CollectionPending, decisions: nil, quotes: nil, polled: nil, err: nil},
	}

	workers := map[types.Collection]func(context.Context, *workerResult){
		types.CollectionWatch: func(ctx context.Context, r *workerResult) {
			e.evaluateWatchlist(ctx, view, e.watch.List(), r)
		},
		types.CollectionHoldings: func(ctx context.Context, r *workerResult) {
			e.evaluateHoldings(ctx, view, e.holdings.List(), r)
		},
		types.CollectionPending: func(ctx context.Context, r *workerResult) {
			e.pollPending(ctx, view, e.pending.List(), r)
		},
	}

	var group errgroup.Group

	for name, work := range workers {
		result := results[name]

		group.Go(func() error {
			e.runWorker(ctx, result, work)

			return nil
		})
	}

	_ = group.Wait()

	for _, result := range results {
		if result.err == nil {
			continue
		}

		e.log.Warn("Worker failed, no decisions this cycle",
			zap.String("collection", string(result.collection)),
			zap.Error(result.err),
		)
		e.emitError(result.err)
		e.discard(result)
	}

	return results
}

func (e *DayTradingEngineV1) runWorker(ctx context.Context, result *workerResult, work func(context.Context, *workerResult)) {
	workerCtx, cancel := context.WithTimeout(ctx, e.config.WorkerTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result.err = errors.Newf(errors.ErrCodeUnknown, "%s worker panicked: %v", result.collection, r)
		}
	}()

	work(workerCtx, result)

	if result.err == nil && workerCtx.Err() != nil {
		result.err = errors.Wrapf(errors.ErrCodeCycleTimeout, workerCtx.Err(), "%s worker exceeded %s", result.collection, e.config.WorkerTimeout)
	}
}

// discard reverts whatever a failed worker accepted so no ticker is left half-updated.
func (e *DayTradingEngineV1) discard(result *workerResult) {
	for _, accepted := range result.decisions {
		if err := accepted.ticker.Revert(); err != nil {
			e.log.Warn("Failed to revert decision of failed worker",
				zap.String("symbol", accepted.ticker.Symbol()),
				zap.Error(err),
			)
		}
	}

	result.decisions = nil
	result.quotes = nil
	result.polled = nil
}

// fetchAndApply refreshes tickers from one batch quote call and returns the tickers whose quote applied.
func (e *DayTradingEngineV1) fetchAndApply(ctx context.Context, view cycleView, tickers []*ticker.Ticker) ([]*ticker.Ticker, error) {
	quotes, err := e.fetchQuotes(ctx, view.afterHours, tickers)
	if err != nil {
		return nil, err
	}

	bySymbol := make(map[string]types.Quote, len(quotes))
	for _, q := range quotes {
		bySymbol[types.NormalizeSymbol(q.Symbol)] = q
	}

	purchaseAmount := e.config.EffectivePurchaseAmount()
	fresh := make([]*ticker.Ticker, 0, len(tickers))

	for _, t := range tickers {
		q, ok := bySymbol[t.Symbol()]
		if !ok {
			e.log.Debug("No quote this cycle", zap.String("symbol", t.Symbol()))

			continue
		}

		t.SetStrategy(view.strategy)

		if err := t.ApplyQuote(q, purchaseAmount); err != nil {
			e.log.Debug("Quote skipped", zap.String("symbol", t.Symbol()), zap.Error(err))

			continue
		}

		fresh = append(fresh, t)
	}

	return fresh, nil
}

func (e *DayTradingEngineV1) fetchQuotes(ctx context.Context, afterHours bool, tickers []*ticker.Ticker) ([]types.Quote, error) {
	if len(tickers) == 0 {
		return nil, nil
	}

	symbols := make([]string, 0, len(tickers))
	for _, t := range tickers {
		symbols = append(symbols, t.Symbol())
	}

	quotes, err := e.quotes.FetchQuotes(ctx, symbols, afterHours)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQuoteFetchFailed, "failed to fetch quotes", err)
	}

	return quotes, nil
}

// evaluateWatchlist refreshes the watch-list and proposes buys that fit the running budget.
func (e *DayTradingEngineV1) evaluateWatchlist(ctx context.Context, view cycleView, tickers []*ticker.Ticker, result *workerResult) {
	fresh, err := e.fetchAndApply(ctx, view, tickers)
	if err != nil {
		result.err = err

		return
	}

	if !view.canBuy {
		return
	}

	gate := newBudgetGate(e.config.Budget, view.dayTradeCost, view.account)

	for _, t := range fresh {
		projected := t.ProjectedCost()
		if !gate.Allows(projected) {
			continue
		}

		decision, ok := t.ShouldBuy(ticker.BuyOptions{Forced: false})
		if !ok {
			continue
		}

		gate.Commit(utils.Notional(decision.Quantity, decision.Price))
		result.decisions = append(result.decisions, acceptedDecision{ticker: t, decision: decision})
	}
}

// evaluateHoldings refreshes the holdings and proposes sells.
func (e *DayTradingEngineV1) evaluateHoldings(ctx context.Context, view cycleView, tickers []*ticker.Ticker, result *workerResult) {
	fresh, err := e.fetchAndApply(ctx, view, tickers)
	if err != nil {
		result.err = err

		return
	}

	if !view.evaluate {
		return
	}

	for _, t := range fresh {
		decision, ok := t.ShouldSell(ticker.SellOptions{Forced: false, MarketDown: view.marketDown})
		if !ok {
			continue
		}

		result.decisions = append(result.decisions, acceptedDecision{ticker: t, decision: decision})
	}
}

// pollPending fetches quotes and order states for pending tickers. Nothing is applied here.
func (e *DayTradingEngineV1) pollPending(ctx context.Context, view cycleView, tickers []*ticker.Ticker, result *workerResult) {
	quotes, err := e.fetchQuotes(ctx, view.afterHours, tickers)
	if err != nil {
		result.err = err

		return
	}

	for _, t := range tickers {
		pending := t.Pending()
		if pending.IsNone() {
			continue
		}

		receipt, err := e.broker.PollOrder(ctx, pending.Unwrap().OrderID)
		if err != nil {
			result.err = err

			return
		}

		result.polled = append(result.polled, polledOrder{ticker: t, receipt: receipt})
	}

	result.quotes = quotes
}

// budgetGate tracks the money a cycle's buys have already claimed.
type budgetGate struct {
	budget       decimal.Decimal
	committed    decimal.Decimal
	buyingPower  decimal.Decimal
	cash         decimal.Decimal
	insufficient string
}

func newBudgetGate(budget float64, committed float64, account types.AccountSnapshot) *budgetGate {
	return &budgetGate{
		budget:       decimal.NewFromFloat(budget),
		committed:    decimal.NewFromFloat(committed),
		buyingPower:  decimal.NewFromFloat(account.BuyingPower),
		cash:         decimal.NewFromFloat(account.Cash),
		insufficient: "",
	}
}

// Allows reports whether projected keeps committed cost under budget and within buying power and cash.
func (g *budgetGate) Allows(projected float64) bool {
	amount := decimal.NewFromFloat(projected)

	switch {
	case amount.LessThanOrEqual(decimal.Zero):
		g.insufficient = "nothing to buy"
	case g.committed.Add(amount).GreaterThanOrEqual(g.budget):
		g.insufficient = fmt.Sprintf("%s would take the day-trade cost to %s of %s", amount, g.committed.Add(amount), g.budget)
	case amount.GreaterThan(g.buyingPower):
		g.insufficient = fmt.Sprintf("%s exceeds buying power %s", amount, g.buyingPower)
	case amount.GreaterThan(g.cash):
		g.insufficient = fmt.Sprintf("%s exceeds cash %s", amount, g.cash)
	default:
		g.insufficient = ""

		return true
	}

	return false
}

func (g *budgetGate) Commit(cost float64) {
	amount := decimal.NewFromFloat(cost)
	g.committed = g.committed.Add(amount)
	g.buyingPower = g.buyingPower.Sub(amount)
	g.cash = g.cash.Sub(amount)
}

func (g *budgetGate) Reason() string {
	return g.insufficient
}

// dumpAll force-sells every tradeable holding, one order at a time, and returns the number of sells submitted.
func (e *DayTradingEngineV1) dumpAll(ctx context.Context, reason string) int {
	holdings := e.holdings.List()
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Symbol() < holdings[j].Symbol()
	})

	submitted := 0

	for _, t := range holdings {
		if !t.Tradeable() {
			continue
		}

		decision, ok := t.ShouldSell(ticker.SellOptions{Forced: true, MarketDown: false})
		if !ok {
			e.log.Debug("Holding not sellable yet", zap.String("symbol", t.Symbol()))

			continue
		}

		if submitted > 0 {
			if err := e.sleep(ctx, e.config.DumpThrottle); err != nil {
				// put the decision back; the dump was interrupted
				_ = t.Revert()

				break
			}
		}

		decision.Reason = reason
		e.submitSell(ctx, t, decision)
		submitted++
	}

	return submitted
}

func (e *DayTradingEngineV1) executedAt(receipt types.OrderReceipt) time.Time {
	if receipt.UpdatedAt.IsZero() {
		return e.now()
	}

	return receipt.UpdatedAt
}
