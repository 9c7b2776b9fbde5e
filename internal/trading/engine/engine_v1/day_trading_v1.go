package engine_v1

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/clock"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine/engine_v1/session"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine/engine_v1/stats"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/engine/engine_v1/writers"
	tradingprovider "github.com/rxtech-lab/argo-daytrader/internal/trading/provider"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/watchlist"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// thresholdZone is where the account balance sits relative to the regulatory minimum.
type thresholdZone int

const (
	zoneClear thresholdZone = iota
	zoneNear
	zoneBelow
)

// DayTradingEngineV1 implements the DayTradingEngine interface.
//
// A single mutex guards the three collections and the budget counters. Collection workers run
// while the cycle holds it, each on its own collection, and only report decisions; every move
// between collections happens after the barrier.
type DayTradingEngineV1 struct {
	config      engine.DayTradingEngineConfig
	initialized bool

	broker     tradingprovider.Broker
	quotes     tradingprovider.QuoteSource
	clock      tradingprovider.MarketClock
	conditions tradingprovider.MarketConditions
	store      watchlist.Store

	mu       sync.Mutex
	watch    *tickerCollection
	holdings *tickerCollection
	pending  *tickerCollection

	dayTradeCost decimal.Decimal
	realized     decimal.Decimal
	account      types.AccountSnapshot
	tradingState types.TradingSwitch
	zone         thresholdZone
	marketOpen   bool
	tradingDate  string
	location     *time.Location
	lastCycle    time.Time

	callbacks engine.DayTradingCallbacks

	sessionManager     *session.SessionManager
	statsTracker       *stats.StatsTracker
	transactionsWriter *writers.TransactionsWriter

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
	log   *logger.Logger
}

var _ engine.DayTradingEngine = (*DayTradingEngineV1)(nil)

// NewDayTradingEngineV1 creates an engine logging to a production logger.
func NewDayTradingEngineV1() (*DayTradingEngineV1, error) {
	log, err := logger.NewLogger()
	if err != nil {
		return nil, err
	}

	return NewDayTradingEngineV1WithLogger(log), nil
}

// NewDayTradingEngineV1WithLogger creates an engine using the given logger.
func NewDayTradingEngineV1WithLogger(log *logger.Logger) *DayTradingEngineV1 {
	log = log.Named("engine")

	return &DayTradingEngineV1{
		config:             engine.DayTradingEngineConfig{}, //nolint:exhaustruct // initialized via Initialize()
		initialized:        false,
		broker:             nil,
		quotes:             nil,
		clock:              nil,
		conditions:         nil,
		store:              watchlist.NewMemoryStore(),
		mu:                 sync.Mutex{},
		watch:              newTickerCollection(types.CollectionWatch),
		holdings:           newTickerCollection(types.CollectionHoldings),
		pending:            newTickerCollection(types.CollectionPending),
		dayTradeCost:       decimal.Zero,
		realized:           decimal.Zero,
		account:            types.AccountSnapshot{}, //nolint:exhaustruct // filled by the first cycle
		tradingState:       types.TradingSwitchStopped,
		zone:               zoneClear,
		marketOpen:         false,
		tradingDate:        "",
		location:           time.UTC,
		lastCycle:          time.Time{},
		callbacks:          engine.DayTradingCallbacks{}, //nolint:exhaustruct // set by Run
		sessionManager:     nil,
		statsTracker:       stats.NewStatsTracker(log),
		transactionsWriter: nil,
		now:                time.Now,
		sleep:              sleepContext,
		log:                log,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Initialize implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) Initialize(config engine.DayTradingEngineConfig) error {
	config.ApplyDefaults()

	if err := config.Validate(); err != nil {
		return err
	}

	location, err := time.LoadLocation(config.Market.Location)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "unknown market location %q", config.Market.Location)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.config = config
	e.location = location

	if e.clock == nil {
		marketClock, err := clock.NewUSMarketClock(config.Market)
		if err != nil {
			return err
		}

		e.clock = marketClock
	}

	e.initialized = true

	e.log.Debug("Day trading engine initialized",
		zap.Float64("budget", config.Budget),
		zap.Float64("purchase_amount", config.EffectivePurchaseAmount()),
		zap.Duration("cycle_interval", config.CycleInterval),
		zap.String("variant", string(config.Rules.Variant)),
	)

	return nil
}

// SetBroker implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) SetBroker(broker tradingprovider.Broker) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.broker = broker
	e.log.Debug("Broker set")

	return nil
}

// SetQuoteSource implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) SetQuoteSource(source tradingprovider.QuoteSource) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.quotes = source
	e.log.Debug("Quote source set")

	return nil
}

// SetMarketClock implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) SetMarketClock(marketClock tradingprovider.MarketClock) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clock = marketClock

	return nil
}

// SetMarketConditions implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) SetMarketConditions(conditions tradingprovider.MarketConditions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.conditions = conditions

	return nil
}

// SetWatchlistStore implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) SetWatchlistStore(store watchlist.Store) error {
	if store == nil {
		return errors.New(errors.ErrCodeInvalidParameter, "watch-list store is nil")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.store = store

	return nil
}

// GetConfigSchema implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) GetConfigSchema() (string, error) {
	return engine.GetConfigSchema()
}

// Run implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) Run(ctx context.Context, callbacks engine.DayTradingCallbacks) error {
	e.mu.Lock()
	e.callbacks = callbacks
	e.mu.Unlock()

	defer e.shutdown()

	if err := e.preRunCheck(); err != nil {
		return err
	}

	if e.config.DataOutputPath != "" {
		if err := e.setupPersistence(e.now()); err != nil {
			return err
		}
	}

	if err := e.ReconcilePositions(ctx); err != nil {
		e.log.Warn("Startup reconciliation failed", zap.Error(err))
		e.emitError(err)
	}

	e.loadWatchlist()

	if e.config.StartTrading {
		e.mu.Lock()
		e.setTradingState(types.TradingSwitchRunning)
		e.mu.Unlock()
	}

	e.log.Info("Day trading engine started",
		zap.Int("watchlist", len(e.Snapshot().Watchlist)),
		zap.Int("holdings", len(e.Snapshot().Holdings)),
	)

	cycleTicker := time.NewTicker(e.config.CycleInterval)
	defer cycleTicker.Stop()

	for {
		e.runScheduledCycle(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-cycleTicker.C:
		}
	}
}

func (e *DayTradingEngineV1) runScheduledCycle(ctx context.Context) {
	snapshot, err := e.RunCycle(ctx)
	if err != nil {
		e.log.Warn("Cycle failed", zap.Error(err))
		e.emitError(err)

		return
	}

	if e.callbacks.OnCycleComplete != nil {
		(*e.callbacks.OnCycleComplete)(snapshot)
	}
}

// shutdown writes final stats and closes the ledger.
func (e *DayTradingEngineV1) shutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.statsTracker.WriteStatsYAML(); err != nil {
		e.log.Warn("Failed to write final stats", zap.Error(err))
	}

	e.closeLedger()

	e.log.Info("Day trading engine stopped",
		zap.Float64("day_trade_cost", e.dayTradeCost.InexactFloat64()),
		zap.Float64("realized_profit", e.realized.InexactFloat64()),
	)
}

//nolint:funcorder // helper method used by shutdown and rollDate
func (e *DayTradingEngineV1) closeLedger() {
	if e.transactionsWriter == nil {
		return
	}

	if err := e.transactionsWriter.Flush(); err != nil {
		e.log.Warn("Failed to flush transactions writer", zap.Error(err))
	}

	if err := e.transactionsWriter.Close(); err != nil {
		e.log.Warn("Failed to close transactions writer", zap.Error(err))
	}

	e.transactionsWriter = nil
}

// setupPersistence creates the dated run folder, the ledger and the stats file.
func (e *DayTradingEngineV1) setupPersistence(now time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sessionManager = session.NewSessionManager(e.location, e.log)
	if err := e.sessionManager.Initialize(e.config.DataOutputPath, now); err != nil {
		return err
	}

	e.statsTracker.Initialize(e.sessionManager.GetRunID(), e.sessionManager.GetSessionStart(), e.sessionManager.GetCurrentDate())

	if err := e.openLedger(); err != nil {
		return err
	}

	e.log.Info("Session initialized",
		zap.String("run_id", e.sessionManager.GetRunID()),
		zap.String("run_path", e.sessionManager.GetCurrentRunPath()),
	)

	return nil
}

//nolint:funcorder // helper method used by setupPersistence and rollDate
func (e *DayTradingEngineV1) openLedger() error {
	transactionsPath := e.sessionManager.GetFilePath(session.TransactionsFileName)

	e.transactionsWriter = writers.NewTransactionsWriter(transactionsPath)
	if err := e.transactionsWriter.Initialize(); err != nil {
		e.transactionsWriter = nil

		return err
	}

	e.statsTracker.SetFilePaths(transactionsPath, e.sessionManager.GetFilePath(session.StatsFileName))

	return nil
}

// rollDate resets the intraday counters when the market date changes.
func (e *DayTradingEngineV1) rollDate(now time.Time) {
	date := now.In(e.location).Format("2006-01-02")
	if date == e.tradingDate {
		return
	}

	first := e.tradingDate == ""
	e.tradingDate = date

	if first {
		return
	}

	e.dayTradeCost = decimal.Zero
	e.realized = decimal.Zero
	e.statsTracker.HandleDateBoundary(date)

	if e.sessionManager == nil {
		return
	}

	changed, err := e.sessionManager.HandleDateBoundary(now)
	if err != nil {
		e.log.Warn("Failed to roll session folder", zap.Error(err))

		return
	}

	if changed {
		e.closeLedger()

		if err := e.openLedger(); err != nil {
			e.log.Warn("Failed to open ledger for new date", zap.Error(err))
		}
	}
}

// loadWatchlist tracks the stored symbols. A corrupt file starts the engine empty.
func (e *DayTradingEngineV1) loadWatchlist() {
	symbols, err := e.store.Load()
	if err != nil {
		e.log.Warn("Watch-list unavailable, starting empty", zap.Error(err))
		e.emitWarning(err)

		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, symbol := range symbols {
		e.track(symbol)
	}
}

// preRunCheck validates that all required components are configured before running.
func (e *DayTradingEngineV1) preRunCheck() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return errors.New(errors.ErrCodeEngineNotInitialized, "engine not initialized - call Initialize() first")
	}

	if e.broker == nil {
		return errors.New(errors.ErrCodeEngineNotInitialized, "broker not set - call SetBroker() first")
	}

	if e.quotes == nil {
		return errors.New(errors.ErrCodeEngineNotInitialized, "quote source not set - call SetQuoteSource() first")
	}

	if e.conditions == nil {
		e.conditions = tradingprovider.NewIndexConditions(e.quotes, e.config.IndexSymbols)
	}

	return nil
}

// Snapshot implements engine.DayTradingEngine.
func (e *DayTradingEngineV1) Snapshot() engine.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshotLocked()
}

func (e *DayTradingEngineV1) snapshotLocked() engine.Snapshot {
	return engine.Snapshot{
		Time:           e.lastCycle,
		TradingState:   e.tradingState,
		MarketOpen:     e.marketOpen,
		Budget:         e.config.Budget,
		DayTradeCost:   e.dayTradeCost.InexactFloat64(),
		RealizedProfit: e.realized.InexactFloat64(),
		Account:        e.account,
		Watchlist:      e.watch.Views(),
		Holdings:       e.holdings.Views(),
		Pending:        e.pending.Views(),
	}
}

func (e *DayTradingEngineV1) setTradingState(state types.TradingSwitch) {
	if e.tradingState == state {
		return
	}

	e.tradingState = state
	e.log.Info("Trading state changed", zap.String("state", string(state)))

	if e.callbacks.OnTradingStateChange != nil {
		(*e.callbacks.OnTradingStateChange)(state)
	}
}

func (e *DayTradingEngineV1) emitWarning(err error) {
	if e.callbacks.OnWarning != nil {
		(*e.callbacks.OnWarning)(err)
	}
}

func (e *DayTradingEngineV1) emitError(err error) {
	if e.callbacks.OnError != nil {
		(*e.callbacks.OnError)(err)
	}
}
