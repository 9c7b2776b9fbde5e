package engine

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-daytrader/internal/ticker"
	"github.com/rxtech-lab/argo-daytrader/internal/trading/clock"
	tradingprovider "github.com/rxtech-lab/argo-daytrader/internal/trading/provider"
	"github.com/rxtech-lab/argo-daytrader/internal/types"
	"github.com/rxtech-lab/argo-daytrader/internal/watchlist"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/rxtech-lab/argo-daytrader/pkg/schema"
)

// Lifecycle callback types for the day-trading loop.
// Callbacks other than OnCycleComplete run while the engine holds its lock and must not call back into it.

// OnCycleCompleteCallback is called after every evaluation cycle with the resulting snapshot.
type OnCycleCompleteCallback func(snapshot Snapshot)

// OnOrderSubmittedCallback is called when the broker answered a submitted order.
type OnOrderSubmittedCallback func(request types.OrderRequest, receipt types.OrderReceipt)

// OnOrderFilledCallback is called when a buy or sell reached a filled state and was booked.
type OnOrderFilledCallback func(transaction types.Transaction)

// OnOrderRevertedCallback is called when a ticker was restored to its pre-order state.
type OnOrderRevertedCallback func(symbol string, side types.OrderSide, err error)

// OnWarningCallback is called for operator-facing warnings such as threshold breaches or a corrupt watch-list.
type OnWarningCallback func(err error)

// OnTradingStateChangeCallback is called when the trading switch flips.
type OnTradingStateChangeCallback func(state types.TradingSwitch)

// OnErrorCallback is called when a non-fatal error occurs.
type OnErrorCallback func(err error)

// DayTradingCallbacks holds all lifecycle callback functions of the engine.
// All fields are pointers - nil means no callback will be invoked.
type DayTradingCallbacks struct {
	OnCycleComplete      *OnCycleCompleteCallback
	OnOrderSubmitted     *OnOrderSubmittedCallback
	OnOrderFilled        *OnOrderFilledCallback
	OnOrderReverted      *OnOrderRevertedCallback
	OnWarning            *OnWarningCallback
	OnTradingStateChange *OnTradingStateChangeCallback
	OnError              *OnErrorCallback
}

// DayTradingEngineConfig holds the configuration for the day-trading engine.
type DayTradingEngineConfig struct {
	// Budget caps the day-trade cost. Zero buys nothing.
	Budget float64 `json:"budget" yaml:"budget" jsonschema:"description=Maximum buy-side cash committed per day,default=0" validate:"gte=0"`

	// PurchaseAmount is the cash one buy spends. Zero means the full budget.
	PurchaseAmount float64 `json:"purchase_amount" yaml:"purchase_amount" jsonschema:"description=Cash spent per buy (0 uses the budget)" validate:"gte=0"`

	CycleInterval time.Duration `json:"cycle_interval" yaml:"cycle_interval" jsonschema:"description=Time between evaluation cycles,default=5000000000" validate:"gt=0"`
	WorkerTimeout time.Duration `json:"worker_timeout" yaml:"worker_timeout" jsonschema:"description=Deadline of one collection worker,default=4000000000" validate:"gt=0"`
	// DumpThrottle is the pause between consecutive force-sell orders.
	DumpThrottle time.Duration `json:"dump_throttle" yaml:"dump_throttle" jsonschema:"description=Pause between force-sell orders,default=500000000" validate:"gte=0"`

	// RegulatoryMinimum is the equity floor. Zero disables the safety thresholds.
	RegulatoryMinimum float64 `json:"regulatory_minimum" yaml:"regulatory_minimum" jsonschema:"description=Equity floor that stops trading,default=25000" validate:"gte=0"`
	ThresholdMargin   float64 `json:"threshold_margin" yaml:"threshold_margin" jsonschema:"description=Distance above the floor that pauses trading,default=100" validate:"gte=0"`

	// IndexSymbols feed the broad-market downtrend signal.
	IndexSymbols []string `json:"index_symbols" yaml:"index_symbols" jsonschema:"description=Index symbols for the conservative-market signal"`

	// Rebuy returns sold tickers to the watch-list instead of dropping them.
	Rebuy bool `json:"rebuy" yaml:"rebuy" jsonschema:"description=Watch a ticker again after selling it,default=false"`

	// StartTrading turns the trading switch on when Run starts. Otherwise cycles only refresh prices until resumed.
	StartTrading bool `json:"start_trading" yaml:"start_trading" jsonschema:"description=Start with trading enabled,default=false"`

	// DataOutputPath enables the transaction ledger and stats files when set.
	DataOutputPath string `json:"data_output_path" yaml:"data_output_path" jsonschema:"description=Base directory for session ledgers and stats"`

	Rules  ticker.Rules `json:"rules" yaml:"rules" jsonschema:"description=Decision thresholds"`
	Market clock.Config `json:"market" yaml:"market" jsonschema:"description=Trading session"`
}

// DefaultConfig returns the standard engine configuration with a zero budget.
func DefaultConfig() DayTradingEngineConfig {
	return DayTradingEngineConfig{
		Budget:            0,
		PurchaseAmount:    0,
		CycleInterval:     5 * time.Second,
		WorkerTimeout:     4 * time.Second,
		DumpThrottle:      500 * time.Millisecond,
		RegulatoryMinimum: 25000,
		ThresholdMargin:   100,
		IndexSymbols:      append([]string{}, tradingprovider.DefaultIndexSymbols...),
		Rebuy:             false,
		StartTrading:      false,
		DataOutputPath:    "",
		Rules:             ticker.DefaultRules(),
		Market:            clock.DefaultConfig(),
	}
}

// ApplyDefaults fills unset durations, index symbols and session times.
func (c *DayTradingEngineConfig) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.CycleInterval == 0 {
		c.CycleInterval = defaults.CycleInterval
	}

	if c.WorkerTimeout == 0 {
		c.WorkerTimeout = defaults.WorkerTimeout
	}

	if len(c.IndexSymbols) == 0 {
		c.IndexSymbols = defaults.IndexSymbols
	}

	if c.Rules.Variant == "" {
		c.Rules = defaults.Rules
	}

	if c.Market.Location == "" {
		c.Market.Location = defaults.Market.Location
	}

	if c.Market.Open == "" {
		c.Market.Open = defaults.Market.Open
	}

	if c.Market.Close == "" {
		c.Market.Close = defaults.Market.Close
	}

	if c.Market.CloseOut == "" {
		c.Market.CloseOut = defaults.Market.CloseOut
	}

	if c.Market.OpeningSwingEnd == "" {
		c.Market.OpeningSwingEnd = defaults.Market.OpeningSwingEnd
	}
}

// EffectivePurchaseAmount is the cash one buy is sized with.
func (c DayTradingEngineConfig) EffectivePurchaseAmount() float64 {
	if c.PurchaseAmount > 0 {
		return c.PurchaseAmount
	}

	return c.Budget
}

// Validate validates the DayTradingEngineConfig struct.
func (c *DayTradingEngineConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid engine config", err)
	}

	if err := c.Rules.Validate(); err != nil {
		return err
	}

	if c.WorkerTimeout > c.CycleInterval {
		return errors.Newf(errors.ErrCodeInvalidConfiguration,
			"worker timeout %s exceeds cycle interval %s", c.WorkerTimeout, c.CycleInterval)
	}

	return nil
}

// GetConfigSchema returns the JSON schema for DayTradingEngineConfig.
func GetConfigSchema() (string, error) {
	return schema.Generate(&DayTradingEngineConfig{}) //nolint:exhaustruct // Empty config for schema generation
}

// Snapshot is a read-only copy of the engine after a cycle.
type Snapshot struct {
	Time           time.Time             `json:"time"`
	TradingState   types.TradingSwitch   `json:"trading_state"`
	MarketOpen     bool                  `json:"market_open"`
	Budget         float64               `json:"budget"`
	DayTradeCost   float64               `json:"day_trade_cost"`
	RealizedProfit float64               `json:"realized_profit"`
	Account        types.AccountSnapshot `json:"account"`
	Watchlist      []ticker.View         `json:"watchlist"`
	Holdings       []ticker.View         `json:"holdings"`
	Pending        []ticker.View         `json:"pending"`
}

// DayTradingEngine runs the watch/hold/pending loop against a broker.
//
//nolint:interfacebloat // Engine is a core interface that naturally requires multiple methods
type DayTradingEngine interface {
	// Initialize sets up the engine with the given configuration.
	Initialize(config DayTradingEngineConfig) error

	SetBroker(broker tradingprovider.Broker) error
	SetQuoteSource(source tradingprovider.QuoteSource) error
	SetMarketClock(marketClock tradingprovider.MarketClock) error
	SetMarketConditions(conditions tradingprovider.MarketConditions) error
	SetWatchlistStore(store watchlist.Store) error

	// Run loads the watch-list, reconciles broker positions and evaluates every CycleInterval.
	// Blocks until context is cancelled.
	Run(ctx context.Context, callbacks DayTradingCallbacks) error

	// RunCycle performs one evaluation cycle.
	RunCycle(ctx context.Context) (Snapshot, error)

	// ReconcilePositions adopts the positions the broker already holds into Holdings.
	ReconcilePositions(ctx context.Context) error

	Snapshot() Snapshot

	// AddToWatch normalises the symbol and tracks it unless it is already in a collection.
	AddToWatch(symbol string) error
	RemoveFromWatch(symbol string) error
	SetTradeable(symbol string, tradeable bool) error

	// ForceBuy buys symbol now, adding it to the watch-list first if needed.
	ForceBuy(ctx context.Context, symbol string) error
	// ForceSellAll dumps every tradeable holding and returns the number of sells submitted.
	ForceSellAll(ctx context.Context) (int, error)
	// PauseResume flips the trading switch and returns the new state.
	PauseResume() (types.TradingSwitch, error)

	// GetConfigSchema returns the JSON schema for engine configuration.
	GetConfigSchema() (string, error)
}
