package ticker

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-daytrader/internal/indicator"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
)

// Variant selects which engine revision decides entries and exits.
type Variant string

const (
	// VariantPeakValley times entries on fresh valleys and exits on fresh peaks.
	VariantPeakValley Variant = "peak_valley"
	// VariantReversal counts price reversals.
	VariantReversal Variant = "reversal"
)

// Strategy is the reversal sub-strategy in effect for a cycle.
type Strategy string

const (
	// StrategyShortTrade is used for most of the session.
	StrategyShortTrade Strategy = "ST"
	// StrategyPriceSwing is used during the opening swing.
	StrategyPriceSwing Strategy = "PS"
)

// Rules holds every decision threshold.
type Rules struct {
	Variant Variant          `yaml:"variant" json:"variant" jsonschema:"enum=peak_valley,enum=reversal,default=peak_valley" validate:"required,oneof=peak_valley reversal"`
	Signal  indicator.Config `yaml:"signal" json:"signal"`

	// Below LowPriceThreshold the low-price branch replaces peak/valley logic.
	LowPriceThreshold float64 `yaml:"low_price_threshold" json:"low_price_threshold" jsonschema:"default=1" validate:"gt=0"`
	// SpreadGuard is the largest ask-last spread a low-price buy tolerates.
	SpreadGuard float64 `yaml:"spread_guard" json:"spread_guard" jsonschema:"default=0.1" validate:"gte=0"`
	// LowPriceConfirmations is the number of consecutive increases a low-price buy needs.
	LowPriceConfirmations int `yaml:"low_price_confirmations" json:"low_price_confirmations" jsonschema:"default=3" validate:"gte=1"`
	// FreshnessWindow is how many trailing samples a peak or valley may be old.
	FreshnessWindow int     `yaml:"freshness_window" json:"freshness_window" jsonschema:"default=5" validate:"gte=1"`
	TrendVeto       float64 `yaml:"trend_veto" json:"trend_veto" jsonschema:"default=-1"`

	StopLossFraction float64 `yaml:"stop_loss_fraction" json:"stop_loss_fraction" jsonschema:"default=0.05" validate:"gt=0,lt=1"`
	// A computed stop-loss below StopLossFloor is dropped to zero.
	StopLossFloor             float64 `yaml:"stop_loss_floor" json:"stop_loss_floor" jsonschema:"default=1" validate:"gte=0"`
	ReconcileStopLossFraction float64 `yaml:"reconcile_stop_loss_fraction" json:"reconcile_stop_loss_fraction" jsonschema:"default=0.1" validate:"gt=0,lt=1"`

	PennyThreshold    float64 `yaml:"penny_threshold" json:"penny_threshold" jsonschema:"default=2" validate:"gt=0"`
	PennyMinProfit    float64 `yaml:"penny_min_profit" json:"penny_min_profit" jsonschema:"default=1" validate:"gte=0"`
	ConservativeFloor float64 `yaml:"conservative_floor" json:"conservative_floor" jsonschema:"default=1" validate:"gte=0"`

	ShortTradeReversals  int     `yaml:"short_trade_reversals" json:"short_trade_reversals" jsonschema:"default=2" validate:"gte=1"`
	PriceSwingReversals  int     `yaml:"price_swing_reversals" json:"price_swing_reversals" jsonschema:"default=3" validate:"gte=1"`
	PriceSwingHighMargin float64 `yaml:"price_swing_high_margin" json:"price_swing_high_margin" jsonschema:"default=0.01" validate:"gte=0"`
	SellReversals        int     `yaml:"sell_reversals" json:"sell_reversals" jsonschema:"default=3" validate:"gte=1"`

	// HeldHistoryBound caps the price history while a position is open.
	HeldHistoryBound int `yaml:"held_history_bound" json:"held_history_bound" jsonschema:"default=500" validate:"gte=0"`
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		Variant:                   VariantPeakValley,
		Signal:                    indicator.DefaultConfig(),
		LowPriceThreshold:         1,
		SpreadGuard:               0.10,
		LowPriceConfirmations:     3,
		FreshnessWindow:           5,
		TrendVeto:                 -1,
		StopLossFraction:          0.05,
		StopLossFloor:             1,
		ReconcileStopLossFraction: 0.10,
		PennyThreshold:            2,
		PennyMinProfit:            1,
		ConservativeFloor:         1,
		ShortTradeReversals:       2,
		PriceSwingReversals:       3,
		PriceSwingHighMargin:      0.01,
		SellReversals:             3,
		HeldHistoryBound:          500,
	}
}

// Validate validates the Rules struct.
func (r *Rules) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid trading rules", err)
	}

	return nil
}
