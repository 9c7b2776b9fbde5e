package indicator

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"go.uber.org/zap"
)

// Sample is one observed price.
type Sample struct {
	Time  time.Time `yaml:"time" json:"time"`
	Price float64   `yaml:"price" json:"price"`
}

// Config controls how the history is decomposed into a trend.
type Config struct {
	// DeltaFraction of the window mean a price must move to confirm a peak or valley.
	DeltaFraction float64 `yaml:"delta_fraction" json:"delta_fraction" validate:"gt=0,lt=1"`
	// MinSamples before any peak/valley is reported.
	MinSamples int `yaml:"min_samples" json:"min_samples" validate:"gte=1"`
	// TrendMinSamples is the history length the slope veto needs. Shorter histories never veto.
	TrendMinSamples int `yaml:"trend_min_samples" json:"trend_min_samples" validate:"gte=2"`
	// TrendWindow is how many trailing prices the slope is fitted to.
	TrendWindow int `yaml:"trend_window" json:"trend_window" validate:"gte=2"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		DeltaFraction:   0.01,
		MinSamples:      5,
		TrendMinSamples: 100,
		TrendWindow:     100,
	}
}

// History is the Signal Engine of one symbol: a time-ordered price series plus the
// peak/valley decomposition derived from it.
type History struct {
	config  Config
	samples []Sample
	// bound caps the series length while a position is open. Zero means unbounded.
	bound   int
	peaks   []Extremum
	valleys []Extremum
	log     *logger.Logger
}

// NewHistory creates an empty history.
func NewHistory(config Config, log *logger.Logger) *History {
	return &History{
		config:  config,
		samples: []Sample{},
		bound:   0,
		peaks:   []Extremum{},
		valleys: []Extremum{},
		log:     log,
	}
}

// CheckSample reports whether AppendSample would accept the sample.
func (h *History) CheckSample(price float64, ts time.Time) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPriceSample, "price %v is not a positive number", price)
	}

	if ts.IsZero() {
		return errors.New(errors.ErrCodeInvalidPriceSample, "sample has no timestamp")
	}

	if n := len(h.samples); n > 0 && !ts.After(h.samples[n-1].Time) {
		return errors.Newf(errors.ErrCodeInvalidPriceSample, "sample at %s is not after %s",
			ts.Format(time.RFC3339Nano), h.samples[n-1].Time.Format(time.RFC3339Nano))
	}

	return nil
}

// AppendSample adds a price to the history and refreshes the peak/valley lists.
// Rejected samples leave the history untouched.
func (h *History) AppendSample(price float64, ts time.Time) error {
	if err := h.CheckSample(price, ts); err != nil {
		h.log.Debug("Rejected price sample", zap.Float64("price", price), zap.Error(err))

		return err
	}

	h.samples = append(h.samples, Sample{Time: ts, Price: price})
	h.trim()
	h.RecomputePeaksValleys()

	return nil
}

// Bound caps the history at n samples, dropping the oldest. Unbound with n = 0.
func (h *History) Bound(n int) {
	h.bound = n
	if h.trim() {
		h.RecomputePeaksValleys()
	}
}

func (h *History) trim() bool {
	if h.bound <= 0 || len(h.samples) <= h.bound {
		return false
	}

	kept := make([]Sample, h.bound)
	copy(kept, h.samples[len(h.samples)-h.bound:])
	h.samples = kept

	return true
}

// Len returns the number of samples.
func (h *History) Len() int {
	return len(h.samples)
}

// Samples returns a copy of the series.
func (h *History) Samples() []Sample {
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)

	return out
}

// Prices returns the price column of the series.
func (h *History) Prices() []float64 {
	prices := make([]float64, len(h.samples))
	for i, s := range h.samples {
		prices[i] = s.Price
	}

	return prices
}

// Mean returns the average price of the series, or 0 when empty.
func (h *History) Mean() float64 {
	if len(h.samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, s := range h.samples {
		sum += s.Price
	}

	return sum / float64(len(h.samples))
}
