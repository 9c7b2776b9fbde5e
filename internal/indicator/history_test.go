package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-daytrader/internal/logger"
	"github.com/rxtech-lab/argo-daytrader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type HistoryTestSuite struct {
	suite.Suite
	start time.Time
}

func TestHistoryTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryTestSuite))
}

func (s *HistoryTestSuite) SetupTest() {
	s.start = time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
}

func (s *HistoryTestSuite) newHistory(prices ...float64) *History {
	h := NewHistory(DefaultConfig(), logger.NewNopLogger())
	for i, p := range prices {
		s.Require().NoError(h.AppendSample(p, s.start.Add(time.Duration(i)*5*time.Second)))
	}

	return h
}

// ============================================================================
// AppendSample Tests
// ============================================================================

func (s *HistoryTestSuite) TestAppendSample_RejectsBadSamples() {
	h := s.newHistory(10, 11)
	last := s.start.Add(5 * time.Second)

	tests := []struct {
		name  string
		price float64
		ts    time.Time
	}{
		{name: "NaN", price: math.NaN(), ts: last.Add(time.Second)},
		{name: "positive infinity", price: math.Inf(1), ts: last.Add(time.Second)},
		{name: "zero", price: 0, ts: last.Add(time.Second)},
		{name: "negative", price: -3, ts: last.Add(time.Second)},
		{name: "missing timestamp", price: 10, ts: time.Time{}},
		{name: "same timestamp", price: 10, ts: last},
		{name: "older timestamp", price: 10, ts: s.start},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := h.AppendSample(tt.price, tt.ts)
			s.Error(err)
			s.True(errors.HasCode(err, errors.ErrCodeInvalidPriceSample))
			s.Equal(2, h.Len())
			s.Equal([]float64{10, 11}, h.Prices())
		})
	}
}

func (s *HistoryTestSuite) TestAppendSample_KeepsTimeOrder() {
	h := s.newHistory(1, 2, 3)
	samples := h.Samples()
	s.Require().Len(samples, 3)
	s.True(samples[1].Time.After(samples[0].Time))
	s.True(samples[2].Time.After(samples[1].Time))
}

func (s *HistoryTestSuite) TestBound_DropsOldest() {
	h := s.newHistory(1, 2, 3, 4, 5, 6)
	h.Bound(4)
	s.Equal([]float64{3, 4, 5, 6}, h.Prices())

	s.Require().NoError(h.AppendSample(7, s.start.Add(time.Minute)))
	s.Equal([]float64{4, 5, 6, 7}, h.Prices())

	h.Bound(0)
	s.Require().NoError(h.AppendSample(8, s.start.Add(2*time.Minute)))
	s.Equal(5, h.Len())
}

func (s *HistoryTestSuite) TestMean() {
	s.Equal(0.0, s.newHistory().Mean())
	s.InDelta(2.5, s.newHistory(1, 2, 3, 4).Mean(), 1e-9)
}

// ============================================================================
// Peak/Valley Tests
// ============================================================================

func (s *HistoryTestSuite) TestDetectPeaksValleys_ReferenceSeries() {
	prices := []float64{10, 10.5, 11, 10.2, 9.8, 10.9, 11.5, 10.0}

	peaks, valleys := DetectPeaksValleys(prices, 1.0)
	s.Equal([]Extremum{{Index: 2, Price: 11}, {Index: 6, Price: 11.5}}, peaks)
	s.Equal([]Extremum{{Index: 4, Price: 9.8}}, valleys)
}

func (s *HistoryTestSuite) TestDetectPeaksValleys_MoveMustExceedDelta() {
	peaks, valleys := DetectPeaksValleys([]float64{10, 11, 10, 11, 10}, 1.0)
	s.Empty(peaks)
	s.Empty(valleys)
}

func (s *HistoryTestSuite) TestDetectPeaksValleys_Monotonic() {
	peaks, valleys := DetectPeaksValleys([]float64{1, 2, 3, 4, 5, 6}, 0.5)
	s.Empty(peaks)
	s.Empty(valleys)
}

func (s *HistoryTestSuite) TestRecomputePeaksValleys_NeedsMinimumSamples() {
	h := s.newHistory(10, 12, 8, 12)
	peaks, valleys := h.RecomputePeaksValleys()
	s.Empty(peaks)
	s.Empty(valleys)
	s.False(h.PeakWithin(5))
	s.False(h.ValleyWithin(5))
}

func (s *HistoryTestSuite) TestRecomputePeaksValleys_Idempotent() {
	h := s.newHistory(10, 10.5, 11, 10.2, 9.8, 10.9, 11.5, 10.0)

	peaks1, valleys1 := h.RecomputePeaksValleys()
	peaks2, valleys2 := h.RecomputePeaksValleys()
	s.Equal(peaks1, peaks2)
	s.Equal(valleys1, valleys2)
	s.Equal(peaks1, h.Peaks())
	s.Equal(valleys1, h.Valleys())

	s.Equal([]Extremum{{Index: 2, Price: 11}, {Index: 6, Price: 11.5}}, peaks1)
	s.Equal([]Extremum{{Index: 4, Price: 9.8}}, valleys1)
}

func (s *HistoryTestSuite) TestRecomputePeaksValleys_DeltaFollowsPriceLevel() {
	// A 5 cent wiggle is a real swing at $1 but noise at $100.
	cheap := s.newHistory(1.00, 1.05, 1.10, 1.04, 0.99, 1.06)
	s.NotEmpty(cheap.Peaks())

	pricey := s.newHistory(100.00, 100.05, 100.10, 100.04, 99.99, 100.06)
	s.Empty(pricey.Peaks())
	s.Empty(pricey.Valleys())
}

func (s *HistoryTestSuite) TestFreshness() {
	h := s.newHistory(10, 10.5, 11, 10.2, 9.8, 10.9, 11.5, 10.0)
	s.True(h.ValleyWithin(5))
	s.True(h.ValleyWithin(4))
	s.False(h.ValleyWithin(3))
	s.True(h.PeakWithin(2))
	s.False(h.PeakWithin(1))
}

// ============================================================================
// Trend Tests
// ============================================================================

func (s *HistoryTestSuite) TestLeastSquaresSlope() {
	s.InDelta(2.0, LeastSquaresSlope([]float64{3, 5, 7, 9, 11}), 1e-9)
	s.InDelta(-1.5, LeastSquaresSlope([]float64{10, 8.5, 7, 5.5}), 1e-9)
	s.InDelta(0.0, LeastSquaresSlope([]float64{4, 4, 4}), 1e-9)
	s.Equal(0.0, LeastSquaresSlope([]float64{4}))
	s.Equal(0.0, LeastSquaresSlope(nil))
}

func (s *HistoryTestSuite) TestTrendSlope_NeedsHistory() {
	prices := make([]float64, 100)
	for i := range prices {
		prices[i] = 500 - float64(i)*2
	}

	h := s.newHistory(prices...)
	_, ok := h.Slope()
	s.False(ok)

	s.Require().NoError(h.AppendSample(300, s.start.Add(time.Hour)))
	slope, ok := h.Slope()
	s.True(ok)
	s.InDelta(-2.0, slope, 1e-9)
}

func (s *HistoryTestSuite) TestTrendSlope_UsesTrailingWindow() {
	prices := make([]float64, 120)
	for i := range prices {
		if i < 110 {
			prices[i] = 100 + float64(i)
		} else {
			prices[i] = 300 - float64(i-110)*3
		}
	}

	h := s.newHistory(prices...)
	slope, ok := h.TrendSlope(10)
	s.True(ok)
	s.InDelta(-3.0, slope, 1e-9)

	whole, ok := h.TrendSlope(0)
	s.True(ok)
	s.InDelta(LeastSquaresSlope(prices), whole, 1e-9)
}
