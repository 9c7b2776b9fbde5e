package indicator

// LeastSquaresSlope fits y = a + b*x over x = 0..len(prices)-1 and returns b.
func LeastSquaresSlope(prices []float64) float64 {
	n := float64(len(prices))
	if len(prices) < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64

	for i, y := range prices {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}

	return (n*sumXY - sumX*sumY) / denominator
}

// TrendSlope returns the slope over the last window prices. ok is false while the history
// has not grown past TrendMinSamples, in which case there is no trend opinion.
func (h *History) TrendSlope(window int) (slope float64, ok bool) {
	if len(h.samples) <= h.config.TrendMinSamples {
		return 0, false
	}

	if window <= 0 || window > len(h.samples) {
		window = len(h.samples)
	}

	return LeastSquaresSlope(h.Prices()[len(h.samples)-window:]), true
}

// Slope is TrendSlope over the configured window.
func (h *History) Slope() (float64, bool) {
	return h.TrendSlope(h.config.TrendWindow)
}
