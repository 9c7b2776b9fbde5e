package indicator

import "math"

// Extremum is a confirmed peak or valley at Index in the series.
type Extremum struct {
	Index int     `yaml:"index" json:"index"`
	Price float64 `yaml:"price" json:"price"`
}

// DetectPeaksValleys runs a zig-zag scan over prices. A running maximum becomes a peak once
// price falls more than delta below it, after which the scan tracks the running minimum until
// price rises more than delta above it. The scan starts looking for a peak.
func DetectPeaksValleys(prices []float64, delta float64) (peaks []Extremum, valleys []Extremum) {
	peaks = []Extremum{}
	valleys = []Extremum{}

	maxPrice, minPrice := math.Inf(-1), math.Inf(1)
	maxIndex, minIndex := -1, -1
	lookForMax := true

	for i, price := range prices {
		if price > maxPrice {
			maxPrice, maxIndex = price, i
		}

		if price < minPrice {
			minPrice, minIndex = price, i
		}

		if lookForMax {
			if price < maxPrice-delta {
				peaks = append(peaks, Extremum{Index: maxIndex, Price: maxPrice})
				minPrice, minIndex = price, i
				lookForMax = false
			}

			continue
		}

		if price > minPrice+delta {
			valleys = append(valleys, Extremum{Index: minIndex, Price: minPrice})
			maxPrice, maxIndex = price, i
			lookForMax = true
		}
	}

	return peaks, valleys
}

// RecomputePeaksValleys rebuilds the peak/valley lists from the current series. Delta is
// DeltaFraction of the series mean, so it follows the instrument's price level. Below
// MinSamples both lists are empty. Calling it again without new samples yields equal lists.
func (h *History) RecomputePeaksValleys() ([]Extremum, []Extremum) {
	if len(h.samples) < h.config.MinSamples {
		h.peaks, h.valleys = []Extremum{}, []Extremum{}

		return h.Peaks(), h.Valleys()
	}

	h.peaks, h.valleys = DetectPeaksValleys(h.Prices(), h.config.DeltaFraction*h.Mean())

	return h.Peaks(), h.Valleys()
}

// Peaks returns a copy of the latest peak list.
func (h *History) Peaks() []Extremum {
	return append([]Extremum{}, h.peaks...)
}

// Valleys returns a copy of the latest valley list.
func (h *History) Valleys() []Extremum {
	return append([]Extremum{}, h.valleys...)
}

// PeakWithin reports whether the most recent peak sits in the last n samples.
func (h *History) PeakWithin(n int) bool {
	return h.within(h.peaks, n)
}

// ValleyWithin reports whether the most recent valley sits in the last n samples.
func (h *History) ValleyWithin(n int) bool {
	return h.within(h.valleys, n)
}

func (h *History) within(extrema []Extremum, n int) bool {
	if len(extrema) == 0 {
		return false
	}

	return extrema[len(extrema)-1].Index >= len(h.samples)-n
}
