package calculation

import "math"

// Quantile returns the linearly interpolated value at q of an ascending sample.
// q is clamped to [0, 1]. An empty sample yields 0 and a NaN q yields NaN.
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if math.IsNaN(q) {
		return math.NaN()
	}
	q = math.Min(1, math.Max(0, q))

	pos := float64(n-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)
	if base+1 < n {
		return sorted[base] + rest*(sorted[base+1]-sorted[base])
	}
	return sorted[base]
}

// Quantiles evaluates several quantiles of the same ascending sample.
func Quantiles(sorted []float64, qs ...float64) []float64 {
	out := make([]float64, len(qs))
	for i, q := range qs {
		out[i] = Quantile(sorted, q)
	}
	return out
}
