// Package shared holds the guarded numeric helpers every analyzer relies on.
package shared

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ChunkSize splits frames into parts equal chunks, dropping the remainder.
func ChunkSize(frames, parts int) int {
	if parts <= 0 {
		return 0
	}

	return frames / parts
}

// Div returns num/den, or 0 when the result would not be finite.
func Div(num, den float64) float64 {
	if den == 0 {
		return 0
	}

	v := num / den
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return v
}

func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}

	return math.Max(lo, math.Min(hi, v))
}

// Correlate sums data[i]*data[i+lag] over the first window samples. Samples past the
// end of data count as 0.
func Correlate(data []float64, window, lag int) float64 {
	n := min(window, len(data)-lag)
	if n <= 0 || lag < 0 {
		return 0
	}

	return floats.Dot(data[:n], data[lag:lag+n])
}

// AbsDiffSum sums |data[i]-data[i-1]| for 1 <= i < limit.
func AbsDiffSum(data []float64, limit int) float64 {
	var sum float64

	limit = min(limit, len(data))
	for i := 1; i < limit; i++ {
		sum += math.Abs(data[i] - data[i-1])
	}

	return sum
}
