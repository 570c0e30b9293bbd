package testutil

import (
	"math"
	"testing"
)

// RequireBounded fails t if any element is non-finite or exceeds limit in
// magnitude.
func RequireBounded(t *testing.T, data []float64, limit float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > limit {
			t.Fatalf("index %d: |%v| exceeds %v", i, v, limit)
		}
	}
}

// FirstAbove returns the index of the first element whose magnitude
// exceeds threshold, or -1.
func FirstAbove(data []float64, threshold float64) int {
	for i, v := range data {
		if math.Abs(v) > threshold {
			return i
		}
	}
	return -1
}

// WindowRMS splits data into consecutive windows of the given length and
// returns the RMS of each full window.
func WindowRMS(data []float64, window int) []float64 {
	if window <= 0 {
		return nil
	}
	out := make([]float64, 0, len(data)/window)
	for start := 0; start+window <= len(data); start += window {
		sum := 0.0
		for _, v := range data[start : start+window] {
			sum += v * v
		}
		out = append(out, math.Sqrt(sum/float64(window)))
	}
	return out
}

// Energy returns the sum of squares of data.
func Energy(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v * v
	}
	return sum
}
