package core

import (
	"math"

	"github.com/cwbudde/algo-fdn/internal/fastmath"
)

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// Clamp01 limits value to [0, 1]. NaN maps to 0.
func Clamp01(value float64) float64 {
	if value > 0 {
		if value > 1 {
			return 1
		}
		return value
	}

	return 0
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Long decaying feedback tails otherwise spend most of their time in
// denormal territory.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// SemitonesToRatio converts a transposition in semitones to a frequency ratio.
func SemitonesToRatio(semitones float64) float64 {
	return fastmath.Pow(2, semitones/12)
}

// IsFinitePositive reports whether v is a finite number greater than zero.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
