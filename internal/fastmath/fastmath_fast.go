//go:build fastmath

package fastmath

import (
	"github.com/meko-christian/algo-approx"
)

// Exp returns e**x using a fast approximation.
func Exp(x float64) float64 {
	return approx.FastExp(x)
}

// Pow returns x**y for x > 0 using Exp(y*ln(x)).
func Pow(x, y float64) float64 {
	if x <= 0 {
		return 0
	}
	return approx.FastExp(y * approx.FastLog(x))
}
