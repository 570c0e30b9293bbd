//go:build !fastmath

package fastmath

import "math"

// Exp returns e**x.
func Exp(x float64) float64 {
	return math.Exp(x)
}

// Pow returns x**y for x > 0.
func Pow(x, y float64) float64 {
	return math.Pow(x, y)
}
