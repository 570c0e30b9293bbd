// Package window generates the analysis windows used by the tail
// measurements.
package window

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeBlackman
	TypeBlackmanHarris
)

var errMismatchedLength = errors.New("samples and coefficients must have same length")

// cosine-sum coefficients a0, a1, a2, a3.
var cosineTerms = map[Type][]float64{
	TypeRectangular:    {1},
	TypeHann:           {0.5, 0.5},
	TypeBlackman:       {0.42, 0.5, 0.08},
	TypeBlackmanHarris: {0.35875, 0.48829, 0.14128, 0.01168},
}

func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeBlackman:
		return "blackman"
	case TypeBlackmanHarris:
		return "blackman-harris"
	default:
		return fmt.Sprintf("window(%d)", int(t))
	}
}

// Generate returns size coefficients of window t. Periodic windows omit the
// final sample of the symmetric form, which suits FFT frames.
func Generate(t Type, size int, periodic bool) ([]float64, error) {
	if size <= 0 {
		return nil, fmt.Errorf("window size must be > 0: %d", size)
	}
	terms, ok := cosineTerms[t]
	if !ok {
		return nil, fmt.Errorf("window type unknown: %s", t)
	}

	w := make([]float64, size)
	if size == 1 {
		w[0] = 1
		return w, nil
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}
	for n := range w {
		x := 2 * math.Pi * float64(n) / den
		v, sign := 0.0, 1.0
		for k, a := range terms {
			v += sign * a * math.Cos(float64(k)*x)
			sign = -sign
		}
		w[n] = v
	}
	return w, nil
}

// CoherentGain is the mean coefficient, the amplitude scale a window
// imposes on a bin-centred sinusoid.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	return sum / float64(len(coeffs))
}

// ApplyInPlace multiplies samples by coeffs.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("%w: %d != %d", errMismatchedLength, len(samples), len(coeffs))
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}
