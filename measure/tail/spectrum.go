package tail

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-fdn/dsp/window"
)

const minFFTSize = 64

// Spectrum returns the spectral centroid and the strongest bin frequency
// of the first windowed frame of x.
func (a *Analyzer) Spectrum(x []float64) (centroidHz, dominantHz float64, err error) {
	if len(x) == 0 {
		return 0, 0, ErrEmptyResponse
	}
	if !(a.SampleRate > 0) {
		return 0, 0, ErrInvalidSampleRate
	}
	return a.spectrum(x)
}

func (a *Analyzer) spectrum(x []float64) (float64, float64, error) {
	size := frameSize(a.FFTSize, len(x))
	if size < minFFTSize {
		return 0, 0, nil
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0, 0, fmt.Errorf("tail: fft plan: %w", err)
	}

	coeffs, err := window.Generate(a.Window, size, true)
	if err != nil {
		return 0, 0, fmt.Errorf("tail: %w", err)
	}
	frame := make([]float64, size)
	vecmath.MulBlock(frame, x[:size], coeffs)

	in := make([]complex128, size)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return 0, 0, fmt.Errorf("tail: fft: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	binHz := a.SampleRate / float64(size)

	var weighted, total, best float64
	bestBin := 0
	for i := 1; i < bins; i++ {
		p := power[i]
		weighted += p * float64(i) * binHz
		total += p
		if p > best {
			best, bestBin = p, i
		}
	}
	if total == 0 {
		return 0, 0, nil
	}

	return weighted / total, float64(bestBin) * binHz, nil
}

// frameSize returns the largest power of two no larger than want or n.
func frameSize(want, n int) int {
	limit := min(want, n)
	if limit <= 0 {
		limit = n
	}
	size := 1
	for size*2 <= limit {
		size *= 2
	}
	return size
}
