package onepole

import (
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/internal/fastmath"
)

// maxNormalizedCutoff keeps the pole inside the unit circle.
const maxNormalizedCutoff = 0.5

// Filter is a one-pole low-pass filter. The zero value passes nothing;
// call Init or SetFrequency before use.
type Filter struct {
	a0, b1 float64
	out    float64
}

// Init clears state and tunes the filter to a normalized cutoff
// (cutoff Hz / sample rate).
func (f *Filter) Init(normalizedCutoff float64) {
	f.out = 0
	f.SetFrequency(normalizedCutoff)
}

// SetFrequency recomputes the pole from a normalized cutoff in (0, 0.5].
// Out-of-range values are clamped.
func (f *Filter) SetFrequency(normalizedCutoff float64) {
	fc := core.Clamp(normalizedCutoff, 0, maxNormalizedCutoff)
	if math.IsNaN(fc) {
		fc = 0
	}
	f.b1 = fastmath.Exp(-2 * math.Pi * fc)
	f.a0 = 1 - f.b1
}

// SetCutoff tunes the filter to cutoffHz at sampleRate.
func (f *Filter) SetCutoff(cutoffHz, sampleRate float64) {
	if sampleRate <= 0 {
		return
	}
	f.SetFrequency(cutoffHz / sampleRate)
}

// Coefficients returns the feed-forward and feedback coefficients.
func (f *Filter) Coefficients() (a0, b1 float64) {
	return f.a0, f.b1
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(in float64) float64 {
	f.out = core.FlushDenormals(in*f.a0 + f.out*f.b1)
	return f.out
}

// ProcessInPlace filters buf in place.
func (f *Filter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = f.ProcessSample(buf[i])
	}
}

// Reset clears the filter memory.
func (f *Filter) Reset() {
	f.out = 0
}
