package svf

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/internal/fastmath"
)

const (
	defaultFreqHz = 1000.0
	defaultRes    = 0.5

	// maxFreqRatio keeps the prewarped cutoff below Nyquist.
	maxFreqRatio = 0.49
	// minDamping bounds the peak band-pass gain at 1/minDamping.
	minDamping = 0.02
)

// Filter is a state-variable filter. Process one sample, then read any of
// the outputs.
type Filter struct {
	sampleRate float64
	freqHz     float64
	res        float64

	g, k       float64
	a1, a2, a3 float64

	ic1eq, ic2eq float64

	low, band, high float64
}

// New returns a filter for sampleRate with a 1 kHz cutoff and medium resonance.
func New(sampleRate float64) (*Filter, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("svf sample rate must be positive and finite: %f", sampleRate)
	}
	f := &Filter{}
	f.Init(sampleRate)
	return f, nil
}

// Init sets the sample rate, restores default tuning and clears state.
func (f *Filter) Init(sampleRate float64) {
	f.sampleRate = sampleRate
	f.freqHz = defaultFreqHz
	f.res = defaultRes
	f.Reset()
	f.update()
}

// SetFreq sets the cutoff / centre frequency in Hz.
func (f *Filter) SetFreq(hz float64) {
	if hz == f.freqHz {
		return
	}
	f.freqHz = hz
	f.update()
}

// SetRes sets resonance in [0,1]. Out-of-range values are clamped.
func (f *Filter) SetRes(res float64) {
	res = core.Clamp01(res)
	if res == f.res {
		return
	}
	f.res = res
	f.update()
}

// Freq returns the cutoff frequency in Hz.
func (f *Filter) Freq() float64 { return f.freqHz }

// Res returns the resonance in [0,1].
func (f *Filter) Res() float64 { return f.res }

// Damping returns the damping factor k = 1/Q derived from resonance.
func (f *Filter) Damping() float64 { return f.k }

// Process runs one sample through the filter and updates all outputs.
func (f *Filter) Process(in float64) {
	v3 := in - f.ic2eq
	v1 := f.a1*f.ic1eq + f.a2*v3
	v2 := f.ic2eq + f.a2*f.ic1eq + f.a3*v3

	f.ic1eq = core.FlushDenormals(2*v1 - f.ic1eq)
	f.ic2eq = core.FlushDenormals(2*v2 - f.ic2eq)

	f.low = v2
	f.band = v1
	f.high = in - f.k*v1 - v2
}

// Low returns the low-pass output of the last Process call.
func (f *Filter) Low() float64 { return f.low }

// Band returns the band-pass output of the last Process call.
func (f *Filter) Band() float64 { return f.band }

// High returns the high-pass output of the last Process call.
func (f *Filter) High() float64 { return f.high }

// Notch returns the notch output of the last Process call.
func (f *Filter) Notch() float64 { return f.low + f.high }

// Reset clears the integrator state and outputs.
func (f *Filter) Reset() {
	f.ic1eq, f.ic2eq = 0, 0
	f.low, f.band, f.high = 0, 0, 0
}

func (f *Filter) update() {
	ratio := 0.0
	if f.sampleRate > 0 {
		ratio = core.Clamp(f.freqHz/f.sampleRate, 0, maxFreqRatio)
	}
	f.g = math.Tan(math.Pi * ratio)

	// Resonance curve: k = 2*(1 - res^(1/4)), so the musically useful range
	// sits in the upper half of the control.
	f.k = 2 * (1 - fastmath.Pow(math.Max(f.res, 1e-9), 0.25))
	if f.k < minDamping {
		f.k = minDamping
	}

	f.a1 = 1 / (1 + f.g*(f.g+f.k))
	f.a2 = f.g * f.a1
	f.a3 = f.g * f.a2
}
