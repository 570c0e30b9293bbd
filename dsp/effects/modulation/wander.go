package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/core"
)

// Per-line spreads of the two wander oscillators. Line k runs its first
// oscillator at 0.1+0.03k Hz and its second at 0.07+0.041k Hz; the
// mismatched steps keep the pair from ever re-aligning on a short period.
const (
	wanderFastBaseHz = 0.1
	wanderFastStepHz = 0.03
	wanderFastAmp    = 0.5

	wanderSlowBaseHz = 0.07
	wanderSlowStepHz = 0.041
	wanderSlowAmp    = 0.3
)

// WanderPair sums two slow, mutually detuned sine oscillators into a
// quasi-periodic drift signal. The sum is not renormalized: its peak is
// the sum of both amplitudes (0.8).
type WanderPair struct {
	fast LFO
	slow LFO
}

// NewWanderPair returns the wander source for delay line index line.
func NewWanderPair(sampleRate float64, line int) (*WanderPair, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("wander sample rate must be positive and finite: %f", sampleRate)
	}
	if line < 0 {
		return nil, fmt.Errorf("wander line index must be >= 0: %d", line)
	}
	w := &WanderPair{}
	w.Init(sampleRate, line)
	return w, nil
}

// Init tunes both oscillators for delay line index line and rewinds them.
func (w *WanderPair) Init(sampleRate float64, line int) {
	k := float64(line)

	w.fast.Init(sampleRate)
	w.fast.SetFreq(wanderFastBaseHz + k*wanderFastStepHz)
	w.fast.SetAmp(wanderFastAmp)

	w.slow.Init(sampleRate)
	w.slow.SetFreq(wanderSlowBaseHz + k*wanderSlowStepHz)
	w.slow.SetAmp(wanderSlowAmp)
}

// Peak returns the largest magnitude Process can produce.
func (w *WanderPair) Peak() float64 {
	return w.fast.Amp() + w.slow.Amp()
}

// Freqs returns the frequencies of the two oscillators in Hz.
func (w *WanderPair) Freqs() (fast, slow float64) {
	return w.fast.Freq(), w.slow.Freq()
}

// Process returns the summed drift value and advances both oscillators.
func (w *WanderPair) Process() float64 {
	return w.fast.Process() + w.slow.Process()
}

// Reset rewinds both oscillators.
func (w *WanderPair) Reset() {
	w.fast.Reset()
	w.slow.Reset()
}
