package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
)

const (
	defaultLFOFreqHz = 1.0
	defaultLFOAmp    = 1.0
)

// LFO is a sine low-frequency oscillator.
//
// Output follows:
//
//	y[n] = amp * sin(2*pi*phase[n]),  phase[n+1] = frac(phase[n] + freq/sampleRate)
//
// starting at phase 0.
type LFO struct {
	sampleRate float64
	freqHz     float64
	amp        float64

	phase    float64
	phaseInc float64
}

// NewLFO creates a 1 Hz unit-amplitude sine LFO.
func NewLFO(sampleRate float64) (*LFO, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("lfo sample rate must be positive and finite: %f", sampleRate)
	}
	l := &LFO{}
	l.Init(sampleRate)
	return l, nil
}

// Init sets the sample rate and restores defaults with the phase at zero.
func (l *LFO) Init(sampleRate float64) {
	l.sampleRate = sampleRate
	l.freqHz = defaultLFOFreqHz
	l.amp = defaultLFOAmp
	l.phase = 0
	l.updatePhaseIncrement()
}

// SetFreq sets the oscillator frequency in Hz. Negative values run the
// phase backwards.
func (l *LFO) SetFreq(hz float64) {
	l.freqHz = hz
	l.updatePhaseIncrement()
}

// SetAmp sets the peak amplitude.
func (l *LFO) SetAmp(amp float64) {
	l.amp = amp
}

// Freq returns the oscillator frequency in Hz.
func (l *LFO) Freq() float64 { return l.freqHz }

// Amp returns the peak amplitude.
func (l *LFO) Amp() float64 { return l.amp }

// Phase returns the current phase in [0,1).
func (l *LFO) Phase() float64 { return l.phase }

// Process returns the current value and advances the phase by one sample.
func (l *LFO) Process() float64 {
	y := l.amp * math.Sin(2*math.Pi*l.phase)
	l.phase += l.phaseInc
	if l.phase >= 1 {
		l.phase -= 1
	} else if l.phase < 0 {
		l.phase += 1
	}
	return y
}

// Reset rewinds the phase to zero.
func (l *LFO) Reset() {
	l.phase = 0
}

func (l *LFO) updatePhaseIncrement() {
	if l.sampleRate <= 0 {
		l.phaseInc = 0
		return
	}
	l.phaseInc = l.freqHz / l.sampleRate
}
