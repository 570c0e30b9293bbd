package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/delay"
)

const (
	defaultShifterWindow = 1600

	minShifterWindow = 16
	maxShifterWindow = 1 << 16

	// shifterGuard is the extra buffer length needed by the Hermite taps.
	shifterGuard = 4
)

// Shifter is a streaming delay-line pitch shifter for use inside feedback
// loops. Two read taps sweep across a short window at a rate set by the
// transposition and are cross-faded with complementary triangular gains,
// so each tap is silent while it jumps back across the window.
//
// Pitch ratio r moves each tap at r samples per output sample:
//
//	delay[n+1] = delay[n] + (1 - r)   (mod window)
//
// Processing is per sample, allocation-free and has a latency of roughly
// half a window.
type Shifter struct {
	sampleRate float64
	window     int
	semitones  float64
	ratio      float64

	line     delay.Line
	phase    float64
	phaseInc float64
}

// NewShifter returns a shifter with a 1600-sample window and no transposition.
func NewShifter(sampleRate float64) (*Shifter, error) {
	s := &Shifter{}
	if err := s.Init(sampleRate); err != nil {
		return nil, err
	}
	return s, nil
}

// Init sets the sample rate, allocates the default window and clears
// state. It is the only call besides SetWindow that allocates.
func (s *Shifter) Init(sampleRate float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("pitch shifter sample rate must be positive and finite: %f", sampleRate)
	}
	s.sampleRate = sampleRate
	s.semitones = 0
	s.ratio = 1
	return s.SetWindow(defaultShifterWindow)
}

// SetWindow sets the sweep window in samples and clears the delay memory.
func (s *Shifter) SetWindow(samples int) error {
	if samples < minShifterWindow || samples > maxShifterWindow {
		return fmt.Errorf("pitch shifter window must be in [%d, %d] samples: %d",
			minShifterWindow, maxShifterWindow, samples)
	}
	if err := s.line.Bind(make([]float64, samples+shifterGuard)); err != nil {
		return err
	}
	s.window = samples
	s.phase = 0
	s.updatePhaseIncrement()
	return nil
}

// SetTransposition sets the pitch shift in semitones. Non-finite values
// are ignored.
func (s *Shifter) SetTransposition(semitones float64) {
	if math.IsNaN(semitones) || math.IsInf(semitones, 0) || semitones == s.semitones {
		return
	}
	s.semitones = semitones
	s.ratio = core.SemitonesToRatio(semitones)
	s.updatePhaseIncrement()
}

// Transposition returns the pitch shift in semitones.
func (s *Shifter) Transposition() float64 { return s.semitones }

// Ratio returns the pitch ratio.
func (s *Shifter) Ratio() float64 { return s.ratio }

// Window returns the sweep window in samples.
func (s *Shifter) Window() int { return s.window }

// SampleRate returns the sample rate in Hz.
func (s *Shifter) SampleRate() float64 { return s.sampleRate }

// ProcessSample writes one input sample and returns one shifted sample.
func (s *Shifter) ProcessSample(in float64) float64 {
	s.line.Write(in)

	p1 := s.phase
	p2 := p1 + 0.5
	if p2 >= 1 {
		p2 -= 1
	}

	w := float64(s.window)
	y1 := s.line.ReadHermite(1 + p1*w)
	y2 := s.line.ReadHermite(1 + p2*w)
	out := triangle(p1)*y1 + triangle(p2)*y2

	s.phase += s.phaseInc
	if s.phase >= 1 {
		s.phase -= 1
	} else if s.phase < 0 {
		s.phase += 1
	}

	return out
}

// ProcessInPlace shifts buf in place.
func (s *Shifter) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = s.ProcessSample(buf[i])
	}
}

// Reset clears the delay memory and rewinds the sweep.
func (s *Shifter) Reset() {
	s.line.Reset()
	s.phase = 0
}

func (s *Shifter) updatePhaseIncrement() {
	if s.window <= 0 {
		s.phaseInc = 0
		return
	}
	s.phaseInc = (1 - s.ratio) / float64(s.window)
}

// triangle is the tap gain: 0 at the window edges, 1 in the middle. Two
// taps half a window apart always sum to 1.
func triangle(phase float64) float64 {
	return 1 - math.Abs(2*phase-1)
}
