package reverb

import (
	"github.com/cwbudde/algo-fdn/dsp/effects/modulation"
	"github.com/cwbudde/algo-fdn/dsp/effects/pitch"
	"github.com/cwbudde/algo-fdn/dsp/filter/onepole"
	"github.com/cwbudde/algo-fdn/dsp/filter/svf"
)

const (
	// Sine LFO spread of the Studio and Shimmer voicings.
	lfoBaseHz = 0.1
	lfoStepHz = 0.05

	studioDepth  = 10.0
	massiveDepth = 100.0

	dampingBaseHz  = 2000.0
	dampingRangeHz = 8000.0

	resonatorBaseHz   = 80.0
	resonatorBaseRes  = 0.1
	resonatorResRange = 0.7
	resonatorLowMix   = 0.5
	resonatorBandMix  = 0.8

	maxFeedback      = 0.99
	selfOscFeedback  = 1.0
	selfOscThreshold = 0.98

	shimmerOctave = 12.0
	shimmerBlend  = 0.5

	// Lines fed through the shifters. Shimmer pitches the last two lines;
	// Massive blends lines 3 and 7 according to the warp routing.
	shimmerLineA = 6
	shimmerLineB = 7
	warpLineA    = 3
	warpLineB    = 7
)

// lineBank holds the per-line modulation, tone and pitch components of
// every voicing. All of them are initialized regardless of mode so a
// voicing only selects which ones run.
type lineBank struct {
	sampleRate float64

	lfos       [NumLines]modulation.LFO
	wander     [NumLines]modulation.WanderPair
	damping    [NumLines]onepole.Filter
	resonators [NumLines]svf.Filter
	shifters   [2]pitch.Shifter

	gains   [NumLines]float64
	routing WarpRouting
}

func (b *lineBank) init(sampleRate float64, shifterWindow int) error {
	b.sampleRate = sampleRate

	for k := range NumLines {
		b.lfos[k].Init(sampleRate)
		b.lfos[k].SetFreq(lfoBaseHz + float64(k)*lfoStepHz)
		b.lfos[k].SetAmp(1)

		b.wander[k].Init(sampleRate, k)

		b.damping[k].Init(0)
		b.damping[k].SetCutoff(dampingBaseHz+defaultGain*dampingRangeHz, sampleRate)

		b.resonators[k].Init(sampleRate)
		b.resonators[k].SetFreq(resonatorBaseHz * float64(int(1)<<k))
		b.resonators[k].SetRes(resonatorBaseRes + defaultGain*resonatorResRange)

		b.gains[k] = defaultGain
	}

	for i := range b.shifters {
		if err := b.shifters[i].Init(sampleRate); err != nil {
			return err
		}
		if err := b.shifters[i].SetWindow(shifterWindow); err != nil {
			return err
		}
	}

	b.routing = RouteWarp(defaultWarp)

	return nil
}

func (b *lineBank) reset() {
	for k := range NumLines {
		b.lfos[k].Reset()
		b.wander[k].Reset()
		b.damping[k].Reset()
		b.resonators[k].Reset()
	}
	for i := range b.shifters {
		b.shifters[i].Reset()
	}
}

// voicing is the per-mode behavior of the network. prepare and feedback
// run once per block; modulation, shape and route run once per line per
// sample.
type voicing interface {
	mode() Mode
	depth() float64
	prepare(b *lineBank, p *Params)
	feedback(gain, decay float64) (fb float64, inject bool)
	modulation(b *lineBank, k int) float64
	shape(b *lineBank, k int, x float64) float64
	route(b *lineBank, k int, x float64) float64
}

func voicingFor(m Mode) voicing {
	switch m {
	case Shimmer:
		return shimmerVoicing{}
	case Massive:
		return massiveVoicing{}
	default:
		return studioVoicing{}
	}
}

// studioVoicing: sine LFO, one-pole damping with gain-controlled cutoff.
type studioVoicing struct{}

func (studioVoicing) mode() Mode     { return Studio }
func (studioVoicing) depth() float64 { return studioDepth }

func (studioVoicing) prepare(b *lineBank, p *Params) {
	b.gains = p.Gains
}

func (studioVoicing) feedback(gain, decay float64) (float64, bool) {
	return min(gain*decay, maxFeedback), true
}

func (studioVoicing) modulation(b *lineBank, k int) float64 {
	return b.lfos[k].Process()
}

func (studioVoicing) shape(b *lineBank, k int, x float64) float64 {
	b.damping[k].SetCutoff(dampingBaseHz+b.gains[k]*dampingRangeHz, b.sampleRate)
	return b.damping[k].ProcessSample(x)
}

func (studioVoicing) route(_ *lineBank, _ int, x float64) float64 {
	return x
}

// shimmerVoicing is Studio with lines 6 and 7 blended 50/50 with an
// octave-up copy of themselves.
type shimmerVoicing struct {
	studioVoicing
}

func (shimmerVoicing) mode() Mode { return Shimmer }

func (s shimmerVoicing) prepare(b *lineBank, p *Params) {
	s.studioVoicing.prepare(b, p)
	for i := range b.shifters {
		b.shifters[i].SetTransposition(shimmerOctave)
	}
}

func (shimmerVoicing) route(b *lineBank, k int, x float64) float64 {
	switch k {
	case shimmerLineA:
		return x*(1-shimmerBlend) + b.shifters[0].ProcessSample(x)*shimmerBlend
	case shimmerLineB:
		return x*(1-shimmerBlend) + b.shifters[1].ProcessSample(x)*shimmerBlend
	default:
		return x
	}
}

// massiveVoicing: wander modulation, resonant band-pass shaping,
// warp-routed shimmer, and unity feedback once decay passes 0.98.
type massiveVoicing struct{}

func (massiveVoicing) mode() Mode     { return Massive }
func (massiveVoicing) depth() float64 { return massiveDepth }

func (massiveVoicing) prepare(b *lineBank, p *Params) {
	b.gains = p.Gains
	for k := range NumLines {
		b.resonators[k].SetRes(resonatorBaseRes + p.Gains[k]*resonatorResRange)
	}

	b.routing = RouteWarp(p.Warp)
	b.shifters[0].SetTransposition(b.routing.TranspositionA)
	b.shifters[1].SetTransposition(b.routing.TranspositionB)
}

func (massiveVoicing) feedback(gain, decay float64) (float64, bool) {
	if decay > selfOscThreshold {
		return selfOscFeedback, false
	}
	return min(gain*decay, maxFeedback), true
}

func (massiveVoicing) modulation(b *lineBank, k int) float64 {
	return b.wander[k].Process()
}

func (massiveVoicing) shape(b *lineBank, k int, x float64) float64 {
	r := &b.resonators[k]
	r.Process(x)
	return r.Low()*resonatorLowMix + r.Band()*resonatorBandMix
}

func (massiveVoicing) route(b *lineBank, k int, x float64) float64 {
	mix := b.routing.Mix
	if mix <= 0 {
		return x
	}

	switch k {
	case warpLineA:
		return x*(1-mix) + b.shifters[0].ProcessSample(x)*mix
	case warpLineB:
		return x*(1-mix) + b.shifters[1].ProcessSample(x)*mix
	default:
		return x
	}
}
