package reverb

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-fdn/dsp/core"
)

const (
	defaultGain  = 0.5
	defaultSize  = 1.0
	defaultSkew  = 0.5
	defaultWarp  = 0.0
	defaultDecay = 0.5

	maxSize = 16.0
	maxSkew = 4.0
)

// Params is the block-rate control state of the network.
type Params struct {
	// Gains are the per-line controls in [0, 1]. They scale feedback and
	// set each line's damping cutoff or resonance.
	Gains [NumLines]float64
	// Size scales every base delay. 1 puts line 0 at 0.15 s.
	Size float64
	// Skew spreads the line lengths: ratio^(0.5+Skew).
	Skew float64
	// Warp drives Massive modulation routing, in [0, 1].
	Warp float64
	// Decay is the master feedback multiplier in [0, 1].
	Decay float64
}

// DefaultParams returns mid gains, unit size, skew 0.5, no warp and
// decay 0.5.
func DefaultParams() Params {
	p := Params{
		Size:  defaultSize,
		Skew:  defaultSkew,
		Warp:  defaultWarp,
		Decay: defaultDecay,
	}
	for i := range p.Gains {
		p.Gains[i] = defaultGain
	}
	return p
}

// sanitize clamps every field to its usable range. Non-finite values
// fall back to the low end.
func (p *Params) sanitize() {
	for i, g := range p.Gains {
		p.Gains[i] = core.Clamp01(g)
	}
	p.Size = clampFinite(p.Size, 0, maxSize)
	p.Skew = clampFinite(p.Skew, -0.5, maxSkew)
	p.Warp = core.Clamp01(p.Warp)
	p.Decay = core.Clamp01(p.Decay)
}

func clampFinite(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return core.Clamp(v, lo, hi)
}

// ControlBus carries Params from a control goroutine to the audio
// callback without locks. Every field is an independent atomic, so a
// snapshot taken during an update may mix old and new values; all
// parameters are continuous, so a torn read only delays part of an
// update by one block.
type ControlBus struct {
	gains [NumLines]atomic.Uint64
	size  atomic.Uint64
	skew  atomic.Uint64
	warp  atomic.Uint64
	decay atomic.Uint64
}

// NewControlBus returns a bus holding initial.
func NewControlBus(initial Params) *ControlBus {
	b := &ControlBus{}
	b.Store(initial)
	return b
}

// Store publishes every field of p.
func (b *ControlBus) Store(p Params) {
	for i, g := range p.Gains {
		b.gains[i].Store(math.Float64bits(g))
	}
	b.size.Store(math.Float64bits(p.Size))
	b.skew.Store(math.Float64bits(p.Skew))
	b.warp.Store(math.Float64bits(p.Warp))
	b.decay.Store(math.Float64bits(p.Decay))
}

// SetGain publishes the gain of line k. Out-of-range k is ignored.
func (b *ControlBus) SetGain(k int, v float64) {
	if k < 0 || k >= NumLines {
		return
	}
	b.gains[k].Store(math.Float64bits(v))
}

// SetSize publishes the size control.
func (b *ControlBus) SetSize(v float64) { b.size.Store(math.Float64bits(v)) }

// SetSkew publishes the skew control.
func (b *ControlBus) SetSkew(v float64) { b.skew.Store(math.Float64bits(v)) }

// SetWarp publishes the warp control.
func (b *ControlBus) SetWarp(v float64) { b.warp.Store(math.Float64bits(v)) }

// SetDecay publishes the master decay.
func (b *ControlBus) SetDecay(v float64) { b.decay.Store(math.Float64bits(v)) }

// Snapshot copies the current values into p. It does not allocate.
func (b *ControlBus) Snapshot(p *Params) {
	for i := range p.Gains {
		p.Gains[i] = math.Float64frombits(b.gains[i].Load())
	}
	p.Size = math.Float64frombits(b.size.Load())
	p.Skew = math.Float64frombits(b.skew.Load())
	p.Warp = math.Float64frombits(b.warp.Load())
	p.Decay = math.Float64frombits(b.decay.Load())
}
